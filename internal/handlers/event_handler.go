package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/layebamba/eventify/internal/helpers"
	"github.com/layebamba/eventify/internal/models"
)

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{}).Where("is_public = ?", true)

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.
		Preload("Organizer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		}).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Offset(offset).Limit(limitNum).Order("event_date ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithInternalError(c, "Error retrieving events.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"data":        events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

// ListMyEvents returns every event owned by the caller, private ones included.
func ListMyEvents(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	err := gormDB.Where("organizer_id = ?", userID).
		Preload("Category").
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		helpers.RespondWithInternalError(c, "Error retrieving events.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   events,
		"total":  len(events),
	})
}

func CreateEvent(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	location := c.PostForm("location")
	if title == "" || description == "" || location == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	eventDate, err := time.Parse(time.RFC3339, c.PostForm("eventDate"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event date format.")
		return
	}

	latitude, err := helpers.ParseOptionalFloat(c.PostForm("latitude"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid latitude.")
		return
	}
	longitude, err := helpers.ParseOptionalFloat(c.PostForm("longitude"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid longitude.")
		return
	}
	if err := helpers.ValidateCoordinates(latitude, longitude); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	isPublic, err := helpers.ParseBoolOrDefault(c.PostForm("isPublic"), true)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid isPublic value.")
		return
	}

	maxParticipants, err := helpers.ParseOptionalInt(c.PostForm("maxParticipants"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid maxParticipants value.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	categoryName := c.PostForm("categoryName")
	var category models.Category
	if err := gormDB.Where("name = ?", categoryName).First(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, fmt.Sprintf("Category %q not found.", categoryName))
		return
	}

	event := models.Event{
		Title:           title,
		Description:     description,
		Location:        location,
		Latitude:        latitude,
		Longitude:       longitude,
		EventDate:       eventDate,
		ImageURL:        c.PostForm("imageUrl"),
		IsPublic:        isPublic,
		MaxParticipants: maxParticipants,
		OrganizerID:     userID.(uuid.UUID),
		CategoryID:      category.ID,
	}

	imageFile, err := c.FormFile("image")
	if err == nil {
		imageURL, err := helpers.UploadImage(c, imageFile, "events")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.ImageURL = imageURL
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to create event.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Event created successfully.",
		"data":    event,
	})
}

// GetEvent returns the full event and records a view as a side effect. The
// view insert is best-effort: its failure never fails the request.
func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("Organizer").Preload("Category").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithInternalError(c, "Error retrieving event.", err)
		return
	}

	view := models.EventView{
		EventID:   event.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if userID, authenticated := c.Get("user_id"); authenticated {
		id := userID.(uuid.UUID)
		view.UserID = &id
	}
	if err := gormDB.Create(&view).Error; err != nil {
		log.Printf("failed to record view for event %s: %v", event.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   event,
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithInternalError(c, "Error finding event.", err)
		return
	}

	if title := c.PostForm("title"); title != "" {
		event.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		event.Description = description
	}
	if location := c.PostForm("location"); location != "" {
		event.Location = location
	}

	if eventDateStr := c.PostForm("eventDate"); eventDateStr != "" {
		eventDate, err := time.Parse(time.RFC3339, eventDateStr)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event date format.")
			return
		}
		event.EventDate = eventDate
	}

	latitude, err := helpers.ParseOptionalFloat(c.PostForm("latitude"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid latitude.")
		return
	}
	longitude, err := helpers.ParseOptionalFloat(c.PostForm("longitude"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid longitude.")
		return
	}
	if err := helpers.ValidateCoordinates(latitude, longitude); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if latitude != nil {
		event.Latitude = latitude
	}
	if longitude != nil {
		event.Longitude = longitude
	}

	if isPublicStr := c.PostForm("isPublic"); isPublicStr != "" {
		isPublic, err := helpers.ParseBoolOrDefault(isPublicStr, event.IsPublic)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid isPublic value.")
			return
		}
		event.IsPublic = isPublic
	}

	maxParticipants, err := helpers.ParseOptionalInt(c.PostForm("maxParticipants"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid maxParticipants value.")
		return
	}
	if maxParticipants != nil {
		event.MaxParticipants = maxParticipants
	}

	if categoryName := c.PostForm("categoryName"); categoryName != "" {
		var category models.Category
		if err := gormDB.Where("name = ?", categoryName).First(&category).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, fmt.Sprintf("Category %q not found.", categoryName))
			return
		}
		event.CategoryID = category.ID
	}

	if imageURL := c.PostForm("imageUrl"); imageURL != "" {
		event.ImageURL = imageURL
	}

	imageFile, err := c.FormFile("image")
	if err == nil {
		imageURL, err := helpers.UploadImage(c, imageFile, "events")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := helpers.DeleteImage(event.ImageURL); err != nil {
			log.Printf("failed to delete old image %s: %v", event.ImageURL, err)
		}
		event.ImageURL = imageURL
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to update event.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Event updated successfully.",
		"data":    event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithInternalError(c, "Error finding event.", err)
		return
	}

	if err := gormDB.Delete(&event).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to delete event.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Event deleted successfully.",
	})
}

// GetEventStats returns view and registration counts for a single event,
// restricted to the event's own organizer.
func GetEventStats(c *gin.Context) {
	eventID := c.Param("id")

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ? AND organizer_id = ?", eventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Access denied.")
		return
	}

	var viewCount, registrationCount int64
	gormDB.Model(&models.EventView{}).Where("event_id = ?", event.ID).Count(&viewCount)
	gormDB.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&registrationCount)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"eventId":            event.ID,
			"eventTitle":         event.Title,
			"totalViews":         viewCount,
			"totalRegistrations": registrationCount,
		},
	})
}

// GetOrganizerStats returns view/registration counts for every event owned by
// the caller.
func GetOrganizerStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	if err := gormDB.Where("organizer_id = ?", userID).Order("event_date ASC").Find(&events).Error; err != nil {
		helpers.RespondWithInternalError(c, "Error retrieving events.", err)
		return
	}

	stats := make([]gin.H, 0, len(events))
	for _, event := range events {
		var viewCount, registrationCount int64
		gormDB.Model(&models.EventView{}).Where("event_id = ?", event.ID).Count(&viewCount)
		gormDB.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&registrationCount)

		stats = append(stats, gin.H{
			"eventId":            event.ID,
			"title":              event.Title,
			"isPublic":           event.IsPublic,
			"totalViews":         viewCount,
			"totalRegistrations": registrationCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
		"total":  len(stats),
	})
}
