package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/layebamba/eventify/internal/helpers"
	"github.com/layebamba/eventify/internal/models"
)

type RegistrationRequest struct {
	EventID uuid.UUID `json:"eventId" binding:"required"`
}

type UpdateRegistrationRequest struct {
	Status string `json:"status"`
}

func generateQRCodeData(registration *models.Registration) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := generateSignature(registration.ID, registration.EventID, registration.UserID, secretKey)
	return fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID.String(),
		registration.EventID.String(),
		signature,
	)
}

func generateSignature(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func extractRegistrationIDFromQRData(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "registration:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "registration:"))
}

func validateQRCodeSignature(registration *models.Registration, qrData string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "signature:") {
		return false
	}

	secretKey := os.Getenv("JWT_SECRET")
	signature := strings.TrimPrefix(parts[2], "signature:")
	expectedSignature := generateSignature(registration.ID, registration.EventID, registration.UserID, secretKey)
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

func CreateRegistration(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	var event models.Event
	if err := gormDB.Where("id = ?", req.EventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var existingRegistration models.Registration
	if result := gormDB.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existingRegistration); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Already registered for this event.")
		return
	}

	registration := models.Registration{
		UserID:  userID.(uuid.UUID),
		EventID: req.EventID,
		Status:  models.StatusConfirmed,
	}

	if err := gormDB.Create(&registration).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to create registration.", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   registration,
	})
}

func ListRegistrations(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registrations []models.Registration
	if err := gormDB.Preload("User").Preload("Event").Find(&registrations).Error; err != nil {
		helpers.RespondWithInternalError(c, "Error retrieving registrations.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   registrations,
		"total":  len(registrations),
	})
}

func GetRegistration(c *gin.Context) {
	registrationID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registration models.Registration
	if err := gormDB.Preload("User").Preload("Event").Where("id = ?", registrationID).First(&registration).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
			return
		}
		helpers.RespondWithInternalError(c, "Error retrieving registration.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   registration,
	})
}

// UpdateRegistration lets a caller change the status of their own
// registration. A registration owned by someone else is reported as not
// found, indistinguishable from a missing one.
func UpdateRegistration(c *gin.Context) {
	registrationID := c.Param("id")

	var req UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Status != "" && !models.IsValidRegistrationStatus(req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status value.")
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

	var registration models.Registration
	if err := gormDB.Where("id = ? AND user_id = ?", registrationID, userID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if req.Status != "" {
		registration.Status = req.Status
	}

	if err := gormDB.Save(&registration).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to update registration.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   registration,
	})
}

func DeleteRegistration(c *gin.Context) {
	registrationID := c.Param("id")

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

	var registration models.Registration
	if err := gormDB.Where("id = ? AND user_id = ?", registrationID, userID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if err := gormDB.Delete(&registration).Error; err != nil {
		helpers.RespondWithInternalError(c, "Failed to delete registration.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Registration deleted successfully.",
	})
}

// GenerateRegistrationQR renders the caller's registration as a signed QR
// ticket. Cancelled registrations get no ticket.
func GenerateRegistrationQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid registration ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registration models.Registration
	if err := gormDB.Preload("Event").Where("id = ?", registrationID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if registration.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a QR code for this registration.")
		return
	}

	if registration.Status == models.StatusCancelled {
		helpers.RespondWithError(c, http.StatusForbidden, "Registration is cancelled.")
		return
	}

	qrData := generateQRCodeData(&registration)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidateRegistration verifies a scanned QR payload at the door.
func ValidateRegistration(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var validationRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	registrationID, err := extractRegistrationIDFromQRData(validationRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}

	var registration models.Registration
	if err := gormDB.Preload("User").Preload("Event").Where("id = ?", registrationID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if !validateQRCodeSignature(&registration, validationRequest.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	if registration.Status == models.StatusCancelled {
		helpers.RespondWithError(c, http.StatusForbidden, "Registration is cancelled.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Registration is valid.",
		"data":    registration,
	})
}
