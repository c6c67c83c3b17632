package models

const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organisateur"
)

func IsValidRole(role string) bool {
	return role == RoleParticipant || role == RoleOrganizer
}
