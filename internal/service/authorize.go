package service

import "github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"

// CanManage is the single ownership rule guarding every mutating classroom
// operation: admins may manage any classroom, everyone else only their own.
// It is a pure decision function; existence of the classroom must already
// have been established by the caller.
func CanManage(claims *models.JWTClaims, ownerID string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == models.RoleAdmin {
		return true
	}
	return claims.UserID == ownerID
}
