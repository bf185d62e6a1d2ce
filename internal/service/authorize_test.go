package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
)

func TestCanManage(t *testing.T) {
	tests := []struct {
		name    string
		claims  *models.JWTClaims
		ownerID string
		want    bool
	}{
		{
			name:    "owner may manage",
			claims:  &models.JWTClaims{UserID: "u1", Role: models.RoleUser},
			ownerID: "u1",
			want:    true,
		},
		{
			name:    "admin may manage any classroom",
			claims:  &models.JWTClaims{UserID: "u9", Role: models.RoleAdmin},
			ownerID: "u1",
			want:    true,
		},
		{
			name:    "other user may not manage",
			claims:  &models.JWTClaims{UserID: "u2", Role: models.RoleUser},
			ownerID: "u1",
			want:    false,
		},
		{
			name:    "nil claims may not manage",
			claims:  nil,
			ownerID: "u1",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManage(tt.claims, tt.ownerID))
		})
	}
}
