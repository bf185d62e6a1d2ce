package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
	appErrors "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/errors"
)

type stubAuthService struct {
	info  *models.UserInfo
	login *models.LoginResponse
	err   error
}

func (s *stubAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	return s.info, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return s.login, s.err
}

func buildAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	return router
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &stubAuthService{info: &models.UserInfo{ID: "u1", Email: "teacher@example.com", Role: models.RoleUser}}
	router := buildAuthRouter(svc)

	body := bytes.NewBufferString(`{"email":"teacher@example.com","password":"supersecret","full_name":"Teacher One"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"id":"u1"`)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	svc := &stubAuthService{err: appErrors.Clone(appErrors.ErrConflict, "email already taken")}
	router := buildAuthRouter(svc)

	body := bytes.NewBufferString(`{"email":"teacher@example.com","password":"supersecret","full_name":"Teacher One"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), "email already taken")
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{login: &models.LoginResponse{
		AccessToken: "token",
		ExpiresIn:   3600,
		User:        models.UserInfo{ID: "u1", Email: "teacher@example.com", Role: models.RoleUser},
	}}
	router := buildAuthRouter(svc)

	body := bytes.NewBufferString(`{"email":"teacher@example.com","password":"supersecret"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"access_token":"token"`)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "")}
	router := buildAuthRouter(svc)

	body := bytes.NewBufferString(`{"email":"teacher@example.com","password":"wrong"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrInvalidCredentials.Code)
}
