package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/handler"
	"github.com/edupoint-labs/exam-portal-api/internal/service"
)

type mockAuthService struct {
	lastSignup dto.SignupRequest
	response   dto.AuthResponse
	err        error
}

func (m *mockAuthService) Signup(_ context.Context, req dto.SignupRequest) (dto.AuthResponse, error) {
	m.lastSignup = req
	if m.err != nil {
		return dto.AuthResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockAuthService) Signin(_ context.Context, _ dto.SigninRequest) (dto.AuthResponse, error) {
	if m.err != nil {
		return dto.AuthResponse{}, m.err
	}
	return m.response, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandlerSignupCreated(t *testing.T) {
	svc := &mockAuthService{response: dto.AuthResponse{Token: "jwt", Username: "student1", Role: "ROLE_STUDENT"}}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/signup", dto.SignupRequest{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "correct-horse",
		Role:     "ROLE_STUDENT",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "student1", svc.lastSignup.Username)

	var envelope struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "jwt", envelope.Data.Token)
}

func TestAuthHandlerSignupConflict(t *testing.T) {
	svc := &mockAuthService{err: service.ErrUsernameTaken}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/signup", dto.SignupRequest{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "correct-horse",
		Role:     "ROLE_STUDENT",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandlerSigninUnauthorized(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/signin", dto.SigninRequest{Username: "ghost", Password: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerRejectsMalformedBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
