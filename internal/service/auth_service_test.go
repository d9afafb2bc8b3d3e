package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), issuer, testValidator(), testLogger())

	return svc, db
}

func TestSignupIssuesToken(t *testing.T) {
	svc, db := newAuthService(t)

	response, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "correct-horse",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, "student1", response.Username)
	require.Equal(t, models.RoleStudent, response.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "student1").Error)
	require.NotEqual(t, "correct-horse", stored.Password, "password must be hashed")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))
}

func TestSignupConflicts(t *testing.T) {
	svc, _ := newAuthService(t)

	first := dto.SignupRequest{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "correct-horse",
		Role:     models.RoleStudent,
	}
	_, err := svc.Signup(context.Background(), first)
	require.NoError(t, err)

	duplicateName := first
	duplicateName.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), duplicateName)
	require.ErrorIs(t, err, ErrUsernameTaken)

	duplicateEmail := first
	duplicateEmail.Username = "student2"
	_, err = svc.Signup(context.Background(), duplicateEmail)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "correct-horse",
		Role:     "ROLE_WIZARD",
	})
	require.Error(t, err)
}

func TestSigninVerifiesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "teacher1",
		Email:    "teacher1@example.com",
		Password: "correct-horse",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	response, err := svc.Signin(context.Background(), dto.SigninRequest{Username: "teacher1", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, response.Role)
	require.NotEmpty(t, response.Token)

	_, err = svc.Signin(context.Background(), dto.SigninRequest{Username: "teacher1", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Signin(context.Background(), dto.SigninRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
