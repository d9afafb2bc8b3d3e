package service

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// setupServiceDB opens a per-test in-memory database so tests never observe
// each other's rows.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Exam{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Submission{},
		&models.Answer{},
		&models.Paper{},
		&models.ActivityLog{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func seedExam(t *testing.T, db *gorm.DB, title string, creatorID *uint, questionMarks ...int) models.Exam {
	t.Helper()

	exam := models.Exam{Subject: "General", Title: title, CreatedByID: creatorID}
	for i, marks := range questionMarks {
		exam.Questions = append(exam.Questions, models.Question{
			Text:  fmt.Sprintf("Question %d", i+1),
			Marks: marks,
			Type:  models.QuestionTypeLong,
		})
	}
	require.NoError(t, db.Create(&exam).Error)

	return exam
}

func seedQuiz(t *testing.T, db *gorm.DB, title string, creatorID *uint, correctAnswers ...string) models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, CreatedByID: creatorID}
	for i, correct := range correctAnswers {
		quiz.Questions = append(quiz.Questions, models.Question{
			Text:  fmt.Sprintf("Question %d", i+1),
			Marks: 1,
			Options: []models.Option{
				{Text: correct, IsCorrect: true},
				{Text: "wrong answer", IsCorrect: false},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)

	return quiz
}
