package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

func createQuiz(t *testing.T, db *gorm.DB, title string, creatorID *uint) models.Quiz {
	t.Helper()

	quiz := models.Quiz{
		Title:       title,
		CreatedByID: creatorID,
		Questions: []models.Question{
			{
				Text:  "Capital of France?",
				Marks: 1,
				Options: []models.Option{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
		},
	}
	require.NoError(t, db.Create(&quiz).Error)

	return quiz
}

func TestQuizRepositoryGetByTitleIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuizRepository(db)

	teacher := createUser(t, db, "teacher1", models.RoleTeacher)
	createQuiz(t, db, "Capitals", &teacher.ID)

	quiz, err := repo.GetByTitle(context.Background(), "cApItAlS")
	require.NoError(t, err)
	require.Equal(t, "Capitals", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	require.Len(t, quiz.Questions[0].Options, 2)
	require.Equal(t, "teacher1", quiz.CreatedBy.Username)

	_, err = repo.GetByTitle(context.Background(), "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuizRepositoryListByCreator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuizRepository(db)

	teacher1 := createUser(t, db, "teacher1", models.RoleTeacher)
	teacher2 := createUser(t, db, "teacher2", models.RoleTeacher)
	createQuiz(t, db, "Capitals", &teacher1.ID)
	createQuiz(t, db, "Rivers", &teacher2.ID)

	mine, err := repo.ListByCreator(context.Background(), "teacher1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Capitals", mine[0].Title)
}

func TestQuizRepositoryDeleteRemovesQuestionsAndOptions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuizRepository(db)

	teacher := createUser(t, db, "teacher1", models.RoleTeacher)
	quiz := createQuiz(t, db, "Capitals", &teacher.ID)

	require.NoError(t, repo.Delete(context.Background(), quiz.ID))

	var quizCount, questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&quizCount).Error)
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	require.Zero(t, quizCount)
	require.Zero(t, questionCount)
	require.Zero(t, optionCount)
}
