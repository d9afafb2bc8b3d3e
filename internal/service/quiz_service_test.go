package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

func newQuizService(t *testing.T) (QuizService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t)
	svc := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewUserRepository(db),
		nil,
		testValidator(),
		testLogger(),
	)

	return svc, db
}

func TestQuizServiceCreateDefaultsMarks(t *testing.T) {
	svc, db := newQuizService(t)
	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)

	created, err := svc.Create(context.Background(), dto.QuizCreateRequest{
		Title: "Capitals",
		Questions: []dto.QuizQuestionInput{
			{
				Text: "Capital of France?",
				Options: []dto.QuizOptionInput{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
		},
	}, auth.Principal{UserID: teacher.ID, Username: teacher.Username, Role: auth.RoleTeacher})
	require.NoError(t, err)
	require.Equal(t, "teacher1", created.CreatedBy)
	require.Len(t, created.Questions, 1)
	require.Equal(t, 1, created.Questions[0].Marks, "marks default to one")
	require.Len(t, created.Questions[0].Options, 2)
	require.NotNil(t, created.Questions[0].Options[0].IsCorrect, "author sees the answer key")
}

func TestQuizServiceCreateRequiresTwoOptions(t *testing.T) {
	svc, db := newQuizService(t)
	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)

	_, err := svc.Create(context.Background(), dto.QuizCreateRequest{
		Title: "Broken",
		Questions: []dto.QuizQuestionInput{
			{Text: "Lonely option", Options: []dto.QuizOptionInput{{Text: "only"}}},
		},
	}, auth.Principal{UserID: teacher.ID, Username: teacher.Username, Role: auth.RoleTeacher})
	require.Error(t, err)
}

func TestQuizServiceGetByIDHidesAnswerKey(t *testing.T) {
	svc, db := newQuizService(t)
	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)
	student := seedUser(t, db, "student1", models.RoleStudent)
	quiz := seedQuiz(t, db, "Capitals", &teacher.ID, "Paris")

	asStudent, err := svc.GetByID(context.Background(), quiz.ID, auth.Principal{UserID: student.ID, Username: student.Username, Role: auth.RoleStudent})
	require.NoError(t, err)
	require.Nil(t, asStudent.Questions[0].Options[0].IsCorrect)

	asAuthor, err := svc.GetByID(context.Background(), quiz.ID, auth.Principal{UserID: teacher.ID, Username: teacher.Username, Role: auth.RoleTeacher})
	require.NoError(t, err)
	require.NotNil(t, asAuthor.Questions[0].Options[0].IsCorrect)

	_, err = svc.GetByID(context.Background(), quiz.ID+99, auth.Principal{})
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizServiceDeleteRemovesQuestionGraph(t *testing.T) {
	svc, db := newQuizService(t)
	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)
	quiz := seedQuiz(t, db, "Capitals", &teacher.ID, "Paris", "Madrid")

	owner := auth.Principal{UserID: teacher.ID, Username: teacher.Username, Role: auth.RoleTeacher}
	require.NoError(t, svc.Delete(context.Background(), quiz.ID, owner))

	var questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	require.Zero(t, questionCount)
	require.Zero(t, optionCount)

	require.ErrorIs(t, svc.Delete(context.Background(), quiz.ID, owner), ErrQuizNotFound)
}
