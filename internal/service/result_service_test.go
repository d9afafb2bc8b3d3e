package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

func newResultService(t *testing.T) (ResultService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t)
	svc := NewResultService(
		repository.NewSubmissionRepository(db),
		repository.NewQuizRepository(db),
		testLogger(),
	)

	return svc, db
}

func seedExamSubmission(t *testing.T, db *gorm.DB, exam models.Exam, student models.User, evaluated bool, marks *int, comment string, awarded ...int) models.Submission {
	t.Helper()

	submission := models.Submission{
		ExamTitle:       exam.Title,
		ExamID:          &exam.ID,
		StudentName:     student.Username,
		StudentID:       &student.ID,
		Evaluated:       evaluated,
		Marks:           marks,
		TeacherComments: comment,
	}
	for i, marksAwarded := range awarded {
		questionID := exam.Questions[i].ID
		submission.Answers = append(submission.Answers, models.Answer{
			QuestionID:   &questionID,
			TextAnswer:   "answer",
			MarksAwarded: marksAwarded,
		})
	}
	require.NoError(t, db.Create(&submission).Error)

	return submission
}

func TestListForGradingExcludesQuizzes(t *testing.T) {
	svc, db := newResultService(t)

	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)
	student := seedUser(t, db, "student1", models.RoleStudent)
	exam := seedExam(t, db, "Algebra Final", &teacher.ID, 5, 10)
	seedQuiz(t, db, "Capitals", &teacher.ID, "Paris")

	marks := 12
	seedExamSubmission(t, db, exam, student, true, &marks, "", 5, 7)

	yes := true
	quizAttempt := models.Submission{
		QuizTitle:   "Capitals",
		StudentName: student.Username,
		Evaluated:   true,
		Answers:     []models.Answer{{IsCorrect: &yes, MarksAwarded: 1}},
	}
	require.NoError(t, db.Create(&quizAttempt).Error)

	rows, err := svc.ListForGrading(context.Background(), auth.Principal{UserID: teacher.ID, Username: "teacher1", Role: auth.RoleTeacher})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Algebra Final", rows[0].ExamTitle)
	require.Equal(t, 12, rows[0].MarksObtained)
	require.Equal(t, 15, rows[0].TotalMarks)
	require.Equal(t, "12 / 15", rows[0].MarksDisplay)
}

func TestListForGradingScopedToExamCreator(t *testing.T) {
	svc, db := newResultService(t)

	teacher1 := seedUser(t, db, "teacher1", models.RoleTeacher)
	teacher2 := seedUser(t, db, "teacher2", models.RoleTeacher)
	student := seedUser(t, db, "student1", models.RoleStudent)
	exam1 := seedExam(t, db, "Algebra Final", &teacher1.ID, 5)
	exam2 := seedExam(t, db, "History Midterm", &teacher2.ID, 5)

	seedExamSubmission(t, db, exam1, student, false, nil, "", 0)
	seedExamSubmission(t, db, exam2, student, false, nil, "", 0)

	rows, err := svc.ListForGrading(context.Background(), auth.Principal{UserID: teacher1.ID, Username: "teacher1", Role: auth.RoleTeacher})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Algebra Final", rows[0].ExamTitle)

	all, err := svc.ListForGrading(context.Background(), auth.Principal{UserID: 99, Username: "root", Role: auth.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMySubmissionsRequiresIdentity(t *testing.T) {
	svc, _ := newResultService(t)

	_, err := svc.MySubmissions(context.Background(), auth.Principal{})
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMySubmissionsListsOwnExamAttempts(t *testing.T) {
	svc, db := newResultService(t)

	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)
	student := seedUser(t, db, "student1", models.RoleStudent)
	other := seedUser(t, db, "student2", models.RoleStudent)
	exam := seedExam(t, db, "Algebra Final", &teacher.ID, 5)

	marks := 4
	seedExamSubmission(t, db, exam, student, true, &marks, "ok", 4)
	seedExamSubmission(t, db, exam, other, false, nil, "", 0)

	rows, err := svc.MySubmissions(context.Background(), auth.Principal{UserID: student.ID, Username: "student1", Role: auth.RoleStudent})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, exam.ID, rows[0].ExamID)
	require.True(t, rows[0].Evaluated)
	require.Equal(t, 4, rows[0].Marks)
}

func TestStudentPerformanceFormatsEvaluatedAttempts(t *testing.T) {
	svc, db := newResultService(t)

	teacher := seedUser(t, db, "teacher1", models.RoleTeacher)
	student := seedUser(t, db, "student1", models.RoleStudent)
	exam := seedExam(t, db, "Algebra Final", &teacher.ID, 5, 10)
	seedQuiz(t, db, "Capitals", &teacher.ID, "Paris", "Madrid")

	marks := 12
	seedExamSubmission(t, db, exam, student, true, &marks, "", 5, 7)
	seedExamSubmission(t, db, exam, student, false, nil, "", 0, 0)

	yes := true
	no := false
	quizMarks := 1
	quizAttempt := models.Submission{
		QuizTitle:       "Capitals",
		StudentName:     student.Username,
		StudentID:       &student.ID,
		Evaluated:       true,
		Marks:           &quizMarks,
		TeacherComments: "Auto-evaluated quiz result",
		Answers: []models.Answer{
			{IsCorrect: &yes, MarksAwarded: 1},
			{IsCorrect: &no},
		},
	}
	require.NoError(t, db.Create(&quizAttempt).Error)

	rows, err := svc.StudentPerformance(context.Background(), auth.Principal{UserID: student.ID, Username: "student1", Role: auth.RoleStudent})
	require.NoError(t, err)
	require.Len(t, rows, 2, "unevaluated attempts are excluded")

	byTitle := map[string]int{}
	for i, row := range rows {
		byTitle[row.Title] = i
		require.Equal(t, "Evaluated", row.Status)
	}

	examRow := rows[byTitle["Algebra Final"]]
	require.Equal(t, "12 / 15 (80.0%)", examRow.MarksDisplay)
	require.Equal(t, "-", examRow.Comment)
	require.Equal(t, models.SubmissionKindExam, examRow.Kind)

	quizRow := rows[byTitle["Capitals"]]
	require.Equal(t, "1 / 2 (50.0%)", quizRow.MarksDisplay)
	require.Equal(t, "Auto-evaluated quiz result", quizRow.Comment)
	require.Equal(t, models.SubmissionKindQuiz, quizRow.Kind)
}
