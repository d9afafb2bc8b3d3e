package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrUnauthenticated indicates the caller must sign in for this view.
var ErrUnauthenticated = errors.New("authentication required")

// ResultService builds the read-side reports over the submission ledger: the
// teacher grading queue, a student's own attempts, and the performance report.
type ResultService interface {
	ListForGrading(ctx context.Context, principal auth.Principal) ([]dto.GradingRow, error)
	MySubmissions(ctx context.Context, principal auth.Principal) ([]dto.MySubmissionRow, error)
	StudentPerformance(ctx context.Context, principal auth.Principal) ([]dto.PerformanceRow, error)
}

type resultService struct {
	submissions repository.SubmissionRepository
	quizzes     repository.QuizRepository
	logger      zerolog.Logger
}

// NewResultService constructs a ResultService instance.
func NewResultService(submissions repository.SubmissionRepository, quizzes repository.QuizRepository, logger zerolog.Logger) ResultService {
	return &resultService{
		submissions: submissions,
		quizzes:     quizzes,
		logger:      logger.With().Str("component", "result_service").Logger(),
	}
}

// ListForGrading returns the evaluation queue. Quiz attempts are excluded
// since they arrive graded; only exam attempts need a manual pass.
func (s *resultService) ListForGrading(ctx context.Context, principal auth.Principal) ([]dto.GradingRow, error) {
	submissions, err := s.scopedSubmissions(ctx, principal)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.GradingRow, 0, len(submissions))
	for _, submission := range submissions {
		if submission.IsQuiz() {
			continue
		}

		obtained, possible := ExamTotals(submission)
		rows = append(rows, dto.GradingRow{
			ID:            submission.ID,
			StudentName:   submission.StudentUsername(),
			ExamTitle:     submission.ExamTitle,
			Evaluated:     submission.Evaluated,
			SubmittedAt:   submission.SubmittedAt,
			MarksObtained: obtained,
			TotalMarks:    possible,
			MarksDisplay:  FormatScore(obtained, possible),
		})
	}

	return rows, nil
}

// MySubmissions lists the calling student's own exam attempts.
func (s *resultService) MySubmissions(ctx context.Context, principal auth.Principal) ([]dto.MySubmissionRow, error) {
	if !principal.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	submissions, err := s.submissions.ListByStudent(ctx, principal.Username)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MySubmissionRow, 0, len(submissions))
	for _, submission := range submissions {
		if submission.IsQuiz() {
			continue
		}

		marks := 0
		if submission.Marks != nil {
			marks = *submission.Marks
		}

		var examID uint
		if submission.ExamID != nil {
			examID = *submission.ExamID
		}

		rows = append(rows, dto.MySubmissionRow{
			SubmissionID: submission.ID,
			ExamID:       examID,
			ExamTitle:    submission.ExamTitle,
			Evaluated:    submission.Evaluated,
			SubmittedAt:  submission.SubmittedAt,
			Marks:        marks,
		})
	}

	return rows, nil
}

// StudentPerformance reports every evaluated attempt, quizzes included, with
// the percentage score display.
func (s *resultService) StudentPerformance(ctx context.Context, principal auth.Principal) ([]dto.PerformanceRow, error) {
	submissions, err := s.scopedSubmissions(ctx, principal)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PerformanceRow, 0, len(submissions))
	for _, submission := range submissions {
		if !submission.Evaluated {
			continue
		}

		rows = append(rows, s.performanceRow(ctx, submission))
	}

	return rows, nil
}

func (s *resultService) performanceRow(ctx context.Context, submission models.Submission) dto.PerformanceRow {
	var obtained, possible int
	title := submission.ExamTitle

	if submission.IsQuiz() {
		title = submission.QuizTitle
		fallback := 0
		if quiz, err := s.quizzes.GetByTitle(ctx, submission.QuizTitle); err == nil {
			fallback = len(quiz.Questions)
		}
		obtained, possible = QuizTotals(submission, fallback)
	} else {
		obtained, possible = ExamTotals(submission)
	}

	comment := submission.TeacherComments
	if comment == "" {
		if submission.IsQuiz() {
			comment = quizAutoComment
		} else {
			comment = "-"
		}
	}

	return dto.PerformanceRow{
		StudentName:   submission.StudentUsername(),
		Title:         title,
		Kind:          submission.Kind(),
		MarksObtained: obtained,
		TotalMarks:    possible,
		MarksDisplay:  FormatScorePercent(obtained, possible),
		Comment:       comment,
		Status:        "Evaluated",
	}
}

// scopedSubmissions applies the role scope used by every report: admins see
// the full ledger, teachers the attempts against their own exams and quizzes,
// students their own attempts.
func (s *resultService) scopedSubmissions(ctx context.Context, principal auth.Principal) ([]models.Submission, error) {
	switch principal.Role {
	case auth.RoleAdmin:
		return s.submissions.ListAll(ctx)
	case auth.RoleTeacher:
		examSubmissions, err := s.submissions.ListByExamCreator(ctx, principal.Username)
		if err != nil {
			return nil, err
		}
		quizSubmissions, err := s.submissions.ListByQuizCreator(ctx, principal.Username)
		if err != nil {
			return nil, err
		}
		return append(examSubmissions, quizSubmissions...), nil
	case auth.RoleStudent:
		return s.submissions.ListByStudent(ctx, principal.Username)
	default:
		return nil, ErrUnauthenticated
	}
}
