package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/observability"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionForbidden indicates the caller may not access the submission.
var ErrSubmissionForbidden = errors.New("not allowed to access this submission")

// ErrNotExamSubmission indicates an evaluation was attempted against a quiz
// attempt, which is graded automatically and never re-marked by hand.
var ErrNotExamSubmission = errors.New("only exam submissions can be evaluated")

// ErrStudentNotFound indicates the referenced student account does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrQuestionNotFound indicates an answered question does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// ErrAnswerNotInSubmission indicates an evaluation named an answer that does
// not belong to the submission being evaluated.
var ErrAnswerNotInSubmission = errors.New("answer does not belong to this submission")

const quizAutoComment = "Auto-evaluated quiz result"

// SubmissionService owns the submission ledger: recording attempts, serving
// them back under the access policy, and the manual evaluation pass.
type SubmissionService interface {
	SubmitExam(ctx context.Context, payload dto.ExamSubmitRequest, principal auth.Principal) (dto.ExamSubmitResponse, error)
	SubmitQuiz(ctx context.Context, payload dto.QuizSubmitRequest, principal auth.Principal) (dto.QuizSubmitResponse, error)
	Get(ctx context.Context, id uint, principal auth.Principal) (dto.SubmissionDetail, error)
	Evaluate(ctx context.Context, id uint, payload dto.EvaluateRequest, principal auth.Principal) (dto.SubmissionDetail, error)
	AppendAnswer(ctx context.Context, id uint, payload dto.AppendAnswerRequest, principal auth.Principal) (dto.SubmissionDetail, error)
	Delete(ctx context.Context, id uint, principal auth.Principal) error
}

type submissionService struct {
	submissions repository.SubmissionRepository
	exams       repository.ExamRepository
	quizzes     repository.QuizRepository
	questions   repository.QuestionRepository
	users       repository.UserRepository
	activity    ActivityRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	exams repository.ExamRepository,
	quizzes repository.QuizRepository,
	questions repository.QuestionRepository,
	users repository.UserRepository,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		exams:       exams,
		quizzes:     quizzes,
		questions:   questions,
		users:       users,
		activity:    activity,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// SubmitExam records an exam attempt verbatim. Nothing is graded here; the
// attempt waits in the ledger until a teacher runs an evaluation pass.
func (s *submissionService) SubmitExam(ctx context.Context, payload dto.ExamSubmitRequest, principal auth.Principal) (dto.ExamSubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamSubmitResponse{}, err
	}

	exam, err := s.exams.GetByID(ctx, payload.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamSubmitResponse{}, ErrExamNotFound
		}
		return dto.ExamSubmitResponse{}, err
	}

	student, err := s.resolveStudent(ctx, payload.StudentID, principal)
	if err != nil {
		return dto.ExamSubmitResponse{}, err
	}

	submission := models.Submission{
		ExamTitle:   exam.Title,
		ExamID:      &exam.ID,
		StudentName: student.Username,
		StudentID:   &student.ID,
		Evaluated:   false,
		SubmittedAt: s.now(),
	}

	for _, input := range payload.Answers {
		question, err := s.questions.GetByID(ctx, input.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.ExamSubmitResponse{}, ErrQuestionNotFound
			}
			return dto.ExamSubmitResponse{}, err
		}

		questionID := question.ID
		submission.Answers = append(submission.Answers, models.Answer{
			QuestionID: &questionID,
			TextAnswer: input.TextAnswer,
			FilePath:   input.FilePath,
		})
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.ExamSubmitResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("exam_id", exam.ID).
		Str("student", student.Username).
		Int("answers", len(submission.Answers)).
		Msg("exam submission recorded")
	s.record(ctx, principal, "submit", "submission", submission.ID, map[string]interface{}{
		"exam_title": exam.Title,
		"student":    student.Username,
	})

	return dto.ExamSubmitResponse{SubmissionID: submission.ID}, nil
}

// SubmitQuiz records a quiz attempt and grades it inline. Each selected
// option is matched against the question's answer key; the stored mark is the
// count of correct answers and the attempt is final on arrival.
func (s *submissionService) SubmitQuiz(ctx context.Context, payload dto.QuizSubmitRequest, principal auth.Principal) (dto.QuizSubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmitResponse{}, err
	}

	quiz, err := s.quizzes.GetByTitle(ctx, payload.QuizTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmitResponse{}, ErrQuizNotFound
		}
		return dto.QuizSubmitResponse{}, err
	}

	studentName := strings.TrimSpace(payload.StudentName)
	if principal.IsAuthenticated() {
		studentName = principal.Username
	}
	if studentName == "" {
		studentName = "anonymous"
	}

	submission := models.Submission{
		QuizTitle:   quiz.Title,
		StudentName: studentName,
		Evaluated:   true,
		SubmittedAt: s.now(),
	}
	if principal.IsAuthenticated() {
		if student, err := s.users.GetByUsername(ctx, principal.Username); err == nil {
			submission.StudentID = &student.ID
		}
	}

	questionsByID := make(map[uint]*models.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	correct := 0
	for _, input := range payload.Answers {
		question := questionsByID[input.QuestionID]
		isCorrect, awarded := GradeSelection(question, input.SelectedOption)
		if isCorrect {
			correct++
		}

		answer := models.Answer{
			TextAnswer:   input.SelectedOption,
			MarksAwarded: awarded,
			IsCorrect:    &isCorrect,
		}
		if question != nil {
			questionID := question.ID
			answer.QuestionID = &questionID
		}
		submission.Answers = append(submission.Answers, answer)
	}

	marks := correct
	submission.Marks = &marks
	submission.TeacherComments = quizAutoComment

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.QuizSubmitResponse{}, err
	}

	observability.Evaluations().WithLabelValues("auto").Inc()
	s.logger.Info().
		Uint("submission_id", submission.ID).
		Str("quiz", quiz.Title).
		Str("student", studentName).
		Int("correct", correct).
		Int("answered", len(payload.Answers)).
		Msg("quiz submission auto-graded")
	s.record(ctx, principal, "submit", "submission", submission.ID, map[string]interface{}{
		"quiz_title": quiz.Title,
		"student":    studentName,
		"marks":      marks,
	})

	return dto.QuizSubmitResponse{
		SubmissionID:   submission.ID,
		Marks:          correct,
		TotalQuestions: len(payload.Answers),
		FormattedScore: FormatScore(correct, len(payload.Answers)),
	}, nil
}

func (s *submissionService) Get(ctx context.Context, id uint, principal auth.Principal) (dto.SubmissionDetail, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return dto.SubmissionDetail{}, err
	}

	if !CanViewSubmission(submission, principal) {
		return dto.SubmissionDetail{}, ErrSubmissionForbidden
	}

	return dto.NewSubmissionDetail(submission), nil
}

// Evaluate overwrites the marks of the named answers, recomputes the total
// from every answer on the submission, and marks it evaluated. Running it
// again replaces the previous evaluation wholesale.
func (s *submissionService) Evaluate(ctx context.Context, id uint, payload dto.EvaluateRequest, principal auth.Principal) (dto.SubmissionDetail, error) {
	ctx, span := otel.Tracer("submission_service").Start(ctx, "Evaluate",
		trace.WithAttributes(attribute.Int("submission.id", int(id))))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionDetail{}, err
	}

	submission, err := s.load(ctx, id)
	if err != nil {
		return dto.SubmissionDetail{}, err
	}

	if !CanModifySubmission(submission, principal) {
		return dto.SubmissionDetail{}, ErrSubmissionForbidden
	}

	if submission.IsQuiz() {
		return dto.SubmissionDetail{}, ErrNotExamSubmission
	}

	answersByID := make(map[uint]*models.Answer, len(submission.Answers))
	for i := range submission.Answers {
		answersByID[submission.Answers[i].ID] = &submission.Answers[i]
	}

	for answerID, awarded := range payload.MarksAwarded {
		answer, ok := answersByID[answerID]
		if !ok {
			return dto.SubmissionDetail{}, ErrAnswerNotInSubmission
		}
		if awarded < 0 {
			awarded = 0
		}
		isCorrect := awarded > 0
		answer.MarksAwarded = awarded
		answer.IsCorrect = &isCorrect
	}

	total := 0
	for _, answer := range submission.Answers {
		total += answer.MarksAwarded
	}

	submission.Evaluated = true
	submission.Marks = &total
	submission.TeacherComments = payload.Comment

	if err := s.submissions.SaveEvaluation(ctx, &submission); err != nil {
		return dto.SubmissionDetail{}, err
	}

	observability.Evaluations().WithLabelValues("manual").Inc()
	s.logger.Info().
		Uint("submission_id", id).
		Int("total_marks", total).
		Str("evaluator", principal.Username).
		Msg("submission evaluated")
	s.record(ctx, principal, "evaluate", "submission", id, map[string]interface{}{
		"total_marks": total,
	})

	evaluated, err := s.load(ctx, id)
	if err != nil {
		return dto.SubmissionDetail{}, err
	}

	return dto.NewSubmissionDetail(evaluated), nil
}

// AppendAnswer attaches a late answer, typically a file reference uploaded
// after the main submit, to an existing exam submission.
func (s *submissionService) AppendAnswer(ctx context.Context, id uint, payload dto.AppendAnswerRequest, principal auth.Principal) (dto.SubmissionDetail, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionDetail{}, err
	}

	submission, err := s.load(ctx, id)
	if err != nil {
		return dto.SubmissionDetail{}, err
	}

	if !CanViewSubmission(submission, principal) {
		return dto.SubmissionDetail{}, ErrSubmissionForbidden
	}

	answer := models.Answer{
		SubmissionID: submission.ID,
		TextAnswer:   payload.TextAnswer,
		FilePath:     payload.FilePath,
	}

	if err := s.submissions.AppendAnswer(ctx, &answer); err != nil {
		return dto.SubmissionDetail{}, err
	}

	s.logger.Info().Uint("submission_id", id).Uint("answer_id", answer.ID).Msg("late answer appended")

	updated, err := s.load(ctx, id)
	if err != nil {
		return dto.SubmissionDetail{}, err
	}

	return dto.NewSubmissionDetail(updated), nil
}

func (s *submissionService) Delete(ctx context.Context, id uint, principal auth.Principal) error {
	submission, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !CanModifySubmission(submission, principal) {
		return ErrSubmissionForbidden
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("submission_id", id).Msg("submission deleted")
	s.record(ctx, principal, "delete", "submission", id, map[string]interface{}{
		"student": submission.StudentUsername(),
	})

	return nil
}

// load fetches a submission and attaches the quiz definition for quiz-kind
// attempts so the access policy can see the quiz author.
func (s *submissionService) load(ctx context.Context, id uint) (models.Submission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	s.attachQuiz(ctx, &submission)

	return submission, nil
}

func (s *submissionService) attachQuiz(ctx context.Context, submission *models.Submission) {
	if !submission.IsQuiz() {
		return
	}

	quiz, err := s.quizzes.GetByTitle(ctx, submission.QuizTitle)
	if err != nil {
		// Quiz deleted after the attempt; ownership checks fall through.
		return
	}

	submission.Quiz = &quiz
}

// resolveStudent prefers the authenticated principal; the request's student
// ID is honoured only for unauthenticated submits kept for older clients.
func (s *submissionService) resolveStudent(ctx context.Context, requestedID uint, principal auth.Principal) (models.User, error) {
	if principal.IsAuthenticated() {
		student, err := s.users.GetByUsername(ctx, principal.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, ErrStudentNotFound
			}
			return models.User{}, err
		}
		return student, nil
	}

	if requestedID == 0 {
		return models.User{}, ErrStudentNotFound
	}

	student, err := s.users.GetByID(ctx, requestedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrStudentNotFound
		}
		return models.User{}, err
	}

	return student, nil
}

func (s *submissionService) record(ctx context.Context, principal auth.Principal, action, entity string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	id := entityID
	if err := s.activity.Record(ctx, ActivityEntry{
		ActorName:  principal.Username,
		ActorRole:  principal.Role.String(),
		Action:     action,
		EntityType: entity,
		EntityID:   &id,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record activity")
	}
}
