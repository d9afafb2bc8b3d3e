package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrExamNotFound indicates an exam could not be located.
var ErrExamNotFound = errors.New("exam not found")

// ExamService manages the exam side of the assessment catalog.
type ExamService interface {
	Create(ctx context.Context, payload dto.ExamCreateRequest, principal auth.Principal) (dto.ExamResponse, error)
	ListFor(ctx context.Context, principal auth.Principal) ([]dto.ExamResponse, error)
	GetByID(ctx context.Context, id uint) (dto.ExamResponse, error)
	Delete(ctx context.Context, id uint, principal auth.Principal) error
}

type examService struct {
	exams       repository.ExamRepository
	users       repository.UserRepository
	submissions repository.SubmissionRepository
	activity    ActivityRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewExamService constructs an ExamService instance.
func NewExamService(exams repository.ExamRepository, users repository.UserRepository, submissions repository.SubmissionRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		exams:       exams,
		users:       users,
		submissions: submissions,
		activity:    activity,
		validator:   validate,
		logger:      logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest, principal auth.Principal) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	exam := models.Exam{
		Subject:         payload.Subject,
		Title:           payload.Title,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
	}

	if principal.IsAuthenticated() {
		if creator, err := s.users.GetByUsername(ctx, principal.Username); err == nil {
			exam.CreatedByID = &creator.ID
		}
	}

	for _, input := range payload.Questions {
		questionType := strings.TrimSpace(input.Type)
		if questionType == "" {
			questionType = models.QuestionTypeOther
		}
		exam.Questions = append(exam.Questions, models.Question{
			Text:  input.Text,
			Marks: input.Marks,
			Type:  questionType,
		})
	}

	if err := s.exams.Create(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Uint("exam_id", exam.ID).Str("title", exam.Title).Msg("exam created")
	s.record(ctx, principal, "create", "exam", exam.ID, map[string]interface{}{"title": exam.Title})

	created, err := s.exams.GetByID(ctx, exam.ID)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(created), nil
}

// ListFor returns the role-scoped catalog view: admins see everything,
// teachers their own exams, everyone else nothing.
func (s *examService) ListFor(ctx context.Context, principal auth.Principal) ([]dto.ExamResponse, error) {
	var (
		exams []models.Exam
		err   error
	)

	switch principal.Role {
	case auth.RoleAdmin:
		exams, err = s.exams.List(ctx)
	case auth.RoleTeacher:
		exams, err = s.exams.ListByCreator(ctx, principal.Username)
	default:
		return []dto.ExamResponse{}, nil
	}

	if err != nil {
		return nil, err
	}

	return dto.NewExamResponseSlice(exams), nil
}

func (s *examService) GetByID(ctx context.Context, id uint) (dto.ExamResponse, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(exam), nil
}

// Delete cascades in ledger-before-catalog order: the exam's submissions and
// their answers go first so no answer is left pointing at a deleted question.
func (s *examService) Delete(ctx context.Context, id uint, principal auth.Principal) error {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	removed, err := s.submissions.DeleteByExamID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.exams.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("exam_id", id).Int64("submissions_removed", removed).Msg("exam deleted")
	s.record(ctx, principal, "delete", "exam", id, map[string]interface{}{
		"title":               exam.Title,
		"submissions_removed": removed,
	})

	return nil
}

func (s *examService) record(ctx context.Context, principal auth.Principal, action, entity string, entityID uint, metadata map[string]interface{}) {
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
