package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrQuizNotFound indicates a quiz could not be located.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizService manages the quiz side of the assessment catalog.
type QuizService interface {
	Create(ctx context.Context, payload dto.QuizCreateRequest, principal auth.Principal) (dto.QuizResponse, error)
	ListFor(ctx context.Context, principal auth.Principal) ([]dto.QuizResponse, error)
	GetByID(ctx context.Context, id uint, principal auth.Principal) (dto.QuizResponse, error)
	Delete(ctx context.Context, id uint, principal auth.Principal) error
}

type quizService struct {
	quizzes   repository.QuizRepository
	users     repository.UserRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes repository.QuizRepository, users repository.UserRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:   quizzes,
		users:     users,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest, principal auth.Principal) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz := models.Quiz{
		Title:           payload.Title,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
	}

	if principal.IsAuthenticated() {
		if creator, err := s.users.GetByUsername(ctx, principal.Username); err == nil {
			quiz.CreatedByID = &creator.ID
		}
	}

	for _, questionInput := range payload.Questions {
		marks := questionInput.Marks
		if marks <= 0 {
			marks = 1
		}
		question := models.Question{
			Text:  questionInput.Text,
			Marks: marks,
		}
		for _, optionInput := range questionInput.Options {
			question.Options = append(question.Options, models.Option{
				Text:      optionInput.Text,
				IsCorrect: optionInput.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quiz.ID).Str("title", quiz.Title).Msg("quiz created")
	s.record(ctx, principal, "create", "quiz", quiz.ID, map[string]interface{}{"title": quiz.Title})

	created, err := s.quizzes.GetByID(ctx, quiz.ID)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(created, true), nil
}

// ListFor returns the role-scoped catalog view including answer keys.
func (s *quizService) ListFor(ctx context.Context, principal auth.Principal) ([]dto.QuizResponse, error) {
	var (
		quizzes []models.Quiz
		err     error
	)

	switch principal.Role {
	case auth.RoleAdmin:
		quizzes, err = s.quizzes.List(ctx)
	case auth.RoleTeacher:
		quizzes, err = s.quizzes.ListByCreator(ctx, principal.Username)
	default:
		return []dto.QuizResponse{}, nil
	}

	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes, true), nil
}

// GetByID serves the quiz definition. Only admins and the quiz author see
// the answer key; everyone else gets the options without correctness flags.
func (s *quizService) GetByID(ctx context.Context, id uint, principal auth.Principal) (dto.QuizResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	includeAnswerKey := principal.IsAdmin()
	if quiz.CreatedBy != nil && principal.SameUser(quiz.CreatedBy.Username) {
		includeAnswerKey = true
	}

	return dto.NewQuizResponse(quiz, includeAnswerKey), nil
}

func (s *quizService) Delete(ctx context.Context, id uint, principal auth.Principal) error {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("quiz_id", id).Msg("quiz deleted")
	s.record(ctx, principal, "delete", "quiz", id, map[string]interface{}{"title": quiz.Title})

	return nil
}

func (s *quizService) record(ctx context.Context, principal auth.Principal, action, entity string, entityID uint, metadata map[string]interface{}) {
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
