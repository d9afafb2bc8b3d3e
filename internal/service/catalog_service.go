package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

const (
	cacheKeyPublicExams   = "catalog:exams"
	cacheKeyPublicQuizzes = "catalog:quizzes"
)

// PublicCatalogService serves the unauthenticated exam/quiz listings students
// browse before starting an attempt. Listings are cached in Redis with a TTL;
// staleness up to the TTL is acceptable for a read-only catalog.
type PublicCatalogService interface {
	ListExams(ctx context.Context) ([]dto.ExamResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
}

type publicCatalogService struct {
	exams    repository.ExamRepository
	quizzes  repository.QuizRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewPublicCatalogService builds the cached public catalog reader.
func NewPublicCatalogService(exams repository.ExamRepository, quizzes repository.QuizRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) PublicCatalogService {
	return &publicCatalogService{
		exams:    exams,
		quizzes:  quizzes,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "public_catalog_service").Logger(),
	}
}

func (s *publicCatalogService) ListExams(ctx context.Context) ([]dto.ExamResponse, error) {
	var cached []dto.ExamResponse
	if s.readCache(ctx, cacheKeyPublicExams, &cached) {
		return cached, nil
	}

	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, err
	}

	response := dto.NewExamResponseSlice(exams)
	s.writeCache(ctx, cacheKeyPublicExams, response)

	return response, nil
}

func (s *publicCatalogService) ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	var cached []dto.QuizResponse
	if s.readCache(ctx, cacheKeyPublicQuizzes, &cached) {
		return cached, nil
	}

	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}

	// Answer keys never leave through the public catalog.
	response := dto.NewQuizResponseSlice(quizzes, false)
	s.writeCache(ctx, cacheKeyPublicQuizzes, response)

	return response, nil
}

func (s *publicCatalogService) readCache(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read catalog cache")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		return false
	}

	s.logger.Debug().Str("key", key).Msg("catalog cache hit")
	return true
}

func (s *publicCatalogService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store catalog cache")
	}
}
