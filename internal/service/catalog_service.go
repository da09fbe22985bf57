package service

import (
	"context"
	"encoding/json"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	languageCacheKey = "catalog:languages"
	languageCacheTTL = 10 * time.Minute
)

// CatalogService serves the shared reference data: languages, categories,
// questions. The language list is the hottest read (every onboarding hits it)
// and goes through a redis read-through cache when redis is configured.
type CatalogService struct {
	languages  *repository.LanguageRepository
	categories *repository.CategoryRepository
	questions  *repository.QuestionRepository
	rdb        *redis.Client
}

func NewCatalogService(
	languages *repository.LanguageRepository,
	categories *repository.CategoryRepository,
	questions *repository.QuestionRepository,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		languages:  languages,
		categories: categories,
		questions:  questions,
		rdb:        rdb,
	}
}

func (s *CatalogService) ListLanguages(ctx context.Context) ([]model.Language, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, languageCacheKey).Result(); err == nil {
			var langs []model.Language
			if err := json.Unmarshal([]byte(cached), &langs); err == nil {
				return langs, nil
			}
		}
	}

	langs, err := s.languages.List()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(langs); err == nil {
			if err := s.rdb.Set(ctx, languageCacheKey, raw, languageCacheTTL).Err(); err != nil {
				logger.Log.Warn("language cache write failed", zap.Error(err))
			}
		}
	}
	return langs, nil
}

func (s *CatalogService) GetLanguage(id uint) (*model.Language, error) {
	return s.languages.ByID(id)
}

func (s *CatalogService) CreateLanguage(ctx context.Context, name, slug string) (*model.Language, error) {
	lang, err := s.languages.GetOrCreate(name, slug)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, languageCacheKey)
	}
	return lang, nil
}

func (s *CatalogService) CreateCategory(name, description string) (*model.Category, error) {
	return s.categories.GetOrCreate(s.categories.DB, name, description)
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.categories.List()
}

// CreateQuestion resolves language (by slug) and category (by name, creating
// it when new) and inserts the question idempotently.
func (s *CatalogService) CreateQuestion(languageSlug, categoryName, text, notes string, isDiagnostic bool) (*model.Question, error) {
	lang, err := s.languages.BySlug(languageSlug)
	if err != nil {
		return nil, err
	}
	cat, err := s.categories.GetOrCreate(s.categories.DB, categoryName, "")
	if err != nil {
		return nil, err
	}
	return s.questions.GetOrCreate(s.questions.DB, text, cat.ID, lang.ID, isDiagnostic, notes)
}
