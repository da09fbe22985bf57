package repository

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LanguageRepository struct {
	DB *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{DB: db}
}

// GetOrCreate resolves a language by slug, creating it when missing.
func (r *LanguageRepository) GetOrCreate(name, slug string) (*model.Language, error) {
	var lang model.Language
	err := r.DB.Where("slug = ?", slug).First(&lang).Error
	if err == nil {
		return &lang, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lang = model.Language{Name: name, Slug: slug}
	if err := r.DB.Create(&lang).Error; err != nil {
		return nil, err
	}
	logger.Log.Info("Created language", zap.String("name", name), zap.String("slug", slug))
	return &lang, nil
}

func (r *LanguageRepository) ByID(id uint) (*model.Language, error) {
	var lang model.Language
	if err := r.DB.First(&lang, id).Error; err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *LanguageRepository) BySlug(slug string) (*model.Language, error) {
	var lang model.Language
	if err := r.DB.Where("slug = ?", slug).First(&lang).Error; err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *LanguageRepository) List() ([]model.Language, error) {
	var langs []model.Language
	if err := r.DB.Order("id").Find(&langs).Error; err != nil {
		return nil, err
	}
	return langs, nil
}
