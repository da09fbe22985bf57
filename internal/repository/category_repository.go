package repository

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GetOrCreate resolves a category by its unique name. It takes the db handle
// explicitly because plan extension calls it inside a transaction.
func (r *CategoryRepository) GetOrCreate(db *gorm.DB, name, description string) (*model.Category, error) {
	var cat model.Category
	err := db.Where("name = ?", name).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat = model.Category{Name: name, Description: description}
	if err := db.Create(&cat).Error; err != nil {
		return nil, err
	}
	logger.Log.Info("Created category", zap.String("name", name))
	return &cat, nil
}

func (r *CategoryRepository) ByName(name string) (*model.Category, error) {
	var cat model.Category
	if err := r.DB.Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ForLanguage returns every category that has at least one question for the
// given language.
func (r *CategoryRepository) ForLanguage(languageID uint) ([]model.Category, error) {
	var cats []model.Category
	err := r.DB.
		Where("id IN (?)", r.DB.Model(&model.Question{}).
			Select("DISTINCT category_id").
			Where("language_id = ?", languageID)).
		Order("id").
		Find(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var cats []model.Category
	if err := r.DB.Order("id").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
