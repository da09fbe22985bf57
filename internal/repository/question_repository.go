package repository

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// GetOrCreate is the idempotent creation path: a question with identical
// (text, category, language) resolves to the existing row. The check runs on
// the handed-in db so plan extension keeps it inside its transaction.
func (r *QuestionRepository) GetOrCreate(db *gorm.DB, text string, categoryID, languageID uint, isDiagnostic bool, notes string) (*model.Question, error) {
	var existing model.Question
	err := db.
		Where("text = ? AND category_id = ? AND language_id = ?", text, categoryID, languageID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	q := model.Question{
		Text:         text,
		CategoryID:   categoryID,
		LanguageID:   languageID,
		IsDiagnostic: isDiagnostic,
		AuthorNotes:  notes,
	}
	if err := db.Create(&q).Error; err != nil {
		return nil, err
	}
	logger.Log.Info("Created question",
		zap.Uint("categoryId", categoryID),
		zap.Uint("languageId", languageID),
		zap.Bool("diagnostic", isDiagnostic))
	return &q, nil
}

// Diagnostics lists a language's diagnostic questions in catalog order.
func (r *QuestionRepository) Diagnostics(db *gorm.DB, languageID uint) ([]model.Question, error) {
	var qs []model.Question
	err := db.
		Where("language_id = ? AND is_diagnostic = ?", languageID, true).
		Order("id").
		Preload("Category").
		Find(&qs).Error
	if err != nil {
		return nil, err
	}
	return qs, nil
}

func (r *QuestionRepository) ByID(db *gorm.DB, id uint) (*model.Question, error) {
	var q model.Question
	if err := db.Preload("Category").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}
