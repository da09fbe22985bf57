package repository

import (
	"encoding/json"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate is the only creation path for progress records; the composite
// unique index on (user_id, language_id) backs the one-record-per-pair
// invariant.
func (r *ProgressRepository) GetOrCreate(userID, languageID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.
		Where("user_id = ? AND language_id = ?", userID, languageID).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.UserProgress{UserID: userID, LanguageID: languageID}
	if err := r.DB.Create(&progress).Error; err != nil {
		return nil, err
	}
	logger.Log.Info("Created progress record",
		zap.Uint("userId", userID), zap.Uint("languageId", languageID))
	return &progress, nil
}

func (r *ProgressRepository) ByID(db *gorm.DB, id uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := db.First(&progress, id).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// ResetEpoch clears the diagnostic snapshot and completion flag, conceptually
// starting a new progress epoch under the same row.
func (r *ProgressRepository) ResetEpoch(db *gorm.DB, id uint) error {
	return db.Model(&model.UserProgress{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"diagnostic_scores":     nil,
			"diagnostics_completed": false,
		}).Error
}

// SaveScores persists the score snapshot atomically with the completion flag.
func (r *ProgressRepository) SaveScores(db *gorm.DB, id uint, scores map[string]int, completed bool) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return db.Model(&model.UserProgress{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"diagnostic_scores":     json.RawMessage(raw),
			"diagnostics_completed": completed,
			"updated_at":            time.Now(),
		}).Error
}
