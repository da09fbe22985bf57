package repository

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// GetOrCreate resolves a user by the opaque channel identity the transport
// supplies, creating one in the lang_select state when unknown.
func (r *UserRepository) GetOrCreate(externalID, uiLocale string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("external_id = ?", externalID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if uiLocale == "" {
		uiLocale = "en"
	}
	user = model.User{
		ExternalID: externalID,
		UILocale:   uiLocale,
		State:      model.StateLangSelect,
	}
	if err := r.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Log.Info("Created user", zap.String("externalId", externalID))
	return &user, nil
}

func (r *UserRepository) ByExternalID(externalID string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetActiveLanguage(userID, languageID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("active_language_id", languageID).Error
}

func (r *UserRepository) SetState(userID uint, state model.UserState) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("state", state).Error
}
