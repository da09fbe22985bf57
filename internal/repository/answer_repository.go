package repository

import (
	"errors"
	"interview_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// UpsertDiagnostic records a self-assessment score. A resubmission for the
// same (progress, question) overwrites score and timestamp.
func (r *AnswerRepository) UpsertDiagnostic(db *gorm.DB, progressID, questionID uint, score int) (*model.DiagnosticAnswer, error) {
	var answer model.DiagnosticAnswer
	err := db.
		Where("progress_id = ? AND question_id = ?", progressID, questionID).
		First(&answer).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		answer = model.DiagnosticAnswer{
			ProgressID: progressID,
			QuestionID: questionID,
			Score:      score,
			AnsweredAt: now,
		}
		if err := db.Create(&answer).Error; err != nil {
			return nil, err
		}
		return &answer, nil
	}

	answer.Score = score
	answer.AnsweredAt = now
	if err := db.Save(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) DiagnosticsForProgress(db *gorm.DB, progressID uint) ([]model.DiagnosticAnswer, error) {
	var answers []model.DiagnosticAnswer
	err := db.
		Where("progress_id = ?", progressID).
		Order("answered_at, id").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// SavePractice appends a practice answer; rows are never overwritten.
func (r *AnswerRepository) SavePractice(db *gorm.DB, userID, questionID, planItemID uint, answerText, feedback string) (*model.PracticeAnswer, error) {
	answer := model.PracticeAnswer{
		UserID:     userID,
		QuestionID: questionID,
		PlanItemID: planItemID,
		AnswerText: answerText,
		Feedback:   feedback,
		AnsweredAt: time.Now(),
	}
	if err := db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) PracticeForUser(userID uint, limit int) ([]model.PracticeAnswer, error) {
	if limit <= 0 {
		limit = 50
	}
	var answers []model.PracticeAnswer
	err := r.DB.
		Where("user_id = ?", userID).
		Order("answered_at DESC").
		Limit(limit).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
