package repository

import (
	"errors"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanRepository owns every read and write of learning plan items. All methods
// take the db handle explicitly: cursor transitions must run inside the
// caller's transaction, and the single-cursor invariant is only as strong as
// that transaction scope.
type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

// MaxOrderIndex returns the highest order_index in the plan, -1 when empty.
// The next free index is always MaxOrderIndex+1; indexes are never reused.
func (r *PlanRepository) MaxOrderIndex(db *gorm.DB, progressID uint) (int, error) {
	var item model.LearningPlanItem
	err := db.
		Where("progress_id = ?", progressID).
		Order("order_index DESC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return item.OrderIndex, nil
}

// Current returns the unique current item, nil when the plan is empty or
// exhausted. Finding more than one current item is a programming defect and
// comes back as ErrCursorViolation rather than being silently patched.
func (r *PlanRepository) Current(db *gorm.DB, progressID uint) (*model.LearningPlanItem, error) {
	var items []model.LearningPlanItem
	err := db.
		Where("progress_id = ? AND status = ?", progressID, model.ItemCurrent).
		Preload("Question").
		Preload("Question.Category").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 0:
		return nil, nil
	case 1:
		return &items[0], nil
	default:
		logger.Log.Error("single-cursor invariant violated",
			zap.Uint("progressId", progressID),
			zap.Int("currentItems", len(items)))
		return nil, fmt.Errorf("progress %d: %w", progressID, util.ErrCursorViolation)
	}
}

// NextPending returns the earliest pending item strictly after afterIndex.
// Pass -1 to scan from the beginning of the plan.
func (r *PlanRepository) NextPending(db *gorm.DB, progressID uint, afterIndex int) (*model.LearningPlanItem, error) {
	var item model.LearningPlanItem
	err := db.
		Where("progress_id = ? AND status = ? AND order_index > ?",
			progressID, model.ItemPending, afterIndex).
		Order("order_index").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add inserts a plan item, first removing any prior item for the same
// question: a question instance is never duplicated within one plan.
// Re-merging an identical batch therefore still appends a fresh item at a
// higher index, an accepted at-least-once semantic.
func (r *PlanRepository) Add(db *gorm.DB, progressID, questionID uint, orderIndex int, status model.PlanItemStatus) (*model.LearningPlanItem, error) {
	err := db.
		Where("progress_id = ? AND question_id = ?", progressID, questionID).
		Delete(&model.LearningPlanItem{}).Error
	if err != nil {
		return nil, err
	}

	item := model.LearningPlanItem{
		ProgressID: progressID,
		QuestionID: questionID,
		OrderIndex: orderIndex,
		Status:     status,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetCurrent is the sole mutator of the "current" status tag. Any existing
// current item is demoted to answered, then the target is promoted. Every
// other transition routes through here to preserve the single-cursor
// invariant.
func (r *PlanRepository) SetCurrent(db *gorm.DB, progressID, itemID uint) (*model.LearningPlanItem, error) {
	err := db.Model(&model.LearningPlanItem{}).
		Where("progress_id = ? AND status = ? AND id <> ?", progressID, model.ItemCurrent, itemID).
		Update("status", model.ItemAnswered).Error
	if err != nil {
		return nil, err
	}

	var item model.LearningPlanItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPlanItemNotFound
		}
		return nil, err
	}
	if item.ProgressID != progressID {
		return nil, util.ErrPlanItemNotFound
	}

	if err := db.Model(&item).Update("status", model.ItemCurrent).Error; err != nil {
		return nil, err
	}
	item.Status = model.ItemCurrent
	return &item, nil
}

// MarkStatus writes pending/answered/skipped. Promotions to current must go
// through SetCurrent.
func (r *PlanRepository) MarkStatus(db *gorm.DB, itemID uint, status model.PlanItemStatus) error {
	if status == model.ItemCurrent {
		return fmt.Errorf("mark status %q: use SetCurrent", status)
	}
	return db.Model(&model.LearningPlanItem{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

func (r *PlanRepository) ByID(db *gorm.DB, itemID uint) (*model.LearningPlanItem, error) {
	var item model.LearningPlanItem
	err := db.Preload("Question").Preload("Question.Category").First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteForProgress wipes the whole plan; used when a new diagnostics epoch
// starts.
func (r *PlanRepository) DeleteForProgress(db *gorm.DB, progressID uint) error {
	return db.
		Where("progress_id = ?", progressID).
		Delete(&model.LearningPlanItem{}).Error
}

func (r *PlanRepository) Count(db *gorm.DB, progressID uint) (int64, error) {
	var count int64
	err := db.Model(&model.LearningPlanItem{}).
		Where("progress_id = ?", progressID).
		Count(&count).Error
	return count, err
}

func (r *PlanRepository) ListForProgress(db *gorm.DB, progressID uint) ([]model.LearningPlanItem, error) {
	var items []model.LearningPlanItem
	err := db.
		Where("progress_id = ?", progressID).
		Order("order_index").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
