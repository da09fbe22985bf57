package model

import "time"

// PlanItemStatus is a closed enumeration. The status transitions are owned by
// a small set of named functions in the practice service; nothing else writes
// this field.
type PlanItemStatus string

const (
	ItemPending  PlanItemStatus = "pending"
	ItemCurrent  PlanItemStatus = "current"
	ItemAnswered PlanItemStatus = "answered"
	ItemSkipped  PlanItemStatus = "skipped"
)

// LearningPlanItem is one scheduled question instance inside a progress
// record's ordered plan.
//
// Invariants: at most one item per progress record is "current"; order_index
// values are unique within a record and never reused; pending items are
// consumed in ascending order_index order.
// swagger:model LearningPlanItem
type LearningPlanItem struct {
	BaseModel
	ProgressID uint           `gorm:"not null;index" json:"progressId"`
	QuestionID uint           `gorm:"not null;index" json:"questionId"`
	OrderIndex int            `gorm:"not null" json:"orderIndex"`
	Status     PlanItemStatus `gorm:"size:16;default:'pending';index" json:"status"`
	AssignedAt time.Time      `gorm:"autoCreateTime" json:"assignedAt"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (LearningPlanItem) TableName() string {
	return "learning_plan_items"
}
