package model

import "time"

// DiagnosticAnswer is one self-assessment score (1..5) for a diagnostic
// question. Unique per (progress, question); a resubmission overwrites score
// and timestamp.
// swagger:model DiagnosticAnswer
type DiagnosticAnswer struct {
	BaseModel
	ProgressID uint      `gorm:"not null;index;uniqueIndex:uq_diag_progress_question" json:"progressId"`
	QuestionID uint      `gorm:"not null;uniqueIndex:uq_diag_progress_question" json:"questionId"`
	Score      int       `gorm:"not null" json:"score"`
	AnsweredAt time.Time `json:"answeredAt"`
}

func (DiagnosticAnswer) TableName() string {
	return "diagnostic_answers"
}

// PracticeAnswer is an append-only record of a free-text practice answer.
// One row per submission, never overwritten.
// swagger:model PracticeAnswer
type PracticeAnswer struct {
	BaseModel
	UserID     uint      `gorm:"not null;index" json:"userId"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	PlanItemID uint      `gorm:"not null;index" json:"planItemId"`
	AnswerText string    `gorm:"type:text;not null" json:"answerText"`
	Feedback   string    `gorm:"type:text" json:"feedback,omitempty"`
	AnsweredAt time.Time `json:"answeredAt"`
}

func (PracticeAnswer) TableName() string {
	return "practice_answers"
}
