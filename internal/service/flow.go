package service

import "interview_prep_backend/internal/model"

// FlowStatus is the closed set of outcomes engine operations answer with.
// Expected conditions (no language selected, catalog empty, plan exhausted)
// are statuses, not errors; only store failures surface as Go errors.
type FlowStatus string

const (
	StatusOK               FlowStatus = "ok"
	StatusNoLanguage       FlowStatus = "no_language"
	StatusNoQuestions      FlowStatus = "no_questions"
	StatusNextQuestion     FlowStatus = "next_question"
	StatusCompleted        FlowStatus = "completed"
	StatusNoActiveQuestion FlowStatus = "no_active_question"
	StatusFinished         FlowStatus = "finished"
	StatusNoPlan           FlowStatus = "no_plan"
	StatusNoAnswers        FlowStatus = "no_answers"
	StatusNoLLM            FlowStatus = "no_llm"
	StatusBadFormat        FlowStatus = "bad_format"
	StatusError            FlowStatus = "error"
)

// FlowResult pairs a status with whatever payload the operation produced.
// Callers match on Status exhaustively; payload fields are only set where the
// status implies them.
type FlowResult struct {
	Status   FlowStatus              `json:"status"`
	Question *model.Question         `json:"question,omitempty"`
	Item     *model.LearningPlanItem `json:"item,omitempty"`
	Progress *model.UserProgress     `json:"progress,omitempty"`
	Count    int                     `json:"count,omitempty"`
	Feedback string                  `json:"feedback,omitempty"`
}

func flow(status FlowStatus) *FlowResult {
	return &FlowResult{Status: status}
}
