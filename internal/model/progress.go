package model

import (
	"encoding/json"
)

// UserProgress is the per-(user, language) container for diagnostic results
// and the learning plan. Exactly one row may exist per pair; get-or-create is
// the only creation path.
//
// DiagnosticScores is the score snapshot: category id (string key) -> last
// recorded score. It is set once when diagnostics complete and treated as
// immutable until a diagnostics restart clears it, which starts a new epoch
// under the same row.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID               uint            `gorm:"not null;index;uniqueIndex:uq_user_language_progress" json:"userId"`
	LanguageID           uint            `gorm:"not null;index;uniqueIndex:uq_user_language_progress" json:"languageId"`
	DiagnosticScores     json.RawMessage `gorm:"type:json" json:"diagnosticScores,omitempty"`
	DiagnosticsCompleted bool            `gorm:"default:false" json:"diagnosticsCompleted"`

	PlanItems []LearningPlanItem `gorm:"foreignKey:ProgressID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// Scores decodes the snapshot, nil when no snapshot has been persisted yet.
func (p *UserProgress) Scores() (map[string]int, error) {
	if len(p.DiagnosticScores) == 0 {
		return nil, nil
	}
	scores := make(map[string]int)
	if err := json.Unmarshal(p.DiagnosticScores, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
