package model

// UserState is the coarse interaction tag the transport layer uses to route
// raw input. The engine itself never branches on it.
type UserState string

const (
	StateLangSelect       UserState = "lang_select"
	StateDiagnostics      UserState = "diagnostics"
	StatePractice         UserState = "practice"
	StateWaitingForAnswer UserState = "waiting_for_answer"
	StateEnd              UserState = "end"
)

// swagger:model User
type User struct {
	BaseModel
	ExternalID       string    `gorm:"size:64;unique;not null;index" json:"externalId"`
	UILocale         string    `gorm:"size:10;default:'en'" json:"uiLocale"`
	ActiveLanguageID *uint     `json:"activeLanguageId,omitempty"`
	State            UserState `gorm:"size:32;default:'lang_select'" json:"state"`

	ActiveLanguage *Language `gorm:"foreignKey:ActiveLanguageID" json:"activeLanguage,omitempty"`
}

func (User) TableName() string {
	return "users"
}
