package model

// Language is a technology a user can prepare for ("Python", "Go", ...).
// Immutable once created; slug is the stable identifier used by the transport.
// swagger:model Language
type Language struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
	Slug string `gorm:"size:100;unique;not null;index" json:"slug"`
}

func (Language) TableName() string {
	return "languages"
}
