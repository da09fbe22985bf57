package model

// Question is immutable after creation. Creation is idempotent on
// (text, category_id, language_id); the check lives in QuestionRepository
// because MySQL cannot put a unique index over a full text column.
// swagger:model Question
type Question struct {
	BaseModel
	Text         string `gorm:"type:text;not null" json:"text"`
	CategoryID   uint   `gorm:"not null;index:idx_question_cat_lang" json:"categoryId"`
	LanguageID   uint   `gorm:"not null;index:idx_question_cat_lang" json:"languageId"`
	IsDiagnostic bool   `gorm:"default:false;index" json:"isDiagnostic"`
	AuthorNotes  string `gorm:"type:text" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Language *Language `gorm:"foreignKey:LanguageID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
