package model

// Category groups questions by topic. Shared across languages: the same
// category may hold questions for several languages.
// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:255;unique;not null;index" json:"name"`
	Description string `gorm:"size:1000" json:"description,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
