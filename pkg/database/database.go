package database

import (
	"fmt"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedCatalog(db)

	return db, nil
}

// Migrate creates or updates the schema for every engine entity. Shared with
// the test helpers so tests run against the exact production schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Language{},
		&model.Category{},
		&model.Question{},
		&model.User{},
		&model.UserProgress{},
		&model.LearningPlanItem{},
		&model.DiagnosticAnswer{},
		&model.PracticeAnswer{},
	)
}

type seedQuestion struct {
	Category string
	Text     string
	Notes    string
}

var seedLanguages = []model.Language{
	{Name: "Python", Slug: "python"},
	{Name: "JavaScript", Slug: "javascript"},
	{Name: "Go", Slug: "go"},
	{Name: "General CS", Slug: "general"},
}

var seedCategories = []model.Category{
	{Name: "Language Basics"},
	{Name: "Data Structures"},
	{Name: "Algorithms"},
	{Name: "OOP"},
	{Name: "Concurrency"},
	{Name: "Databases"},
	{Name: "Networking"},
	{Name: "Testing"},
	{Name: "Tooling & Ecosystem"},
}

var seedDiagnostics = map[string][]seedQuestion{
	"python": {
		{Category: "Language Basics", Text: "Which built-in data types does Python provide? Give examples.", Notes: "Expect int, float, str, list, tuple, dict, set, bool."},
		{Category: "Data Structures", Text: "How do lists differ from tuples in Python?", Notes: "Mutability, performance for some operations, typical usage."},
		{Category: "OOP", Text: "What is a decorator in Python and how do you write one?", Notes: "A function taking another function and extending its behaviour."},
	},
	"javascript": {
		{Category: "Language Basics", Text: "What is a closure in JavaScript? Give an example."},
		{Category: "Concurrency", Text: "Explain the difference between let, const and var in JavaScript."},
	},
	"go": {
		{Category: "Concurrency", Text: "What is a goroutine and how does it differ from an OS thread?"},
		{Category: "Data Structures", Text: "How do slices relate to arrays in Go?"},
	},
}

// SeedCatalog inserts the initial reference catalog when the store is empty.
// Safe to call on every startup: languages are the emptiness sentinel.
func SeedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.Language{}).Count(&count)
	if count > 0 {
		return
	}

	langBySlug := make(map[string]*model.Language, len(seedLanguages))
	for i := range seedLanguages {
		lang := seedLanguages[i]
		db.Create(&lang)
		langBySlug[lang.Slug] = &lang
	}

	catByName := make(map[string]*model.Category, len(seedCategories))
	for i := range seedCategories {
		cat := seedCategories[i]
		db.Create(&cat)
		catByName[cat.Name] = &cat
	}

	for slug, questions := range seedDiagnostics {
		lang := langBySlug[slug]
		if lang == nil {
			continue
		}
		for _, q := range questions {
			cat := catByName[q.Category]
			if cat == nil {
				log.Printf("seed: category %q missing, skipping question %.40q", q.Category, q.Text)
				continue
			}
			db.Create(&model.Question{
				Text:         q.Text,
				CategoryID:   cat.ID,
				LanguageID:   lang.ID,
				IsDiagnostic: true,
				AuthorNotes:  q.Notes,
			})
		}
	}

	log.Println("Seeded initial language/category/question catalog")
}
