package repository

import (
	"testing"

	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedProgress creates the minimal object graph a plan needs: a language, a
// category, three questions and a progress record.
func seedProgress(t *testing.T, db *gorm.DB) (*model.UserProgress, []model.Question) {
	t.Helper()
	languages := NewLanguageRepository(db)
	categories := NewCategoryRepository(db)
	questions := NewQuestionRepository(db)
	users := NewUserRepository(db)
	progresses := NewProgressRepository(db)

	lang, err := languages.GetOrCreate("Go", "go")
	require.NoError(t, err)
	cat, err := categories.GetOrCreate(db, "Algorithms", "")
	require.NoError(t, err)

	var qs []model.Question
	for _, text := range []string{"q one", "q two", "q three"} {
		q, err := questions.GetOrCreate(db, text, cat.ID, lang.ID, true, "")
		require.NoError(t, err)
		qs = append(qs, *q)
	}

	user, err := users.GetOrCreate("ext-1", "en")
	require.NoError(t, err)
	progress, err := progresses.GetOrCreate(user.ID, lang.ID)
	require.NoError(t, err)
	return progress, qs
}
