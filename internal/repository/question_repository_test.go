package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionGetOrCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	languages := NewLanguageRepository(db)
	categories := NewCategoryRepository(db)
	questions := NewQuestionRepository(db)

	lang, err := languages.GetOrCreate("Go", "go")
	require.NoError(t, err)
	other, err := languages.GetOrCreate("Python", "python")
	require.NoError(t, err)
	cat, err := categories.GetOrCreate(db, "Algorithms", "")
	require.NoError(t, err)

	first, err := questions.GetOrCreate(db, "Explain quicksort.", cat.ID, lang.ID, false, "")
	require.NoError(t, err)
	second, err := questions.GetOrCreate(db, "Explain quicksort.", cat.ID, lang.ID, false, "ignored notes")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Same text under another language is a distinct question.
	third, err := questions.GetOrCreate(db, "Explain quicksort.", cat.ID, other.ID, false, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestQuestionDiagnosticsFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	languages := NewLanguageRepository(db)
	categories := NewCategoryRepository(db)
	questions := NewQuestionRepository(db)

	lang, err := languages.GetOrCreate("Go", "go")
	require.NoError(t, err)
	cat, err := categories.GetOrCreate(db, "Basics", "")
	require.NoError(t, err)

	_, err = questions.GetOrCreate(db, "diag one", cat.ID, lang.ID, true, "")
	require.NoError(t, err)
	_, err = questions.GetOrCreate(db, "practice only", cat.ID, lang.ID, false, "")
	require.NoError(t, err)
	_, err = questions.GetOrCreate(db, "diag two", cat.ID, lang.ID, true, "")
	require.NoError(t, err)

	diags, err := questions.Diagnostics(db, lang.ID)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, "diag one", diags[0].Text)
	assert.Equal(t, "diag two", diags[1].Text)
	require.NotNil(t, diags[0].Category)
	assert.Equal(t, "Basics", diags[0].Category.Name)
}

func TestCategoryGetOrCreateKeepsDescription(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)

	first, err := categories.GetOrCreate(db, "Concurrency", "goroutines and channels")
	require.NoError(t, err)
	second, err := categories.GetOrCreate(db, "Concurrency", "something else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "goroutines and channels", second.Description)
}

func TestUserGetOrCreateByExternalID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	first, err := users.GetOrCreate("tg:7", "de")
	require.NoError(t, err)
	second, err := users.GetOrCreate("tg:7", "en")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "de", second.UILocale)
}
