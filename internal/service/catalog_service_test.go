package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLanguagesWithoutRedis(t *testing.T) {
	e := newEnv(t)
	_, err := e.languages.GetOrCreate("Go", "go")
	require.NoError(t, err)
	_, err = e.languages.GetOrCreate("Python", "python")
	require.NoError(t, err)

	svc := NewCatalogService(e.languages, e.categories, e.questions, nil)

	langs, err := svc.ListLanguages(context.Background())
	require.NoError(t, err)
	assert.Len(t, langs, 2)
}

func TestCreateQuestionResolvesCatalog(t *testing.T) {
	e := newEnv(t)
	_, err := e.languages.GetOrCreate("Go", "go")
	require.NoError(t, err)

	svc := NewCatalogService(e.languages, e.categories, e.questions, nil)

	q, err := svc.CreateQuestion("go", "New Topic", "A brand new question?", "author hint", true)
	require.NoError(t, err)
	assert.True(t, q.IsDiagnostic)

	cat, err := e.categories.ByName("New Topic")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, q.CategoryID)

	// Resubmitting the same question is a no-op.
	again, err := svc.CreateQuestion("go", "New Topic", "A brand new question?", "", true)
	require.NoError(t, err)
	assert.Equal(t, q.ID, again.ID)
}

func TestCreateQuestionUnknownLanguage(t *testing.T) {
	e := newEnv(t)
	svc := NewCatalogService(e.languages, e.categories, e.questions, nil)

	_, err := svc.CreateQuestion("cobol", "Topic", "Question?", "", false)
	assert.Error(t, err)
}
