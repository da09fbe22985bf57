package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidateBatchBareList(t *testing.T) {
	raw := `[{"category": "Algorithms", "text": "Reverse a list."}]`

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Algorithms", batch[0].Category)
	assert.Equal(t, "Reverse a list.", batch[0].Text)
}

func TestParseCandidateBatchWrappedObject(t *testing.T) {
	raw := `{"questions": [{"category": "Concurrency", "text": "What is a race?"}]}`

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Concurrency", batch[0].Category)
}

func TestParseCandidateBatchFencedBlock(t *testing.T) {
	raw := "Here is your plan:\n```json\n[{\"category\": \"Algorithms\", \"text\": \"Sort it.\"}]\n```\nGood luck!"

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Sort it.", batch[0].Text)
}

func TestParseCandidateBatchBareFence(t *testing.T) {
	raw := "```\n[{\"category\": \"Algorithms\", \"text\": \"Sort it.\"}]\n```"

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
}

func TestParseCandidateBatchAlternateKeys(t *testing.T) {
	raw := `[{"category_name": "Basics", "question_text": "What is a slice?"}]`

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Basics", batch[0].Category)
	assert.Equal(t, "What is a slice?", batch[0].Text)
}

func TestParseCandidateBatchPreferredKeysWin(t *testing.T) {
	raw := `[{"category": "Primary", "category_name": "Secondary", "text": "A", "question_text": "B"}]`

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Primary", batch[0].Category)
	assert.Equal(t, "A", batch[0].Text)
}

func TestParseCandidateBatchKeepsIncompleteEntries(t *testing.T) {
	// Entries missing fields survive parsing; the merge filters them.
	raw := `[{"category": "Algorithms"}, {"text": "orphan"}]`

	batch, err := parseCandidateBatch(raw)
	require.NoError(t, err)
	assert.Len(t, batch, 2)
}

func TestParseCandidateBatchRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"I cannot answer that.",
		`{"plan": "none"}`,
		`{"questions": "not a list"}`,
	} {
		_, err := parseCandidateBatch(raw)
		assert.Error(t, err, "payload %q", raw)
	}
}
