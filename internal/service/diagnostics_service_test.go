package service

import (
	"strconv"
	"testing"

	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsStartSchedulesFirstQuestion(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	require.NotNil(t, res.Question)
	assert.Equal(t, qs[0].ID, res.Question.ID)

	items, err := e.plan.ListForProgress(e.db, res.Progress.ID)
	require.NoError(t, err)
	require.Len(t, items, len(qs))
	assert.Equal(t, model.ItemCurrent, items[0].Status)
	for i, item := range items {
		assert.Equal(t, i, item.OrderIndex)
		if i > 0 {
			assert.Equal(t, model.ItemPending, item.Status)
		}
	}
}

func TestDiagnosticsStartWithoutLanguage(t *testing.T) {
	e := newEnv(t)
	user := e.seedUser(t, nil)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	assert.Equal(t, StatusNoLanguage, res.Status)
}

func TestDiagnosticsStartNoQuestions(t *testing.T) {
	e := newEnv(t)
	lang, err := e.languages.GetOrCreate("Rust", "rust")
	require.NoError(t, err)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	assert.Equal(t, StatusNoQuestions, res.Status)
}

func TestDiagnosticsScoreFlow(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	progress := res.Progress

	res, err = e.diag.RecordScore(progress.ID, qs[0].ID, 2)
	require.NoError(t, err)
	require.Equal(t, StatusNextQuestion, res.Status)
	assert.Equal(t, qs[1].ID, res.Question.ID)

	// Submitting against a question other than the current one is rejected
	// without touching the cursor.
	res, err = e.diag.RecordScore(progress.ID, qs[0].ID, 5)
	require.NoError(t, err)
	assert.Equal(t, StatusNoActiveQuestion, res.Status)

	res, err = e.diag.RecordScore(progress.ID, qs[1].ID, 5)
	require.NoError(t, err)
	require.Equal(t, StatusNextQuestion, res.Status)
	assert.Equal(t, qs[2].ID, res.Question.ID)

	res, err = e.diag.RecordScore(progress.ID, qs[2].ID, 4)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)

	progress, err = e.progress.ByID(e.db, progress.ID)
	require.NoError(t, err)
	assert.True(t, progress.DiagnosticsCompleted)

	scores, err := progress.Scores()
	require.NoError(t, err)
	// Questions 0 and 2 share a category; the later score wins.
	assert.Equal(t, map[string]int{
		strconv.FormatUint(uint64(qs[0].CategoryID), 10): 4,
		strconv.FormatUint(uint64(qs[1].CategoryID), 10): 5,
	}, scores)
}

func TestDiagnosticsScoreOutOfRange(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)

	for _, score := range []int{0, 6, -3} {
		_, err = e.diag.RecordScore(res.Progress.ID, qs[0].ID, score)
		assert.ErrorIs(t, err, util.ErrInvalidScore)
	}
}

func TestDiagnosticsRestartWipesPreviousEpoch(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	progress := e.completeDiagnostics(t, user, qs, []int{2, 5, 4})
	require.True(t, progress.DiagnosticsCompleted)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, progress.ID, res.Progress.ID)

	progress, err = e.progress.ByID(e.db, progress.ID)
	require.NoError(t, err)
	assert.False(t, progress.DiagnosticsCompleted)
	scores, err := progress.Scores()
	require.NoError(t, err)
	assert.Nil(t, scores)

	items, err := e.plan.ListForProgress(e.db, progress.ID)
	require.NoError(t, err)
	require.Len(t, items, len(qs))
	assert.Equal(t, model.ItemCurrent, items[0].Status)
}

func TestDiagnosticsCurrentAutoStarts(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.CurrentQuestion(user)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, qs[0].ID, res.Question.ID)

	count, err := e.plan.Count(e.db, res.Progress.ID)
	require.NoError(t, err)
	assert.EqualValues(t, len(qs), count)
}

func TestDiagnosticsCurrentResumesEarliestPending(t *testing.T) {
	e := newEnv(t)
	lang, _ := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	progress := res.Progress

	// Simulate a lost cursor.
	err = e.db.Model(&model.LearningPlanItem{}).
		Where("progress_id = ? AND status = ?", progress.ID, model.ItemCurrent).
		Update("status", model.ItemPending).Error
	require.NoError(t, err)

	res, err = e.diag.CurrentQuestion(user)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	require.NotNil(t, res.Item)
	assert.Equal(t, 0, res.Item.OrderIndex)

	current, err := e.plan.Current(e.db, progress.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, res.Item.ID, current.ID)
}

func TestDiagnosticsCurrentAfterCompletion(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	e.completeDiagnostics(t, user, qs, []int{3, 3, 3})

	res, err := e.diag.CurrentQuestion(user)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
}

func TestDiagnosticsScoreResubmissionOverwrites(t *testing.T) {
	e := newEnv(t)
	lang, qs := e.seedDiagnostics(t)
	user := e.seedUser(t, lang)

	res, err := e.diag.Start(user)
	require.NoError(t, err)
	progress := res.Progress

	_, err = e.diag.RecordScore(progress.ID, qs[0].ID, 2)
	require.NoError(t, err)

	// Restart puts question 0 back under the cursor; a second submission
	// must overwrite, not duplicate.
	_, err = e.diag.Start(user)
	require.NoError(t, err)
	_, err = e.diag.RecordScore(progress.ID, qs[0].ID, 5)
	require.NoError(t, err)

	answers, err := e.answers.DiagnosticsForProgress(e.db, progress.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, 5, answers[0].Score)
}
