package service

import (
	"context"
	"testing"

	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
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
	// Every pooled connection gets its own :memory: database, so pin the
	// pool to one connection.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type env struct {
	db         *gorm.DB
	users      *repository.UserRepository
	languages  *repository.LanguageRepository
	categories *repository.CategoryRepository
	questions  *repository.QuestionRepository
	progress   *repository.ProgressRepository
	answers    *repository.AnswerRepository
	plan       *repository.PlanRepository
	diag       *DiagnosticsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)
	e := &env{
		db:         db,
		users:      repository.NewUserRepository(db),
		languages:  repository.NewLanguageRepository(db),
		categories: repository.NewCategoryRepository(db),
		questions:  repository.NewQuestionRepository(db),
		progress:   repository.NewProgressRepository(db),
		answers:    repository.NewAnswerRepository(db),
		plan:       repository.NewPlanRepository(db),
	}
	e.diag = NewDiagnosticsService(db, e.progress, e.questions, e.answers, e.plan)
	return e
}

func (e *env) newPractice(gen PlanGenerator, eval AnswerEvaluator) *PracticeService {
	return NewPracticeService(e.db, e.progress, e.languages, e.categories, e.questions, e.answers, e.plan, gen, eval)
}

// seedDiagnostics creates a language with two categories and three diagnostic
// questions. The first and third question share a category, so snapshot
// last-write-wins is observable.
func (e *env) seedDiagnostics(t *testing.T) (*model.Language, []model.Question) {
	t.Helper()
	lang, err := e.languages.GetOrCreate("Go", "go")
	require.NoError(t, err)

	algo, err := e.categories.GetOrCreate(e.db, "Algorithms", "")
	require.NoError(t, err)
	conc, err := e.categories.GetOrCreate(e.db, "Concurrency", "")
	require.NoError(t, err)

	texts := []struct {
		text string
		cat  uint
	}{
		{"How do you reverse a linked list?", algo.ID},
		{"What does a mutex protect?", conc.ID},
		{"Explain binary search complexity.", algo.ID},
	}
	var qs []model.Question
	for _, s := range texts {
		q, err := e.questions.GetOrCreate(e.db, s.text, s.cat, lang.ID, true, "")
		require.NoError(t, err)
		qs = append(qs, *q)
	}
	return lang, qs
}

func (e *env) seedUser(t *testing.T, lang *model.Language) *model.User {
	t.Helper()
	user, err := e.users.GetOrCreate("tg:42", "en")
	require.NoError(t, err)
	if lang != nil {
		require.NoError(t, e.users.SetActiveLanguage(user.ID, lang.ID))
		user, err = e.users.ByExternalID("tg:42")
		require.NoError(t, err)
	}
	return user
}

// completeDiagnostics drives the full assessment with the given scores, one
// per seeded question in order, and returns the progress record.
func (e *env) completeDiagnostics(t *testing.T, user *model.User, qs []model.Question, scores []int) *model.UserProgress {
	t.Helper()
	res, err := e.diag.Start(user)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	progress := res.Progress

	for i, score := range scores {
		res, err = e.diag.RecordScore(progress.ID, qs[i].ID, score)
		require.NoError(t, err)
		if i < len(scores)-1 {
			require.Equal(t, StatusNextQuestion, res.Status)
		} else {
			require.Equal(t, StatusCompleted, res.Status)
		}
	}

	progress, err = e.progress.ByID(e.db, progress.ID)
	require.NoError(t, err)
	return progress
}

type stubGenerator struct {
	raw        string
	err        error
	calls      int
	lastScores string
	lastKnown  []string
}

func (g *stubGenerator) GeneratePlan(ctx context.Context, languageName, formattedScores string, knownCategories []string) (string, error) {
	g.calls++
	g.lastScores = formattedScores
	g.lastKnown = knownCategories
	return g.raw, g.err
}

type stubEvaluator struct {
	feedback string
	err      error
	calls    int
}

func (e *stubEvaluator) Evaluate(ctx context.Context, category, questionText, answerText string) (string, error) {
	e.calls++
	return e.feedback, e.err
}
