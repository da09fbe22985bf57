package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeService owns the practice-phase cursor and the plan merge logic.
// The generator is called strictly outside any transaction; its output is
// validated before a single row is written, so a generator failure leaves the
// plan byte-for-byte unchanged.
type PracticeService struct {
	DB         *gorm.DB
	progress   *repository.ProgressRepository
	languages  *repository.LanguageRepository
	categories *repository.CategoryRepository
	questions  *repository.QuestionRepository
	answers    *repository.AnswerRepository
	plan       *repository.PlanRepository
	generator  PlanGenerator
	evaluator  AnswerEvaluator
}

func NewPracticeService(
	db *gorm.DB,
	progress *repository.ProgressRepository,
	languages *repository.LanguageRepository,
	categories *repository.CategoryRepository,
	questions *repository.QuestionRepository,
	answers *repository.AnswerRepository,
	plan *repository.PlanRepository,
	generator PlanGenerator,
	evaluator AnswerEvaluator,
) *PracticeService {
	return &PracticeService{
		DB:         db,
		progress:   progress,
		languages:  languages,
		categories: categories,
		questions:  questions,
		answers:    answers,
		plan:       plan,
		generator:  generator,
		evaluator:  evaluator,
	}
}

// CurrentItem returns the item under the cursor; no_plan when the plan has no
// items at all, finished when items exist but the cursor is exhausted.
func (s *PracticeService) CurrentItem(progressID uint) (*FlowResult, error) {
	current, err := s.plan.Current(s.DB, progressID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &FlowResult{Status: StatusOK, Item: current, Question: current.Question}, nil
	}

	count, err := s.plan.Count(s.DB, progressID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return flow(StatusNoPlan), nil
	}
	return flow(StatusFinished), nil
}

// Advance moves the cursor to the earliest pending item strictly after the
// current one (or the globally earliest pending item when no cursor exists).
// The move routes through SetCurrent, the sole writer of the current tag.
func (s *PracticeService) Advance(progressID uint) (*FlowResult, error) {
	var result *FlowResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		afterIndex := -1
		current, err := s.plan.Current(tx, progressID)
		if err != nil {
			return err
		}
		if current != nil {
			afterIndex = current.OrderIndex
		}

		next, err := s.plan.NextPending(tx, progressID, afterIndex)
		if err != nil {
			return err
		}
		if next == nil {
			result = flow(StatusFinished)
			return nil
		}

		item, err := s.plan.SetCurrent(tx, progressID, next.ID)
		if err != nil {
			return err
		}
		full, err := s.plan.ByID(tx, item.ID)
		if err != nil {
			return err
		}
		result = &FlowResult{Status: StatusOK, Item: full, Question: full.Question}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordAnswer appends the free-text answer for the current item and marks
// the item answered. It deliberately does not advance the cursor: moving on
// is a separate caller action, unlike the diagnostic phase's auto-advance.
// Evaluator feedback is best effort; its absence never blocks recording.
func (s *PracticeService) RecordAnswer(ctx context.Context, userID, progressID uint, answerText string) (*FlowResult, error) {
	current, err := s.plan.Current(s.DB, progressID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.Question == nil {
		return flow(StatusNoActiveQuestion), nil
	}

	feedback := ""
	if s.evaluator != nil {
		categoryName := ""
		if current.Question.Category != nil {
			categoryName = current.Question.Category.Name
		}
		feedback, err = s.evaluator.Evaluate(ctx, categoryName, current.Question.Text, answerText)
		if err != nil {
			logger.Log.Warn("answer evaluation failed, recording without feedback",
				zap.Uint("planItemId", current.ID), zap.Error(err))
			feedback = ""
		}
	}

	result := flow(StatusNoActiveQuestion)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Re-read under the transaction: the cursor may have moved while the
		// evaluator call was in flight.
		fresh, err := s.plan.Current(tx, progressID)
		if err != nil {
			return err
		}
		if fresh == nil || fresh.ID != current.ID {
			return nil
		}

		answer, err := s.answers.SavePractice(tx, userID, fresh.QuestionID, fresh.ID, answerText, feedback)
		if err != nil {
			return err
		}
		if err := s.plan.MarkStatus(tx, fresh.ID, model.ItemAnswered); err != nil {
			return err
		}

		result = &FlowResult{Status: StatusOK, Item: fresh, Feedback: answer.Feedback}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PracticeService) HasPlan(progressID uint) (bool, error) {
	count, err := s.plan.Count(s.DB, progressID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExtendPlan merges a candidate batch into the plan: categories and questions
// resolve idempotently, items append after the existing maximum order index
// in batch order, and the first newly added item becomes current. Candidates
// missing a category or text are skipped with a log, not a batch failure, and
// a candidate repeated within one batch lands once.
// Zero valid candidates leave the plan untouched and report no_questions.
func (s *PracticeService) ExtendPlan(progressID uint, batch []PlanCandidate) (*FlowResult, error) {
	valid := make([]PlanCandidate, 0, len(batch))
	for _, c := range batch {
		if strings.TrimSpace(c.Category) == "" || strings.TrimSpace(c.Text) == "" {
			logger.Log.Warn("skipping malformed plan candidate",
				zap.String("category", c.Category),
				zap.Uint("progressId", progressID))
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return flow(StatusNoQuestions), nil
	}

	var result *FlowResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.progress.ByID(tx, progressID)
		if err != nil {
			return err
		}

		maxIndex, err := s.plan.MaxOrderIndex(tx, progressID)
		if err != nil {
			return err
		}
		nextIndex := maxIndex + 1

		var firstAdded *model.LearningPlanItem
		added := 0
		seen := make(map[uint]bool, len(valid))
		for _, c := range valid {
			cat, err := s.categories.GetOrCreate(tx, c.Category, "")
			if err != nil {
				return err
			}
			q, err := s.questions.GetOrCreate(tx, c.Text, cat.ID, progress.LanguageID, false, "")
			if err != nil {
				return err
			}
			// A batch may repeat a candidate; both resolve to the same question
			// and Add would replace the earlier row, so only the first occurrence
			// lands.
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			item, err := s.plan.Add(tx, progressID, q.ID, nextIndex, model.ItemPending)
			if err != nil {
				return err
			}
			if firstAdded == nil {
				firstAdded = item
			}
			added++
			nextIndex++
		}

		if _, err := s.plan.SetCurrent(tx, progressID, firstAdded.ID); err != nil {
			return err
		}

		result = &FlowResult{Status: StatusOK, Count: added, Item: firstAdded}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("plan extended",
		zap.Uint("progressId", progressID), zap.Int("added", result.Count))
	return result, nil
}

// GeneratePlan asks the external generator for a practice batch and merges
// it. The score snapshot is the sole generator input; when it is missing it
// is derived from the diagnostic ledger and persisted (self-healing), and an
// empty ledger fails with no_answers. Transport failures map to no_llm and
// unparseable output to bad_format, both without touching plan state.
func (s *PracticeService) GeneratePlan(ctx context.Context, progressID uint) (*FlowResult, error) {
	progress, err := s.progress.ByID(s.DB, progressID)
	if err != nil {
		return nil, err
	}

	scores, err := progress.Scores()
	if err != nil {
		logger.Log.Error("corrupt score snapshot, rederiving from ledger",
			zap.Uint("progressId", progressID), zap.Error(err))
		scores = nil
	}
	if scores == nil {
		derived, err := deriveSnapshot(s.DB, s.answers, s.questions, progressID)
		if err != nil {
			return nil, err
		}
		if len(derived) == 0 {
			return flow(StatusNoAnswers), nil
		}
		if err := s.progress.SaveScores(s.DB, progressID, derived, progress.DiagnosticsCompleted); err != nil {
			return nil, err
		}
		scores = derived
	}

	lang, err := s.languages.ByID(progress.LanguageID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ForLanguage(progress.LanguageID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	nameByID := make(map[string]string, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
		nameByID[strconv.FormatUint(uint64(cat.ID), 10)] = cat.Name
	}

	var lines []string
	for catID, score := range scores {
		name, ok := nameByID[catID]
		if !ok {
			name = "category #" + catID
		}
		lines = append(lines, fmt.Sprintf("- %s: %d/5", name, score))
	}
	// Map order is random; keep the prompt reproducible.
	sort.Strings(lines)
	formattedScores := strings.Join(lines, "\n")

	// The generator call runs outside any transaction or lock: it is the one
	// slow, failure-prone operation in the system.
	raw, err := s.generator.GeneratePlan(ctx, lang.Name, formattedScores, names)
	if err != nil {
		monitoring.GeneratorFailures.WithLabelValues(string(StatusNoLLM)).Inc()
		logger.Log.Error("plan generator unavailable",
			zap.Uint("progressId", progressID), zap.Error(err))
		return flow(StatusNoLLM), nil
	}

	batch, err := parseCandidateBatch(raw)
	if err != nil {
		monitoring.GeneratorFailures.WithLabelValues(string(StatusBadFormat)).Inc()
		logger.Log.Error("unparseable generator payload",
			zap.Uint("progressId", progressID), zap.Error(err))
		return flow(StatusBadFormat), nil
	}

	result, err := s.ExtendPlan(progressID, batch)
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case StatusOK:
		monitoring.PlansGenerated.Inc()
	case StatusNoQuestions:
		monitoring.GeneratorFailures.WithLabelValues(string(StatusNoQuestions)).Inc()
	}
	return result, nil
}

// PlanOverview lists the full plan in order; used by the transport to render
// progress summaries.
func (s *PracticeService) PlanOverview(progressID uint) ([]model.LearningPlanItem, error) {
	return s.plan.ListForProgress(s.DB, progressID)
}
