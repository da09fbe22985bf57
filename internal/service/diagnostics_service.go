package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DiagnosticsService drives the fixed-question assessment to completion.
// Diagnostics and practice plans are mutually exclusive within one epoch:
// starting diagnostics wipes any existing plan and clears the score snapshot.
type DiagnosticsService struct {
	DB        *gorm.DB
	progress  *repository.ProgressRepository
	questions *repository.QuestionRepository
	answers   *repository.AnswerRepository
	plan      *repository.PlanRepository
}

func NewDiagnosticsService(
	db *gorm.DB,
	progress *repository.ProgressRepository,
	questions *repository.QuestionRepository,
	answers *repository.AnswerRepository,
	plan *repository.PlanRepository,
) *DiagnosticsService {
	return &DiagnosticsService{
		DB:        db,
		progress:  progress,
		questions: questions,
		answers:   answers,
		plan:      plan,
	}
}

// ProgressFor resolves (or creates) the progress record for the user's active
// language. Returns nil progress when no language is selected yet.
func (s *DiagnosticsService) ProgressFor(user *model.User) (*model.UserProgress, error) {
	if user.ActiveLanguageID == nil {
		return nil, nil
	}
	return s.progress.GetOrCreate(user.ID, *user.ActiveLanguageID)
}

// Start begins (or restarts) the diagnostic phase for the user's active
// language. The previous epoch's snapshot, completion flag and plan items are
// discarded; the language's diagnostic questions are scheduled in catalog
// order with the first one current.
func (s *DiagnosticsService) Start(user *model.User) (*FlowResult, error) {
	if user.ActiveLanguageID == nil {
		return flow(StatusNoLanguage), nil
	}
	languageID := *user.ActiveLanguageID

	progress, err := s.progress.GetOrCreate(user.ID, languageID)
	if err != nil {
		return nil, err
	}

	result := flow(StatusNoQuestions)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.progress.ResetEpoch(tx, progress.ID); err != nil {
			return err
		}
		if err := s.plan.DeleteForProgress(tx, progress.ID); err != nil {
			return err
		}

		questions, err := s.questions.Diagnostics(tx, languageID)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}

		var first *model.LearningPlanItem
		for i := range questions {
			item, err := s.plan.Add(tx, progress.ID, questions[i].ID, i, model.ItemPending)
			if err != nil {
				return err
			}
			if i == 0 {
				first = item
			}
		}

		if _, err := s.plan.SetCurrent(tx, progress.ID, first.ID); err != nil {
			return err
		}

		q := questions[0]
		result = &FlowResult{Status: StatusOK, Question: &q, Progress: progress}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("diagnostics started",
		zap.Uint("userId", user.ID),
		zap.Uint("progressId", progress.ID),
		zap.String("status", string(result.Status)))
	return result, nil
}

// CurrentQuestion resolves the question awaiting a score. Absence of any
// client-side session context never hard-fails: the progress record is
// resolved (or created) from persisted state, and an empty plan simply
// restarts diagnostics.
func (s *DiagnosticsService) CurrentQuestion(user *model.User) (*FlowResult, error) {
	if user.ActiveLanguageID == nil {
		return flow(StatusNoLanguage), nil
	}

	progress, err := s.progress.GetOrCreate(user.ID, *user.ActiveLanguageID)
	if err != nil {
		return nil, err
	}

	current, err := s.plan.Current(s.DB, progress.ID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &FlowResult{Status: StatusOK, Question: current.Question, Progress: progress, Item: current}, nil
	}

	if progress.DiagnosticsCompleted {
		return flow(StatusCompleted), nil
	}

	count, err := s.plan.Count(s.DB, progress.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// No session was ever started for this epoch; auto-initialize.
		return s.Start(user)
	}

	// Items exist but none is current and diagnostics are not complete:
	// resume at the earliest pending item.
	result := flow(StatusNoActiveQuestion)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		next, err := s.plan.NextPending(tx, progress.ID, -1)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		item, err := s.plan.SetCurrent(tx, progress.ID, next.ID)
		if err != nil {
			return err
		}
		full, err := s.plan.ByID(tx, item.ID)
		if err != nil {
			return err
		}
		result = &FlowResult{Status: StatusOK, Question: full.Question, Progress: progress, Item: full}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordScore validates the submission against the current item, records the
// score (upsert), and advances the cursor. When the last pending item is
// consumed the score snapshot is computed from the answer ledger and
// persisted atomically with the completion flag.
func (s *DiagnosticsService) RecordScore(progressID, questionID uint, score int) (*FlowResult, error) {
	if score < 1 || score > 5 {
		return nil, util.ErrInvalidScore
	}

	var result *FlowResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		current, err := s.plan.Current(tx, progressID)
		if err != nil {
			return err
		}
		if current == nil || current.QuestionID != questionID {
			result = flow(StatusNoActiveQuestion)
			return nil
		}

		if _, err := s.answers.UpsertDiagnostic(tx, progressID, questionID, score); err != nil {
			return err
		}
		if err := s.plan.MarkStatus(tx, current.ID, model.ItemAnswered); err != nil {
			return err
		}

		next, err := s.plan.NextPending(tx, progressID, current.OrderIndex)
		if err != nil {
			return err
		}
		if next != nil {
			item, err := s.plan.SetCurrent(tx, progressID, next.ID)
			if err != nil {
				return err
			}
			full, err := s.plan.ByID(tx, item.ID)
			if err != nil {
				return err
			}
			result = &FlowResult{Status: StatusNextQuestion, Question: full.Question, Item: full}
			return nil
		}

		scores, err := deriveSnapshot(tx, s.answers, s.questions, progressID)
		if err != nil {
			return err
		}
		if err := s.progress.SaveScores(tx, progressID, scores, true); err != nil {
			return err
		}
		result = flow(StatusCompleted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == StatusCompleted {
		monitoring.DiagnosticsCompleted.Inc()
		logger.Log.Info("diagnostics completed", zap.Uint("progressId", progressID))
	}
	return result, nil
}

// deriveSnapshot computes category -> last score from all diagnostic answers
// of a progress record. Ledger rows are ordered by answer time, so a category
// with several diagnostic questions keeps the last written score. Shared with
// the practice service, which lazily materializes the snapshot when plan
// generation finds none persisted.
func deriveSnapshot(tx *gorm.DB, answerRepo *repository.AnswerRepository, questionRepo *repository.QuestionRepository, progressID uint) (map[string]int, error) {
	answers, err := answerRepo.DiagnosticsForProgress(tx, progressID)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(answers))
	for _, ans := range answers {
		q, err := questionRepo.ByID(tx, ans.QuestionID)
		if err != nil {
			logger.Log.Warn("ledger references missing question",
				zap.Uint("questionId", ans.QuestionID))
			continue
		}
		scores[strconv.FormatUint(uint64(q.CategoryID), 10)] = ans.Score
	}
	return scores, nil
}
