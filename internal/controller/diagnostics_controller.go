package controller

import (
	"errors"

	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DiagnosticsController struct {
	Users       *service.UserService
	Diagnostics *service.DiagnosticsService
	Practice    *service.PracticeService
}

func NewDiagnosticsController(users *service.UserService, diagnostics *service.DiagnosticsService, practice *service.PracticeService) *DiagnosticsController {
	return &DiagnosticsController{Users: users, Diagnostics: diagnostics, Practice: practice}
}

type diagnosticsStartRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
}

// @Summary Start (or restart) the diagnostic assessment
// @Tags diagnostics
// @Accept json
// @Produce json
// @Param body body diagnosticsStartRequest true "identity"
// @Success 200 {object} util.Response
// @Router /api/diagnostics/start [post]
func (c *DiagnosticsController) Start(ctx *gin.Context) {
	var req diagnosticsStartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Users.ByExternalID(req.ExternalID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.Diagnostics.Start(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result.Status == service.StatusOK {
		if err := c.Users.SetState(user.ID, model.StateDiagnostics); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Flow(ctx, string(result.Status), gin.H{
		"question": result.Question,
		"progress": result.Progress,
	})
}

// @Summary Get the diagnostic question awaiting a score
// @Tags diagnostics
// @Produce json
// @Param externalId query string true "identity"
// @Success 200 {object} util.Response
// @Router /api/diagnostics/current [get]
func (c *DiagnosticsController) Current(ctx *gin.Context) {
	externalID := ctx.Query("externalId")
	if externalID == "" {
		util.BadRequest(ctx, "externalId is required")
		return
	}

	user, err := c.Users.ByExternalID(externalID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.Diagnostics.CurrentQuestion(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Flow(ctx, string(result.Status), gin.H{
		"question": result.Question,
		"item":     result.Item,
	})
}

type diagnosticsScoreRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Score      int    `json:"score" binding:"required"`
}

// @Summary Record a self-assessment score for the current diagnostic question
// @Description On the last question the score snapshot is persisted and a
// @Description practice plan is generated from it; the response then carries
// @Description the generation outcome alongside the completed tag.
// @Tags diagnostics
// @Accept json
// @Produce json
// @Param body body diagnosticsScoreRequest true "score submission"
// @Success 200 {object} util.Response
// @Router /api/diagnostics/score [post]
func (c *DiagnosticsController) Score(ctx *gin.Context) {
	var req diagnosticsScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Users.ByExternalID(req.ExternalID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	progress, err := c.Diagnostics.ProgressFor(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if progress == nil {
		util.Flow(ctx, string(service.StatusNoLanguage), nil)
		return
	}

	result, err := c.Diagnostics.RecordScore(progress.ID, req.QuestionID, req.Score)
	if err != nil {
		if errors.Is(err, util.ErrInvalidScore) {
			util.BadRequest(ctx, "score must be between 1 and 5")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if result.Status != service.StatusCompleted {
		util.Flow(ctx, string(result.Status), gin.H{
			"question": result.Question,
			"item":     result.Item,
		})
		return
	}

	// Assessment finished: generate the practice plan and hand the user over
	// to the practice phase in one round trip.
	gen, err := c.Practice.GeneratePlan(ctx.Request.Context(), progress.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	var firstQuestion *model.Question
	if gen.Status == service.StatusOK {
		if err := c.Users.SetState(user.ID, model.StatePractice); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if cur, err := c.Practice.CurrentItem(progress.ID); err == nil && cur.Status == service.StatusOK {
			firstQuestion = cur.Question
		}
	}
	util.Flow(ctx, string(service.StatusCompleted), gin.H{
		"generation": string(gen.Status),
		"count":      gen.Count,
		"question":   firstQuestion,
	})
}
