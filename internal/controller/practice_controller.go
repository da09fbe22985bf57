package controller

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Users       *service.UserService
	Diagnostics *service.DiagnosticsService
	Practice    *service.PracticeService
}

func NewPracticeController(users *service.UserService, diagnostics *service.DiagnosticsService, practice *service.PracticeService) *PracticeController {
	return &PracticeController{Users: users, Diagnostics: diagnostics, Practice: practice}
}

// progressFor resolves user and progress from the external id, answering the
// flow tag itself when no language is selected. Returns nil progress when the
// response has already been written.
func (c *PracticeController) progressFor(ctx *gin.Context, externalID string) (*model.User, *model.UserProgress) {
	user, err := c.Users.ByExternalID(externalID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return nil, nil
	}
	progress, err := c.Diagnostics.ProgressFor(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return nil, nil
	}
	if progress == nil {
		util.Flow(ctx, string(service.StatusNoLanguage), nil)
		return nil, nil
	}
	return user, progress
}

// @Summary Get the practice question awaiting an answer
// @Tags practice
// @Produce json
// @Param externalId query string true "identity"
// @Success 200 {object} util.Response
// @Router /api/practice/current [get]
func (c *PracticeController) Current(ctx *gin.Context) {
	externalID := ctx.Query("externalId")
	if externalID == "" {
		util.BadRequest(ctx, "externalId is required")
		return
	}
	_, progress := c.progressFor(ctx, externalID)
	if progress == nil {
		return
	}

	result, err := c.Practice.CurrentItem(progress.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Flow(ctx, string(result.Status), gin.H{
		"question": result.Question,
		"item":     result.Item,
	})
}

type practiceAnswerRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// @Summary Record a free-form answer to the current practice question
// @Description The answer is stored with optional generated feedback. The
// @Description cursor stays on the question until the client advances.
// @Tags practice
// @Accept json
// @Produce json
// @Param body body practiceAnswerRequest true "answer submission"
// @Success 200 {object} util.Response
// @Router /api/practice/answer [post]
func (c *PracticeController) Answer(ctx *gin.Context) {
	var req practiceAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, progress := c.progressFor(ctx, req.ExternalID)
	if progress == nil {
		return
	}

	result, err := c.Practice.RecordAnswer(ctx.Request.Context(), user.ID, progress.ID, req.Answer)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result.Status == service.StatusOK {
		if err := c.Users.SetState(user.ID, model.StatePractice); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Flow(ctx, string(result.Status), gin.H{
		"item":     result.Item,
		"feedback": result.Feedback,
	})
}

type practiceNextRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
}

// @Summary Advance to the next pending practice question
// @Tags practice
// @Accept json
// @Produce json
// @Param body body practiceNextRequest true "identity"
// @Success 200 {object} util.Response
// @Router /api/practice/next [post]
func (c *PracticeController) Next(ctx *gin.Context) {
	var req practiceNextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, progress := c.progressFor(ctx, req.ExternalID)
	if progress == nil {
		return
	}

	result, err := c.Practice.Advance(progress.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	switch result.Status {
	case service.StatusOK:
		if err := c.Users.SetState(user.ID, model.StateWaitingForAnswer); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	case service.StatusFinished:
		if err := c.Users.SetState(user.ID, model.StateEnd); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Flow(ctx, string(result.Status), gin.H{
		"question": result.Question,
		"item":     result.Item,
	})
}

// @Summary List the full practice plan in order
// @Tags practice
// @Produce json
// @Param externalId query string true "identity"
// @Success 200 {object} util.Response
// @Router /api/practice/plan [get]
func (c *PracticeController) Plan(ctx *gin.Context) {
	externalID := ctx.Query("externalId")
	if externalID == "" {
		util.BadRequest(ctx, "externalId is required")
		return
	}
	_, progress := c.progressFor(ctx, externalID)
	if progress == nil {
		return
	}

	items, err := c.Practice.PlanOverview(progress.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type regenerateRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
}

// @Summary Generate an additional practice batch from the score snapshot
// @Tags practice
// @Accept json
// @Produce json
// @Param body body regenerateRequest true "identity"
// @Success 200 {object} util.Response
// @Router /api/practice/generate [post]
func (c *PracticeController) Generate(ctx *gin.Context) {
	var req regenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, progress := c.progressFor(ctx, req.ExternalID)
	if progress == nil {
		return
	}

	result, err := c.Practice.GeneratePlan(ctx.Request.Context(), progress.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result.Status == service.StatusOK {
		if err := c.Users.SetState(user.ID, model.StatePractice); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Flow(ctx, string(result.Status), gin.H{"count": result.Count})
}
