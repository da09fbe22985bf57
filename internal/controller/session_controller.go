package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionController is the transport-facing identity surface: the chat layer
// supplies an opaque external user id; everything else lives in the store.
type SessionController struct {
	Users *service.UserService
}

func NewSessionController(users *service.UserService) *SessionController {
	return &SessionController{Users: users}
}

type startSessionRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
	Locale     string `json:"locale"`
}

// @Summary Start (or resume) a session for a channel identity
// @Tags session
// @Accept json
// @Produce json
// @Param body body startSessionRequest true "identity"
// @Success 200 {object} util.Response
// @Router /api/session [post]
func (c *SessionController) Start(ctx *gin.Context) {
	var req startSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Users.StartSession(req.ExternalID, req.Locale)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type selectLanguageRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
	LanguageID uint   `json:"languageId" binding:"required"`
}

// @Summary Select the active language for a user
// @Tags session
// @Accept json
// @Produce json
// @Param body body selectLanguageRequest true "selection"
// @Success 200 {object} util.Response
// @Router /api/session/language [post]
func (c *SessionController) SelectLanguage(ctx *gin.Context) {
	var req selectLanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Users.SelectLanguage(req.ExternalID, req.LanguageID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}
