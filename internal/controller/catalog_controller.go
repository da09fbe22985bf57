package controller

import (
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary List available languages
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/languages [get]
func (c *CatalogController) ListLanguages(ctx *gin.Context) {
	langs, err := c.Service.ListLanguages(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, langs)
}

// @Summary List question categories
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.Service.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

type createLanguageRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// @Summary Create a language
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body createLanguageRequest true "language"
// @Success 201 {object} util.Response
// @Router /api/admin/languages [post]
func (c *CatalogController) CreateLanguage(ctx *gin.Context) {
	var req createLanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lang, err := c.Service.CreateLanguage(ctx.Request.Context(), req.Name, req.Slug)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lang)
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body createCategoryRequest true "category"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req createCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Service.CreateCategory(req.Name, req.Description)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, cat)
}

type createQuestionRequest struct {
	LanguageSlug string `json:"languageSlug" binding:"required"`
	Category     string `json:"category" binding:"required"`
	Text         string `json:"text" binding:"required"`
	Notes        string `json:"notes"`
	IsDiagnostic bool   `json:"isDiagnostic"`
}

// @Summary Create a question (idempotent on text+category+language)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body createQuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req createQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(req.LanguageSlug, req.Category, req.Text, req.Notes, req.IsDiagnostic)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}
