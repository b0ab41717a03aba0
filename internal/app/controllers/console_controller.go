package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/admin"
	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/middleware"
)

// ConsoleController exposes the administrative console as JSON
type ConsoleController struct {
	site *admin.Site
}

// NewConsoleController creates a new ConsoleController
func NewConsoleController(site *admin.Site) *ConsoleController {
	return &ConsoleController{site: site}
}

// Index lists the registered models
// @Summary List console models
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]admin.ModelInfo} "Registered models"
// @Router /admin [get]
func (c *ConsoleController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.site.Index()))
}

// ChangeList runs a model's list view. Query parameters: q (search terms),
// o (comma separated ordering, "-" for descending), page, and one parameter
// per filter.
// @Summary Console list view
// @Produce json
// @Security BearerAuth
// @Param model path string true "Model name"
// @Param q query string false "Search terms"
// @Param o query string false "Ordering"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse{data=admin.ChangeList} "One page of rows"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or ordering"
// @Failure 404 {object} dto.ErrorResponse "Unknown model"
// @Router /admin/{model} [get]
func (c *ConsoleController) ChangeList(ctx *gin.Context) {
	list, err := c.site.ChangeList(ctx.Request.Context(), ctx.Param("model"), ctx.Request.URL.Query())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}

// ChangeView returns one record with its inline children
func (c *ConsoleController) ChangeView(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.site.ChangeView(ctx.Request.Context(), ctx.Param("model"), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}

// RunAction applies a bulk action to the selected records
// @Summary Run a console action
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param model path string true "Model name"
// @Param request body dto.ActionRequest true "Action and selection"
// @Success 200 {object} dto.APIResponse{data=admin.ActionResult} "Action applied"
// @Failure 400 {object} dto.ErrorResponse "Empty selection"
// @Failure 404 {object} dto.ErrorResponse "Unknown model or action"
// @Router /admin/{model}/actions [post]
func (c *ConsoleController) RunAction(ctx *gin.Context) {
	var req dto.ActionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.site.RunAction(ctx.Request.Context(), ctx.Param("model"), req.Action, req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
