package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/app/services"
	"github.com/yigit/librarium/internal/middleware"
)

// FormsetController saves a parent record with its inline children
type FormsetController struct {
	formsetService *services.FormsetService
}

// NewFormsetController creates a new FormsetController
func NewFormsetController(formsetService *services.FormsetService) *FormsetController {
	return &FormsetController{formsetService: formsetService}
}

// saveFormset binds f, runs save and writes the saved formset back
func saveFormset[F any](ctx *gin.Context, f *F, save func(ctx *gin.Context, id int64, f *F) error) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !middleware.BindJSON(ctx, f) {
		return
	}

	if err := save(ctx, id, f); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(f))
}

// SaveAuthor handles PUT /authors/:id/formset
// @Summary Save an author with its detail and books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.AuthorFormset true "Author formset"
// @Success 200 {object} dto.APIResponse{data=services.AuthorFormset} "Saved formset"
// @Failure 400 {object} dto.ErrorResponse "Invalid field, or a child of another author"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate value"
func (c *FormsetController) SaveAuthor(ctx *gin.Context) {
	f := &services.AuthorFormset{Author: *models.NewAuthor()}
	saveFormset(ctx, f, func(ctx *gin.Context, id int64, f *services.AuthorFormset) error {
		return c.formsetService.SaveAuthor(ctx.Request.Context(), id, f)
	})
}

// SaveLibrary handles PUT /libraries/:id/formset
func (c *FormsetController) SaveLibrary(ctx *gin.Context) {
	saveFormset(ctx, &services.LibraryFormset{}, func(ctx *gin.Context, id int64, f *services.LibraryFormset) error {
		return c.formsetService.SaveLibrary(ctx.Request.Context(), id, f)
	})
}

// SaveMember handles PUT /members/:id/formset
func (c *FormsetController) SaveMember(ctx *gin.Context) {
	f := &services.MemberFormset{Member: *models.NewMember()}
	saveFormset(ctx, f, func(ctx *gin.Context, id int64, f *services.MemberFormset) error {
		return c.formsetService.SaveMember(ctx.Request.Context(), id, f)
	})
}

// SaveEvent handles PUT /events/:id/formset
func (c *FormsetController) SaveEvent(ctx *gin.Context) {
	saveFormset(ctx, &services.EventFormset{}, func(ctx *gin.Context, id int64, f *services.EventFormset) error {
		return c.formsetService.SaveEvent(ctx.Request.Context(), id, f)
	})
}
