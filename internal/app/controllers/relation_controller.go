package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/app/services"
	"github.com/yigit/librarium/internal/middleware"
)

// RelationController reads and replaces many-to-many sets
type RelationController struct {
	relationService *services.RelationService
}

// NewRelationController creates a new RelationController
func NewRelationController(relationService *services.RelationService) *RelationController {
	return &RelationController{relationService: relationService}
}

// List returns a handler listing the ids linked through rel
func (c *RelationController) List(rel services.Relation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := middleware.ParseIDParam(ctx, "id")
		if !ok {
			return
		}

		ids, err := c.relationService.List(ctx.Request.Context(), rel, id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IDsResponse{IDs: ids}))
	}
}

// Replace returns a handler that makes the request's ids the complete set
// linked through rel
// @Summary Replace a many-to-many set
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IDsRequest true "Linked record ids"
// @Success 200 {object} dto.APIResponse{data=dto.IDsResponse} "Stored set"
// @Failure 400 {object} dto.ErrorResponse "Invalid or unknown id"
// @Failure 404 {object} dto.ErrorResponse "Owner not found"
func (c *RelationController) Replace(rel services.Relation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := middleware.ParseIDParam(ctx, "id")
		if !ok {
			return
		}
		var req dto.IDsRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}

		ids, err := c.relationService.Replace(ctx.Request.Context(), rel, id, req.IDs)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IDsResponse{IDs: ids}))
	}
}
