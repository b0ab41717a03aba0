// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/app/services"
	"github.com/yigit/librarium/internal/middleware"
)

// RecordController serves create, read, update and delete for one entity
type RecordController[T any] struct {
	service services.RecordService[T]
	// newRecord returns a record carrying the column defaults, so omitted
	// JSON fields keep them.
	newRecord func() *T
}

// NewRecordController creates a new RecordController
func NewRecordController[T any](service services.RecordService[T], newRecord func() *T) *RecordController[T] {
	if newRecord == nil {
		newRecord = func() *T { return new(T) }
	}
	return &RecordController[T]{service: service, newRecord: newRecord}
}

// Register mounts the four record routes under group
func (rc *RecordController[T]) Register(group *gin.RouterGroup) {
	group.POST("", rc.Create)
	group.GET("/:id", rc.Get)
	group.PUT("/:id", rc.Update)
	group.DELETE("/:id", rc.Delete)
}

// Create handles record creation
// @Summary Create a record
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse "Record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid field"
// @Failure 409 {object} dto.ErrorResponse "Duplicate value"
func (rc *RecordController[T]) Create(ctx *gin.Context) {
	record := rc.newRecord()
	if !middleware.BindJSON(ctx, record) {
		return
	}

	if err := rc.service.Create(ctx.Request.Context(), record); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// Get retrieves a record by ID, derived values included
func (rc *RecordController[T]) Get(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, err := rc.service.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// Update replaces every writable field of a record. Omitted fields fall
// back to their defaults.
func (rc *RecordController[T]) Update(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	record := rc.newRecord()
	if !middleware.BindJSON(ctx, record) {
		return
	}

	if err := rc.service.Update(ctx.Request.Context(), id, record); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// Delete removes a record and whatever cascades from it
func (rc *RecordController[T]) Delete(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := rc.service.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Record deleted"}))
}
