package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/modules/category/dto"
	category "github.com/fitlife/gymsched/internal/modules/category/service"
	"github.com/fitlife/gymsched/pkg/apperror"
	commonDto "github.com/fitlife/gymsched/pkg/dto"
	"github.com/fitlife/gymsched/pkg/response"
	"github.com/fitlife/gymsched/pkg/validator"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Index(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Show resolves by path id or, absent one, by the name query parameter.
func (h *CategoryHandler) Show(c *gin.Context) {
	if idParam := c.Param("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			response.Error(c, apperror.NotFound("category not found"))
			return
		}

		result, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	name := c.Query("name")
	if name == "" {
		response.Error(c, apperror.BadRequest("id or name is required"))
		return
	}

	result, err := h.service.GetByName(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	result, err := h.service.Create(c.Request.Context(), response.GetCaller(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var uri commonDto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest("invalid uuid format"))
		return
	}
	id := uuid.MustParse(uri.ID)

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	result, err := h.service.Update(c.Request.Context(), response.GetCaller(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	var uri commonDto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest("invalid uuid format"))
		return
	}

	message, err := h.service.Delete(c.Request.Context(), response.GetCaller(c), uuid.MustParse(uri.ID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}
