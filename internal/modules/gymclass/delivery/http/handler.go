package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/modules/gymclass/dto"
	gymclass "github.com/fitlife/gymsched/internal/modules/gymclass/service"
	"github.com/fitlife/gymsched/pkg/apperror"
	commonDto "github.com/fitlife/gymsched/pkg/dto"
	"github.com/fitlife/gymsched/pkg/response"
	"github.com/fitlife/gymsched/pkg/validator"
)

type GymClassHandler struct {
	service gymclass.GymClassService
}

func NewGymClassHandler(service gymclass.GymClassService) *GymClassHandler {
	return &GymClassHandler{service: service}
}

func (h *GymClassHandler) Index(c *gin.Context) {
	var query commonDto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *GymClassHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NotFound("gym class not found"))
		return
	}

	class, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *GymClassHandler) Create(c *gin.Context) {
	var req dto.CreateGymClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	class, err := h.service.Create(c.Request.Context(), response.GetCaller(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *GymClassHandler) Update(c *gin.Context) {
	var uri commonDto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest("invalid uuid format"))
		return
	}

	var req dto.UpdateGymClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	class, err := h.service.Update(c.Request.Context(), response.GetCaller(c), uuid.MustParse(uri.ID), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *GymClassHandler) Delete(c *gin.Context) {
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
