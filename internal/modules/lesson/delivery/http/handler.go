package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife/gymsched/internal/modules/lesson/dto"
	lesson "github.com/fitlife/gymsched/internal/modules/lesson/service"
	"github.com/fitlife/gymsched/pkg/apperror"
	"github.com/fitlife/gymsched/pkg/response"
	"github.com/fitlife/gymsched/pkg/validator"
)

type LessonHandler struct {
	service lesson.LessonService
}

func NewLessonHandler(service lesson.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

func (h *LessonHandler) Create(c *gin.Context) {
	var req dto.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	message, err := h.service.Enroll(c.Request.Context(), response.GetCaller(c), req.UserID, req.GymClassID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, message)
}

func (h *LessonHandler) Delete(c *gin.Context) {
	var req dto.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	message, err := h.service.Unenroll(c.Request.Context(), response.GetCaller(c), req.UserID, req.GymClassID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}
