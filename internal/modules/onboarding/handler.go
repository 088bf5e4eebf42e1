package onboarding

import (
	"errors"
	"net/http"

	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/onboarding")
	g.GET("", h.GetState)
	g.POST("/steps", h.SubmitStep)
}

func (h *Handler) GetState(c *gin.Context) {
	v, err := h.service.State(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"onboarding": v})
}

func (h *Handler) SubmitStep(c *gin.Context) {
	var req SubmitStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	v, err := h.service.SubmitStep(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"onboarding": v})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var stepErr *StepError
	switch {
	case errors.As(err, &stepErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), stepErr.Fields)
	case errors.Is(err, ErrStepOutOfOrder):
		response.Fail(c, http.StatusConflict, response.CodeStepOutOfOrder)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnknownStep):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), err.Error())
	case errors.Is(err, ErrRoleNotSupported):
		response.Fail(c, http.StatusForbidden, response.CodeForbidden)
	default:
		h.log.Error("onboarding request failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
	}
}
