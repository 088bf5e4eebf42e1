package availability

import (
	"errors"
	"net/http"

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

// RegisterPublicRoutes mounts the mentee-facing read endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)
}

// RegisterMentorRoutes expects rg to be authenticated and restricted to mentors.
func (h *Handler) RegisterMentorRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentor/availability", h.GetMentorDay)
	rg.POST("/availability", h.SaveDay)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var q dayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "mentorId must be a number")
		return
	}
	if (q.Date == "") == (q.Month == "") {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "exactly one of date or month is required")
		return
	}

	if q.Month != "" {
		idx, err := h.service.Month(c.Request.Context(), q.MentorID, q.Month)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, idx)
		return
	}

	day, err := h.service.Day(c.Request.Context(), q.MentorID, q.Date, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (h *Handler) GetMentorDay(c *gin.Context) {
	day, err := h.service.Day(c.Request.Context(), c.GetInt64("user_id"), c.Query("date"), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (h *Handler) SaveDay(c *gin.Context) {
	var req SaveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	day, err := h.service.SaveDay(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), err.Error())
	case errors.Is(err, ErrConflict):
		response.ErrorWithDetails(c, http.StatusConflict, response.CodeSlotBooked, response.Message(response.CodeSlotBooked), err.Error())
	default:
		h.log.Error("availability request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
	}
}
