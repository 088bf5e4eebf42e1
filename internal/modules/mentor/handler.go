package mentor

import (
	"errors"
	"net/http"
	"strconv"

	"mentorhub/internal/pkg/response"
	"mentorhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentors", h.GetMentors)
	rg.GET("/mentors/:id", h.GetMentor)
}

// GetMentors handles GET /mentors with text search and tag filters.
func (h *Handler) GetMentors(c *gin.Context) {
	f := repository.MentorFilter{
		Query:       c.Query("q"),
		Specialty:   c.Query("specialty"),
		Language:    c.Query("language"),
		SessionKind: c.Query("sessionKind"),
	}

	// Pagination
	f.Limit = defaultLimit
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			f.Limit = min(val, maxLimit)
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	mentors, total, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		h.log.Error("mentor search failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"mentors": mentors,
		"pagination": Pagination{
			Page:       f.Offset/f.Limit + 1,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: (int(total) + f.Limit - 1) / f.Limit,
		},
	})
}

func (h *Handler) GetMentor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid mentor ID")
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.CodeNotFound)
			return
		}
		h.log.Error("get mentor failed", zap.Error(err), zap.Int64("mentor_id", id))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mentor": m})
}
