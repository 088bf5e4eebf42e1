package auth

import (
	"errors"
	"net/http"

	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), verr.Fields)
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Fail(c, http.StatusConflict, response.CodeEmailExists)
		default:
			response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.CodeInvalidLogin)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetMe(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthenticated)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
