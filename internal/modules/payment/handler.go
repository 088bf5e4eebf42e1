package payment

import (
	"errors"
	"io"
	"net/http"

	"mentorhub/internal/middleware"
	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

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

// RegisterProtectedRoutes expects rg to require a user and carry CartSession.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/intent", h.CreateIntent)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	resp, err := h.service.CreateIntent(c.Request.Context(), c.GetString(middleware.CartSessionKey), c.GetInt64("user_id"), req.Product)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			response.Fail(c, http.StatusBadRequest, response.CodeEmptyCart)
		case errors.Is(err, ErrValidation), errors.Is(err, ErrUnknownProduct):
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), err.Error())
		case errors.Is(err, ErrGateway):
			h.log.Error("payment gateway failed", zap.Error(err))
			response.Fail(c, http.StatusBadGateway, response.CodePaymentFailed)
		default:
			h.log.Error("create intent failed", zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Webhook has no JWT auth; the signature header is the authentication.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "failed to read request body")
		return
	}
	sig := c.GetHeader("Stripe-Signature")
	if sig == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing Stripe-Signature header")
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, sig)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"received": true})
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid signature")
	case errors.Is(err, ErrWebhookNotEnabled):
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "webhook not configured")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	default:
		h.log.Error("webhook processing failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
	}
}
