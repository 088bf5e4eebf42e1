package booking

import (
	"errors"
	"net/http"
	"strconv"

	"mentorhub/internal/middleware"
	"mentorhub/internal/modules/cart"
	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service        *Service
	flow           *Flow
	carts          *cart.Manager
	signInRedirect string
	log            *zap.Logger
}

func NewHandler(service *Service, flow *Flow, carts *cart.Manager, signInRedirect string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, flow: flow, carts: carts, signInRedirect: signInRedirect, log: log}
}

// RegisterRoutes expects rg to run OptionalJWTAuth and CartSession.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.POST("/bookings/cart", h.AddToCart)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/my", h.GetMyBookings)
}

func (h *Handler) RegisterMentorRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentor/bookings", h.GetMentorBookings)
	rg.POST("/mentor/bookings/:reference/confirm", h.ConfirmBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	req.MenteeID = c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// AddToCart stages the selected slot as a cart line. Re-adding the same
// slot and session kind leaves the cart unchanged.
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	item, err := h.flow.BuildItem(ctx, c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	snap, err := h.carts.With(ctx, c.GetString(middleware.CartSessionKey), func(s *cart.Store) error {
		if _, exists := s.Item(item.ID); exists {
			return nil
		}
		_, err := s.AddItem(ctx, item, 1)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item, "cart": snap})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	limit, offset := paging(c)
	rows, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetMentorBookings(c *gin.Context) {
	limit, offset := paging(c)
	rows, err := h.service.MentorBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

// ConfirmBooking marks one of the mentor's direct bookings as paid.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	b, err := h.service.ConfirmForMentor(c.Request.Context(), c.GetInt64("user_id"), c.Param("reference"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.Unauthenticated(c, h.signInRedirect)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNoSlotSelected), errors.Is(err, ErrUnknownSessionKind), errors.Is(err, cart.ErrInvalidItem):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), err.Error())
	case errors.Is(err, ErrSlotUnavailable):
		response.Fail(c, http.StatusConflict, response.CodeSlotUnavailable)
	case errors.Is(err, ErrOverbooking):
		response.Fail(c, http.StatusConflict, response.CodeOverbooking)
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.CodeNotFound)
	default:
		h.log.Error("booking request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
	}
}

func paging(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
