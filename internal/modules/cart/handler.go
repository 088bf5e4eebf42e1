package cart

import (
	"errors"
	"net/http"

	"mentorhub/internal/middleware"
	"mentorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	carts    *Manager
	hub      *Hub
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler serves the cart of the caller's cart_session. allowOrigin
// decides which browser origins may open the sync socket.
func NewHandler(carts *Manager, hub *Hub, allowOrigin func(origin string) bool, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		carts: carts,
		hub:   hub,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin == nil || allowOrigin(origin)
			},
		},
	}
}

// RegisterRoutes expects rg to run middleware.CartSession.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/cart")
	g.GET("", h.GetCart)
	g.DELETE("", h.ClearCart)
	g.POST("/items", h.AddItem)
	g.PATCH("/items/:id", h.UpdateQuantity)
	g.DELETE("/items/:id", h.RemoveItem)
	g.PUT("/discount", h.SetDiscount)
	g.GET("/ws", h.Subscribe)
}

func (h *Handler) GetCart(c *gin.Context) {
	snap, err := h.carts.Get(c.Request.Context(), session(c))
	h.respond(c, snap, err)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if req.Item.Kind == KindMentoria {
		h.respond(c, Snapshot{}, ErrReservedKind)
		return
	}
	snap, err := h.carts.With(c.Request.Context(), session(c), func(s *Store) error {
		_, err := s.AddItem(c.Request.Context(), req.Item, req.Quantity)
		return err
	})
	h.respond(c, snap, err)
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "quantity is required")
		return
	}
	id := c.Param("id")
	snap, err := h.carts.With(c.Request.Context(), session(c), func(s *Store) error {
		if _, ok := s.Item(id); !ok {
			return errItemNotFound
		}
		_, err := s.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
		return err
	})
	h.respond(c, snap, err)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id := c.Param("id")
	snap, err := h.carts.With(c.Request.Context(), session(c), func(s *Store) error {
		_, err := s.RemoveItem(c.Request.Context(), id)
		return err
	})
	h.respond(c, snap, err)
}

func (h *Handler) ClearCart(c *gin.Context) {
	snap, err := h.carts.With(c.Request.Context(), session(c), func(s *Store) error {
		_, err := s.Clear(c.Request.Context())
		return err
	})
	h.respond(c, snap, err)
}

func (h *Handler) SetDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	snap, err := h.carts.With(c.Request.Context(), session(c), func(s *Store) error {
		_, err := s.SetDiscountCode(c.Request.Context(), req.Code)
		return err
	})
	h.respond(c, snap, err)
}

// Subscribe upgrades to a websocket that receives every change of this cart.
func (h *Handler) Subscribe(c *gin.Context) {
	sess := session(c)
	snap, err := h.carts.Get(c.Request.Context(), sess)
	if err != nil {
		h.respond(c, snap, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("cart socket upgrade failed", zap.Error(err))
		return
	}
	h.hub.ServeWS(conn, sess, snap)
}

var errItemNotFound = errors.New("cart item not found")

func (h *Handler) respond(c *gin.Context, snap Snapshot, err error) {
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, snap)
	case errors.Is(err, ErrInvalidItem):
		response.Fail(c, http.StatusBadRequest, response.CodeValidation)
	case errors.Is(err, ErrQuantityLimit), errors.Is(err, ErrReservedKind):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, response.Message(response.CodeValidation), err.Error())
	case errors.Is(err, errItemNotFound):
		response.Fail(c, http.StatusNotFound, response.CodeNotFound)
	default:
		h.log.Error("cart request failed", zap.Error(err), zap.String("session", session(c)))
		response.Fail(c, http.StatusInternalServerError, response.CodeInternal)
	}
}

func session(c *gin.Context) string {
	return c.GetString(middleware.CartSessionKey)
}
