package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"warung/internal/domain"
)

// cartToken reads the cart cookie. A missing cookie is an empty cart.
func (h *handlers) cartToken(c *gin.Context) string {
	token, err := c.Cookie(cartCookie)
	if err != nil {
		return ""
	}
	return token
}

// setCartCookie replaces the cart cookie with the given token. An empty
// token deletes the cookie so stale or tampered tokens do not stick around.
func (h *handlers) setCartCookie(c *gin.Context, token string) {
	maxAge := int(h.deps.CartSvc.MaxAge().Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookie, token, maxAge, "/", "", h.cfg.Production(), true)
}

func (h *handlers) getCart(c *gin.Context) {
	token := h.cartToken(c)
	view, err := h.deps.CartSvc.View(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	// Drop only tokens that failed integrity or expiry checks. A valid token
	// whose dishes are merely sold out right now stays, so the cart comes
	// back when the dishes do.
	if token != "" && !h.deps.CartSvc.Valid(token) {
		h.setCartCookie(c, "")
	}
	respondData(c, http.StatusOK, view)
}

type addCartItemRequest struct {
	Slug     string            `json:"slug" binding:"required"`
	Quantity int               `json:"quantity"`
	Variants map[string]string `json:"variants"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	token, err := h.deps.CartSvc.Add(c.Request.Context(), h.cartToken(c), req.Slug, req.Quantity, req.Variants)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	h.respondWithCart(c, token)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item index")
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), h.cartToken(c), index, req.Quantity)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	h.respondWithCart(c, token)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item index")
		return
	}
	token, err := h.deps.CartSvc.Remove(c.Request.Context(), h.cartToken(c), index)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	h.respondWithCart(c, token)
}

func (h *handlers) clearCart(c *gin.Context) {
	h.setCartCookie(c, h.deps.CartSvc.Clear())
	respondData(c, http.StatusOK, domain.EmptyCartView())
}

// respondWithCart persists the new token and echoes the reconciled cart back.
func (h *handlers) respondWithCart(c *gin.Context, token string) {
	h.setCartCookie(c, token)
	view, err := h.deps.CartSvc.View(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	respondData(c, http.StatusOK, view)
}
