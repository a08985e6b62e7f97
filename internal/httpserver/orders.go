package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"warung/internal/domain"
	ordersvc "warung/internal/service/order"
)

// checkout turns the cart cookie into an order. Guests may check out too;
// their orders simply carry no user id.
func (h *handlers) checkout(c *gin.Context) {
	var req ordersvc.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var userID *string
	if user := currentUser(c); user != nil {
		userID = &user.ID
	}

	order, err := h.deps.OrderSvc.Checkout(c.Request.Context(), h.cartToken(c), userID, req)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}

	h.setCartCookie(c, h.deps.CartSvc.Clear())
	respondMessage(c, http.StatusCreated, "order placed", order)
}

func (h *handlers) listMyOrders(c *gin.Context) {
	user := currentUser(c)
	orders, err := h.deps.OrderSvc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, orders)
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}

	user := currentUser(c)
	owns := order.UserID != nil && *order.UserID == user.ID
	if !owns && user.Role != domain.RoleAdmin && user.Role != domain.RoleStaff {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.List(
		c.Request.Context(),
		c.Query("status"),
		parseIntDefault(c.Query("limit"), 20),
		parseIntDefault(c.Query("offset"), 0),
	)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError)
		return
	}
	respondData(c, http.StatusOK, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	order, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondData(c, http.StatusOK, order)
}
