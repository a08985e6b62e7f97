package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"warung/internal/cart"
	"warung/internal/domain"
	"warung/internal/service/auth"
	ordersvc "warung/internal/service/order"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, apiResponse{Success: false, Error: msg})
}

// respondServiceError maps well-known service errors to HTTP statuses.
// Anything unrecognized on a write path is treated as a validation failure;
// read paths pass fallback=500 instead.
func respondServiceError(c *gin.Context, err error, fallback int) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInUse):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "invalid session")
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrCartFull), errors.Is(err, cart.ErrDishUnavailable):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, ordersvc.ErrEmptyCart):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ordersvc.ErrInvalidTransition):
		respondError(c, http.StatusConflict, err.Error())
	default:
		if fallback == http.StatusInternalServerError {
			respondError(c, fallback, "internal error")
			return
		}
		respondError(c, fallback, err.Error())
	}
}
