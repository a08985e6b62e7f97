package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"warung/internal/domain"
	"warung/internal/service/auth"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (h *handlers) register(c *gin.Context) {
	var req auth.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.deps.AuthSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	respondMessage(c, http.StatusCreated, "account created", toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, token, err := h.deps.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	h.setSessionCookie(c, token, h.deps.AuthSvc.SessionTTLSeconds())
	respondData(c, http.StatusOK, toUserResponse(user))
}

func (h *handlers) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	respondMessage(c, http.StatusOK, "logged out", nil)
}

func (h *handlers) me(c *gin.Context) {
	respondData(c, http.StatusOK, toUserResponse(currentUser(c)))
}

func (h *handlers) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", h.cfg.Production(), true)
}
