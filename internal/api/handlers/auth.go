package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/freelancehub/internal/api/dto"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
)

// AuthHandler exposes the session resolved by the auth provider
type AuthHandler struct {
	provider gateway.AuthProvider
	logger   *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(provider gateway.AuthProvider, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		logger:   log,
	}
}

// Me returns the current user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse "No session"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.UserDTO{ID: user.ID, Email: user.Email})
}

// Logout ends the session. It always succeeds; a failed remote sign-out is only logged.
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.SignOut(r.Context()); err != nil {
		h.logger.WarnWithErr(err, "Sign-out failed")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Signed out", nil)
}
