package handler

import (
	"net/http"

	"auth-service/internal/auth"
	apperrors "auth-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the sample protected resources. Route guards decide
// who reaches them; the handlers only echo the caller back.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) UserProfile(c echo.Context) error {
	return respondWithPrincipal(c, msgUserProfileData)
}

func (h *ProfileHandler) AdminDashboard(c echo.Context) error {
	return respondWithPrincipal(c, msgAdminDashboard)
}

func (h *ProfileHandler) Me(c echo.Context) error {
	return respondWithPrincipal(c, "")
}

func respondWithPrincipal(c echo.Context, message string) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return apperrors.Unauthenticated()
	}
	return c.JSON(http.StatusOK, ProfileResponse{
		Message: message,
		User:    principal,
	})
}
