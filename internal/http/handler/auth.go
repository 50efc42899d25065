package handler

import (
	"net/http"

	"auth-service/internal/audit"
	"auth-service/internal/auth"
	apperrors "auth-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	credentials CredentialResolver
	tokens      TokenCodec
	audit       AuditLogger
}

func NewAuthHandler(credentials CredentialResolver, tokens TokenCodec, auditLogger AuditLogger) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		audit:       auditLogger,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req, msgLoginShape); err != nil {
		return err
	}
	if req.Username == nil || req.Password == nil {
		return apperrors.InvalidRequestShape(msgLoginShape)
	}

	principal, err := h.credentials.Resolve(c.Request().Context(), *req.Username, *req.Password)
	if err != nil {
		h.audit.LogFromContext(c, audit.Entry{
			Action:   audit.ActionLogin,
			Status:   audit.StatusFailure,
			Username: *req.Username,
			Reason:   apperrors.Code(err),
		})
		return err
	}

	issued, err := h.tokens.Issue(principal)
	if err != nil {
		return apperrors.InternalServer(msgIssueTokenFail, err)
	}

	c.Logger().Infof(msgLoginSucceeded, principal.Username, principal.Role)
	h.audit.LogFromContext(c, audit.Entry{
		Action:   audit.ActionLogin,
		Status:   audit.StatusSuccess,
		Username: principal.Username,
		Role:     string(principal.Role),
	})

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     issued.Token,
		TokenType: auth.TokenType,
		ExpiresIn: issued.ExpiresIn,
		Role:      principal.Role,
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := bindJSON(c, &req, msgVerifyShape); err != nil {
		return err
	}
	if req.Token == nil {
		return apperrors.InvalidRequestShape(msgVerifyShape)
	}

	claims, err := h.tokens.Verify(*req.Token)
	if err != nil {
		c.Logger().Warnf(msgVerifyRejectedFmt, err)
		appErr := apperrors.InvalidOrExpiredToken(err)
		h.audit.LogFromContext(c, audit.Entry{
			Action: audit.ActionVerifyToken,
			Status: audit.StatusFailure,
			Reason: appErr.Code,
		})
		return appErr
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Valid:   true,
		Payload: payloadFromClaims(claims),
	})
}
