package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"wemender/entity"
)

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type adminLoginRequest struct {
	Password string `json:"password" form:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type authStatusResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email,omitempty"`
}

func (h handler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return newHTTPError(http.StatusBadRequest, msgCredentialsRequired, err)
	}

	user, err := h.credentials.Register(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return newHTTPError(http.StatusBadRequest, msgCredentialsRequired, err)
	case errors.Is(err, entity.ErrPasswordTooLong):
		return newHTTPError(http.StatusBadRequest, msgPasswordTooLong, err)
	case errors.Is(err, entity.ErrDuplicateEmail):
		return newHTTPError(http.StatusBadRequest, msgDuplicateEmail, err)
	case err != nil:
		return newHTTPError(http.StatusInternalServerError, msgInternal, fmt.Errorf("registering: %w", err))
	}

	err = h.replaceSession(c, func(ctx context.Context) (string, error) {
		return h.sessions.StartUserSession(ctx, user)
	})
	if err != nil {
		return newHTTPError(http.StatusInternalServerError, msgInternal, fmt.Errorf("starting session: %w", err))
	}

	log.FromContext(c.Request().Context()).WithField("user_id", user.ID).Info("User registered")

	return c.JSON(http.StatusOK, authResponse{
		Message: "Sikeres regisztráció és bejelentkezés.",
		Email:   user.Email,
	})
}

func (h handler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return newHTTPError(http.StatusBadRequest, msgCredentialsRequired, err)
	}

	user, err := h.credentials.Verify(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return newHTTPError(http.StatusBadRequest, msgCredentialsRequired, err)
	case errors.Is(err, entity.ErrInvalidCredentials):
		return newHTTPError(http.StatusBadRequest, msgInvalidCredentials, err)
	case err != nil:
		return newHTTPError(http.StatusInternalServerError, msgInternal, fmt.Errorf("verifying credentials: %w", err))
	}

	err = h.replaceSession(c, func(ctx context.Context) (string, error) {
		return h.sessions.StartUserSession(ctx, user)
	})
	if err != nil {
		return newHTTPError(http.StatusInternalServerError, msgInternal, fmt.Errorf("starting session: %w", err))
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Sikeres bejelentkezés.",
		Email:   user.Email,
	})
}

func (h handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(cookieName); err == nil {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			log.FromContext(c.Request().Context()).WithError(err).Warn("Failed to destroy session")
		}
	}
	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "Kijelentkeztél."})
}

func (h handler) AuthStatus(c echo.Context) error {
	identity := identityFrom(c)
	if !identity.IsUser() {
		return c.JSON(http.StatusOK, authStatusResponse{LoggedIn: false})
	}

	return c.JSON(http.StatusOK, authStatusResponse{
		LoggedIn: true,
		Email:    identity.Email,
	})
}

// AdminLogin leaves the caller's current session alone unless the password
// is right.
func (h handler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return newHTTPError(http.StatusBadRequest, msgPasswordRequired, err)
	}

	err := h.admin.Check(req.Password)
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return newHTTPError(http.StatusBadRequest, msgPasswordRequired, err)
	case err != nil:
		return newHTTPError(http.StatusUnauthorized, msgWrongAdminPassword, err)
	}

	err = h.replaceSession(c, h.sessions.StartAdminSession)
	if err != nil {
		return newHTTPError(http.StatusInternalServerError, msgInternal, fmt.Errorf("starting admin session: %w", err))
	}

	log.FromContext(c.Request().Context()).Info("Admin signed in")

	return c.JSON(http.StatusOK, messageResponse{Message: "Sikeres admin bejelentkezés."})
}
