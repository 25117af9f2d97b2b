package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"wemender/entity"
)

const (
	msgInternal            = "Szerver hiba."
	msgCredentialsRequired = "E-mail és jelszó megadása kötelező."
	msgInvalidCredentials  = "Hibás e-mail vagy jelszó."
	msgDuplicateEmail      = "Ezzel az e-mail címmel már van regisztráció."
	msgPasswordTooLong     = "A jelszó legfeljebb 72 bájt hosszú lehet."
	msgPasswordRequired    = "Jelszó megadása kötelező."
	msgWrongAdminPassword  = "Hibás admin jelszó."
	msgLoginRequired       = "Bejelentkezés szükséges a jegyvásárláshoz."
	msgAdminRequired       = "Admin jogosultság szükséges."
	msgTicketFields        = "Minden mező kitöltése kötelező."
	msgInvalidTicketType   = "Érvénytelen jegytípus."
	msgInvalidAmount       = "Hibás mennyiség vagy végösszeg."
	msgReservationFields   = "Név, e-mail és létszám megadása kötelező."
	msgInvalidGuestCount   = "A létszámnak pozitív egész számnak kell lennie."
	msgNoSuchTicket        = "Nincs ilyen jegy."
	msgNoSuchReservation   = "Nincs ilyen foglalás."
	msgTooManyRequests     = "Túl sok próbálkozás, próbáld újra később."
	msgEmailMismatchFormat = "A jegyvásárláshoz ugyanazt az e-mail címet kell használnod, amivel be vagy jelentkezve: %s."
)

// errorMessages holds the user-facing texts that differ per resource.
type errorMessages struct {
	missing      string
	notFound     string
	unauthorized string
}

var (
	ticketMessages = errorMessages{
		missing:      msgTicketFields,
		notFound:     msgNoSuchTicket,
		unauthorized: msgLoginRequired,
	}
	adminTicketMessages = errorMessages{
		missing:      msgTicketFields,
		notFound:     msgNoSuchTicket,
		unauthorized: msgAdminRequired,
	}
	reservationMessages = errorMessages{
		missing:      msgReservationFields,
		notFound:     msgNoSuchReservation,
		unauthorized: msgAdminRequired,
	}
)

func newHTTPError(code int, message string, internal error) *echo.HTTPError {
	return &echo.HTTPError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// ledgerError maps the domain error taxonomy to a response. Anything not in
// the taxonomy becomes a generic 500.
func ledgerError(err error, m errorMessages) *echo.HTTPError {
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return newHTTPError(http.StatusBadRequest, m.missing, err)
	case errors.Is(err, entity.ErrInvalidTicketType):
		return newHTTPError(http.StatusBadRequest, msgInvalidTicketType, err)
	case errors.Is(err, entity.ErrInvalidAmount):
		return newHTTPError(http.StatusBadRequest, msgInvalidAmount, err)
	case errors.Is(err, entity.ErrInvalidGuestCount):
		return newHTTPError(http.StatusBadRequest, msgInvalidGuestCount, err)
	case errors.Is(err, entity.ErrUnauthorized):
		return newHTTPError(http.StatusUnauthorized, m.unauthorized, err)
	case errors.Is(err, entity.ErrNotFound):
		return newHTTPError(http.StatusNotFound, m.notFound, err)
	}

	return newHTTPError(http.StatusInternalServerError, msgInternal, err)
}

func bindError(err error, m errorMessages) *echo.HTTPError {
	return newHTTPError(http.StatusBadRequest, m.missing, fmt.Errorf("binding request: %w", err))
}

// errorHandler writes every error as {"error": message}. Internal details are
// logged, never returned.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := msgInternal

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		log.FromContext(c.Request().Context()).WithError(err).Error("Request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": message})
	}
	if err != nil {
		log.FromContext(c.Request().Context()).WithError(err).Error("Failed to write error response")
	}
}
