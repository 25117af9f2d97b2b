package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wemender/entity"
	"wemender/ledger"
)

type reservationResponse struct {
	Message     string             `json:"message"`
	Reservation entity.Reservation `json:"reservation"`
}

func (h handler) CreateReservation(c echo.Context) error {
	var req ledger.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, reservationMessages)
	}

	reservation, err := h.reservations.Create(c.Request().Context(), req)
	if err != nil {
		return ledgerError(err, reservationMessages)
	}

	return c.JSON(http.StatusOK, reservationResponse{
		Message:     "Sikeres foglalás.",
		Reservation: reservation,
	})
}

func (h handler) AdminListReservations(c echo.Context) error {
	reservations, err := h.reservations.AdminList(c.Request().Context(), identityFrom(c))
	if err != nil {
		return ledgerError(err, reservationMessages)
	}

	return c.JSON(http.StatusOK, reservations)
}

func (h handler) AdminCreateReservation(c echo.Context) error {
	var req ledger.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, reservationMessages)
	}

	reservation, err := h.reservations.AdminCreate(c.Request().Context(), identityFrom(c), req)
	if err != nil {
		return ledgerError(err, reservationMessages)
	}

	return c.JSON(http.StatusOK, reservationResponse{
		Message:     "Foglalás hozzáadva.",
		Reservation: reservation,
	})
}

func (h handler) AdminUpdateReservation(c echo.Context) error {
	id, err := pathID(c, msgNoSuchReservation)
	if err != nil {
		return err
	}

	var req ledger.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, reservationMessages)
	}

	err = h.reservations.AdminUpdate(c.Request().Context(), identityFrom(c), id, req)
	if err != nil {
		return ledgerError(err, reservationMessages)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Foglalás módosítva."})
}

func (h handler) AdminDeleteReservation(c echo.Context) error {
	id, err := pathID(c, msgNoSuchReservation)
	if err != nil {
		return err
	}

	err = h.reservations.AdminDelete(c.Request().Context(), identityFrom(c), id)
	if err != nil {
		return ledgerError(err, reservationMessages)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Foglalás törölve."})
}
