package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wemender/entity"
	"wemender/ledger"
)

type purchaseResponse struct {
	Message   string        `json:"message"`
	Ticket    entity.Ticket `json:"ticket"`
	QRDataURL string        `json:"qrDataUrl,omitempty"`
}

type ticketResponse struct {
	Message string        `json:"message"`
	Ticket  entity.Ticket `json:"ticket"`
}

func (h handler) PurchaseTicket(c echo.Context) error {
	identity := identityFrom(c)

	var req ledger.TicketRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, ticketMessages)
	}

	issued, err := h.tickets.Purchase(c.Request().Context(), identity, req)
	if errors.Is(err, entity.ErrEmailMismatch) {
		return newHTTPError(http.StatusBadRequest, fmt.Sprintf(msgEmailMismatchFormat, identity.Email), err)
	}
	if err != nil {
		return ledgerError(err, ticketMessages)
	}

	message := "Sikeres jegyrendelés."
	if issued.QRDataURL == "" {
		message = "Sikeres jegyrendelés (QR nélkül)."
	}

	return c.JSON(http.StatusOK, purchaseResponse{
		Message:   message,
		Ticket:    issued.Ticket,
		QRDataURL: issued.QRDataURL,
	})
}

func (h handler) ListMyTickets(c echo.Context) error {
	tickets, err := h.tickets.ListMine(c.Request().Context(), identityFrom(c))
	if err != nil {
		return ledgerError(err, ticketMessages)
	}

	return c.JSON(http.StatusOK, tickets)
}

func (h handler) AdminListTickets(c echo.Context) error {
	tickets, err := h.tickets.AdminList(c.Request().Context(), identityFrom(c))
	if err != nil {
		return ledgerError(err, adminTicketMessages)
	}

	return c.JSON(http.StatusOK, tickets)
}

func (h handler) AdminCreateTicket(c echo.Context) error {
	var req ledger.TicketRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, adminTicketMessages)
	}

	ticket, err := h.tickets.AdminCreate(c.Request().Context(), identityFrom(c), req)
	if err != nil {
		return ledgerError(err, adminTicketMessages)
	}

	return c.JSON(http.StatusOK, ticketResponse{
		Message: "Jegy hozzáadva.",
		Ticket:  ticket,
	})
}

func (h handler) AdminUpdateTicket(c echo.Context) error {
	id, err := pathID(c, msgNoSuchTicket)
	if err != nil {
		return err
	}

	var req ledger.TicketRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, adminTicketMessages)
	}

	err = h.tickets.AdminUpdate(c.Request().Context(), identityFrom(c), id, req)
	if err != nil {
		return ledgerError(err, adminTicketMessages)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Jegy módosítva."})
}

func (h handler) AdminDeleteTicket(c echo.Context) error {
	id, err := pathID(c, msgNoSuchTicket)
	if err != nil {
		return err
	}

	err = h.tickets.AdminDelete(c.Request().Context(), identityFrom(c), id)
	if err != nil {
		return ledgerError(err, adminTicketMessages)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Jegy törölve."})
}

// pathID parses the :id parameter. An id that is not a number cannot name
// any row, so it is reported as not found.
func pathID(c echo.Context, notFound string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, newHTTPError(http.StatusNotFound, notFound, fmt.Errorf("parsing id: %w", err))
	}
	return id, nil
}
