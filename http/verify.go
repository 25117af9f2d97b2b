package http

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"wemender/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type verifyView struct {
	Name     string
	Email    string
	Label    string
	Quantity int
	Code     string
}

// VerifyTicket renders a page for door staff. Unknown codes get the invalid
// page with 200, only a storage failure answers 500.
func (h handler) VerifyTicket(c echo.Context) error {
	summary, err := h.tickets.Verify(c.Request().Context(), c.Param("code"))
	if errors.Is(err, entity.ErrNotFound) {
		return c.Render(http.StatusOK, "verify_invalid.html", nil)
	}
	if err != nil {
		log.FromContext(c.Request().Context()).WithError(err).Error("Ticket verification failed")
		return c.Render(http.StatusInternalServerError, "verify_error.html", nil)
	}

	return c.Render(http.StatusOK, "verify_valid.html", verifyView{
		Name:     summary.Name,
		Email:    summary.Email,
		Label:    summary.TicketType.Label(),
		Quantity: summary.Quantity,
		Code:     summary.Code,
	})
}
