package http

import (
	"net/http"
	"path/filepath"
	"time"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

var ErrServerClosed = http.ErrServerClosed

type RouterDeps struct {
	Credentials  Credentials
	AdminGate    AdminGate
	Sessions     Sessions
	Tickets      TicketLedger
	Reservations ReservationLedger

	CookieSecure bool
	StaticDir    string

	// LoginRate limits register and login attempts per client IP. Zero
	// means one attempt every six seconds with a burst of ten.
	LoginRate  rate.Limit
	LoginBurst int
}

func NewRouter(deps RouterDeps) *echo.Echo {
	server := commonHTTP.NewEcho()
	server.HTTPErrorHandler = errorHandler
	server.Renderer = newTemplateRenderer()

	h := handler{
		credentials:  deps.Credentials,
		admin:        deps.AdminGate,
		sessions:     deps.Sessions,
		tickets:      deps.Tickets,
		reservations: deps.Reservations,
		cookieSecure: deps.CookieSecure,
	}

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server.GET("/verify/:code", h.VerifyTicket)

	api := server.Group("/api", h.identityMiddleware)

	limited := loginRateLimiter(deps.LoginRate, deps.LoginBurst)
	api.POST("/register", h.Register, limited)
	api.POST("/login", h.Login, limited)
	api.POST("/logout", h.Logout)
	api.GET("/auth/status", h.AuthStatus)

	api.POST("/tickets", h.PurchaseTicket, requireUser)
	api.GET("/my-tickets", h.ListMyTickets, requireUser)
	api.POST("/reservations", h.CreateReservation)

	api.POST("/admin/login", h.AdminLogin, limited)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/tickets", h.AdminListTickets)
	admin.POST("/tickets", h.AdminCreateTicket)
	admin.PUT("/tickets/:id", h.AdminUpdateTicket)
	admin.DELETE("/tickets/:id", h.AdminDeleteTicket)
	admin.GET("/reservations", h.AdminListReservations)
	admin.POST("/reservations", h.AdminCreateReservation)
	admin.PUT("/reservations/:id", h.AdminUpdateReservation)
	admin.DELETE("/reservations/:id", h.AdminDeleteReservation)

	if deps.StaticDir != "" {
		server.File("/admin", filepath.Join(deps.StaticDir, "admin.html"))
		server.File("/my-tickets", filepath.Join(deps.StaticDir, "my-tickets.html"))
		server.Static("/", deps.StaticDir)
	}

	return server
}

func loginRateLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	if limit == 0 {
		limit = rate.Every(6 * time.Second)
	}
	if burst == 0 {
		burst = 10
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return newHTTPError(http.StatusTooManyRequests, msgTooManyRequests, err)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return newHTTPError(http.StatusForbidden, msgTooManyRequests, err)
		},
	})
}
