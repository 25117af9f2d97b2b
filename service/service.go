package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"wemender/auth"
	"wemender/db"
	"wemender/http"
	"wemender/ledger"
	"wemender/message"
	"wemender/notify"
	"wemender/qr"
	"wemender/session"
)

const shutdownTimeout = 5 * time.Second

type Deps struct {
	Logger      watermill.LoggerAdapter
	DB          *sqlx.DB
	RedisClient *redis.Client
	Notifier    notify.Notifier

	Addr          string
	PublicBaseURL string
	AdminPassword string
	SessionTTL    time.Duration
	CookieSecure  bool
	BcryptCost    int
	StaticDir     string
}

type Service struct {
	msgRouter  *message.Router
	httpRouter *echo.Echo
	addr       string
}

// New wires the service. Without a Redis client sessions and events stay in
// process.
func New(deps Deps) (*Service, error) {
	var (
		store     session.Store
		transport message.Transport
		err       error
	)
	if deps.RedisClient != nil {
		store = session.NewRedisStore(deps.RedisClient)
		transport, err = message.NewRedisTransport(deps.RedisClient, deps.Logger)
		if err != nil {
			return nil, fmt.Errorf("creating redis transport: %w", err)
		}
	} else {
		store = session.NewMemoryStore()
		transport = message.NewGoChannelTransport(deps.Logger)
	}

	eventBus, err := message.NewEventBus(transport.Publisher, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	encoder := qr.NewEncoder(deps.PublicBaseURL)

	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:    deps.Logger,
		Notifier:  deps.Notifier,
		QR:        encoder,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	credentials, err := auth.NewCredentials(db.NewUserRepo(deps.DB), deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("creating credentials: %w", err)
	}

	httpRouter := http.NewRouter(http.RouterDeps{
		Credentials:  credentials,
		AdminGate:    auth.NewAdminGate(deps.AdminPassword),
		Sessions:     session.NewAuthority(store, deps.SessionTTL),
		Tickets:      ledger.NewTicketLedger(db.NewTicketRepo(deps.DB), encoder, eventBus),
		Reservations: ledger.NewReservationLedger(db.NewReservationRepo(deps.DB)),
		CookieSecure: deps.CookieSecure,
		StaticDir:    deps.StaticDir,
	})

	return &Service{
		msgRouter:  msgRouter,
		httpRouter: httpRouter,
		addr:       deps.Addr,
	}, nil
}

// Run serves HTTP once the message router is up and stops both when ctx is
// cancelled.
func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running message router: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.serveHTTP(runCtx)
	})
	g.Go(func() error {
		<-runCtx.Done()
		return s.shutdown()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("running service: %w", err)
	}
	logrus.Info("Service stopped")

	return nil
}

func (s Service) serveHTTP(ctx context.Context) error {
	select {
	case <-s.msgRouter.Running():
	case <-ctx.Done():
		return nil
	}

	logrus.WithField("addr", s.addr).Info("Serving HTTP")
	if err := s.httpRouter.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http on %s: %w", s.addr, err)
	}
	return nil
}

func (s Service) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := s.httpRouter.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err := s.msgRouter.Close(); err != nil {
		return fmt.Errorf("closing message router: %w", err)
	}
	logrus.WithField("took", time.Since(start)).Info("Drained HTTP and message router")

	return nil
}
