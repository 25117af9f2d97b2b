package message_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wemender/entity"
	"wemender/event"
	"wemender/message"
	"wemender/notify"
	"wemender/qr"
)

type MockNotifier struct {
	lock          sync.Mutex
	confirmations []notify.TicketConfirmation
	err           error
}

func (m *MockNotifier) SendTicketConfirmation(_ context.Context, c notify.TicketConfirmation) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, c)

	return nil
}

func (m *MockNotifier) Confirmations() []notify.TicketConfirmation {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]notify.TicketConfirmation(nil), m.confirmations...)
}

type brokenQR struct{}

func (brokenQR) DataURL(string) (string, error) {
	return "", errors.New("encoder unavailable")
}

func (brokenQR) VerifyURL(code string) string {
	return "https://jegy.example.com/verify/" + code
}

func issuedTicket() entity.Ticket {
	return entity.Ticket{
		ID:         3,
		Name:       "Alice",
		Email:      "alice@example.com",
		TicketType: entity.TicketTypeNormal,
		Quantity:   1,
		TotalPrice: decimal.NewFromInt(5000),
		Code:       "0A1B2C3D",
	}
}

func TestRouter_sends_confirmation(t *testing.T) {
	logger := watermill.NewStdLogger(false, false)
	transport := message.NewGoChannelTransport(logger)
	notifier := &MockNotifier{}

	router, err := message.NewRouter(message.RouterDeps{
		Logger:    logger,
		Notifier:  notifier,
		QR:        qr.NewEncoder("https://jegy.example.com/"),
		Transport: transport,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	bus, err := message.NewEventBus(transport.Publisher, logger)
	require.NoError(t, err)

	err = bus.Publish(ctx, event.NewTicketIssued(issuedTicket()))
	require.NoError(t, err)

	require.EventuallyWithT(t, func(t *assert.CollectT) {
		assert.Len(t, notifier.Confirmations(), 1)
	}, 5*time.Second, 50*time.Millisecond)

	c := notifier.Confirmations()[0]
	assert.Equal(t, "0A1B2C3D", c.Ticket.Code)
	assert.Equal(t, "alice@example.com", c.Ticket.Email)
	assert.True(t, decimal.NewFromInt(5000).Equal(c.Ticket.TotalPrice))
	assert.Equal(t, "https://jegy.example.com/verify/0A1B2C3D", c.VerifyURL)
	assert.Contains(t, c.QRDataURL, "data:image/png;base64,")
}

func TestHandler_sends_without_qr(t *testing.T) {
	notifier := &MockNotifier{}
	h := message.NewHandler(notifier, brokenQR{})

	e := event.NewTicketIssued(issuedTicket())
	err := h.SendTicketConfirmation(context.Background(), &e)
	require.NoError(t, err)

	confirmations := notifier.Confirmations()
	require.Len(t, confirmations, 1)
	assert.Empty(t, confirmations[0].QRDataURL)
	assert.Equal(t, "https://jegy.example.com/verify/0A1B2C3D", confirmations[0].VerifyURL)
}

func TestHandler_notifier_failure(t *testing.T) {
	notifier := &MockNotifier{err: errors.New("provider rejected the request")}
	h := message.NewHandler(notifier, qr.NewEncoder("https://jegy.example.com"))

	e := event.NewTicketIssued(issuedTicket())
	err := h.SendTicketConfirmation(context.Background(), &e)
	assert.Error(t, err)
}
