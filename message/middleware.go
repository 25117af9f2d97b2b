package message

import (
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"

	"wemender/monitoring"
)

// eventNameKey is the metadata key cqrs.JSONMarshaler stores the event name
// under.
const eventNameKey = "name"

func addMiddlewares(router *message.Router, logger watermill.LoggerAdapter) {
	router.AddMiddleware(correlationIDMiddleware)
	router.AddMiddleware(loggerMiddleware)
	router.AddMiddleware(handlerLogMiddleware)
	router.AddMiddleware(dropAfterRetriesMiddleware)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          logger,
	}.Middleware)
}

func correlationIDMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(msg.Context(), correlationID)
		msg.SetContext(ctx)

		return next(msg)
	}
}

// loggerMiddleware puts a logger carrying the handler and event name into
// the message context.
func loggerMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		entry := logrus.WithFields(logrus.Fields{
			"message_uuid":   msg.UUID,
			"correlation_id": log.CorrelationIDFromContext(ctx),
			"event":          msg.Metadata.Get(eventNameKey),
		})
		if handler := message.HandlerNameFromCtx(ctx); handler != "" {
			entry = entry.WithField("handler", handler)
		}
		msg.SetContext(log.ToContext(ctx, entry))

		return next(msg)
	}
}

func handlerLogMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := log.FromContext(msg.Context())
		logger.Debug("Handling event")

		start := time.Now()
		msgs, err := next(msg)
		logger = logger.WithField("duration", time.Since(start))

		if err != nil {
			logger.WithError(err).Error("Event handling failed")
			return msgs, err
		}

		logger.Info("Event handled")
		return msgs, nil
	}
}

// dropAfterRetriesMiddleware acks a message whose retries are exhausted so a
// permanently failing confirmation is not redelivered forever.
func dropAfterRetriesMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := next(msg)
		if err != nil {
			monitoring.TrackNotification(monitoring.StatusFailed)
			log.FromContext(msg.Context()).WithError(err).Error("Giving up on message")
			return nil, nil
		}

		return msgs, nil
	}
}
