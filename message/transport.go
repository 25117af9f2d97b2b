package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const consumerGroupPrefix = "wemender."

// Transport carries events from the event bus to the router's handlers.
type Transport struct {
	Publisher     message.Publisher
	newSubscriber func(handlerName string) (message.Subscriber, error)
}

// NewRedisTransport uses Redis streams with one consumer group per handler.
func NewRedisTransport(rdb redis.UniversalClient, logger watermill.LoggerAdapter) (Transport, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		return Transport{}, fmt.Errorf("creating redis publisher: %w", err)
	}

	return Transport{
		Publisher: publisher,
		newSubscriber: func(handlerName string) (message.Subscriber, error) {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        rdb,
				ConsumerGroup: consumerGroupPrefix + handlerName,
			}, logger)
		},
	}, nil
}

// NewGoChannelTransport keeps events in process. Events published while
// nothing is subscribed are lost.
func NewGoChannelTransport(logger watermill.LoggerAdapter) Transport {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return Transport{
		Publisher: pubSub,
		newSubscriber: func(string) (message.Subscriber, error) {
			return pubSub, nil
		},
	}
}
