package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got DomainEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != EventTypeOrderConfirmed || got.OrderID != "order-1" {
			return errors.New("unexpected event body")
		}
		return nil
	})

	publisher := NewKafkaPublisherWithProducer(producer, "test-topic")
	event := NewDomainEvent(EventTypeOrderConfirmed, "event-1", time.Now()).
		WithOrder("order-1").
		WithSeats([]string{"A-1", "A-2"})

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherSurfacesSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker down"))

	publisher := NewKafkaPublisherWithProducer(producer, "test-topic")
	err := publisher.Publish(context.Background(), NewDomainEvent(EventTypeHoldsExpired, "", time.Now()))

	assert.ErrorContains(t, err, "broker down")
	require.NoError(t, publisher.Close())
}

func TestPartitionKey(t *testing.T) {
	event := NewDomainEvent(EventTypeOrderCancelled, "", time.Now()).WithOrder("order-9")
	assert.Equal(t, "order-9", event.PartitionKey())

	event.EventID = "event-3"
	assert.Equal(t, "event-3", event.PartitionKey())
}

func TestRecorderFiltersByType(t *testing.T) {
	rec := NewRecorder()
	ctx := context.Background()
	require.NoError(t, rec.Publish(ctx, NewDomainEvent(EventTypeSeatsHeld, "e", time.Now())))
	require.NoError(t, rec.Publish(ctx, NewDomainEvent(EventTypeSeatsReleased, "e", time.Now())))
	require.NoError(t, rec.Publish(ctx, NewDomainEvent(EventTypeSeatsHeld, "e", time.Now())))

	assert.Len(t, rec.Events(EventTypeSeatsHeld), 2)
	assert.Len(t, rec.Events(EventTypeOrderConfirmed), 0)
}
