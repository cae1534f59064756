//go:build unit

package kafka_test

import (
	"context"
	"errors"
	"testing"

	"reservation-engine/internal/infra/broker/kafka"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	sync := mocks.NewSyncProducer(t, kafka.NewConfig("test"))
	sync.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "booking.audit" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "entity-1" {
			return errors.New("unexpected key " + string(key))
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "event" {
			return errors.New("missing event header")
		}
		return nil
	})
	sync.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := kafka.NewProducerWith(sync)
	require.NoError(t, p.Publish(context.Background(), "booking.audit", "entity-1", []byte(`{}`), map[string]string{"event": "booking.create"}))

	err := p.Publish(context.Background(), "booking.audit", "entity-2", []byte(`{}`), nil)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, p.Close())
}

func TestProducer_PublishCancelled(t *testing.T) {
	sync := mocks.NewSyncProducer(t, kafka.NewConfig("test"))
	p := kafka.NewProducerWith(sync)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "booking.audit", "k", nil, nil), context.Canceled)
	require.NoError(t, p.Close())
}

func TestNewConfig(t *testing.T) {
	cfg := kafka.NewConfig("reservation-engine")
	assert.Equal(t, "reservation-engine", cfg.ClientID)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Idempotent)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	require.NoError(t, cfg.Validate())
}
