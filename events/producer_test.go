package events

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	calls    int
	err      error
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.calls++
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func TestEmitDuplicateWarningWireFormat(t *testing.T) {
	pub := &fakePublisher{}
	event := DuplicateArticleWarningEvent{
		NewArticleID:      12,
		ExistingArticleID: 3,
		TenantID:          7,
		Reason:            ReasonTitleMatch,
		Timestamp:         "2025-06-01T12:00:00Z",
	}

	require.NoError(t, EmitDuplicateWarning(context.Background(), pub, event))

	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, "", pub.exchange)
	assert.Equal(t, QueueDuplicateWarning, pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.NotEmpty(t, pub.msg.MessageId)
	assert.JSONEq(t,
		`{"newArticleId":12,"existingArticleId":3,"tenantId":7,"reason":"title_match","timestamp":"2025-06-01T12:00:00Z"}`,
		string(pub.msg.Body))
}

func TestEmitDuplicateWarningPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}

	err := EmitDuplicateWarning(context.Background(), pub, DuplicateArticleWarningEvent{})

	assert.EqualError(t, err, "broker gone")
}

func TestWithBackoffSucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := withBackoff(3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithBackoffExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := withBackoff(3, time.Millisecond, func() error {
		attempts++
		return errors.New("still down")
	})

	assert.EqualError(t, err, "still down")
	assert.Equal(t, 3, attempts)
}

func TestWithBackoffStopsOnFirstSuccess(t *testing.T) {
	attempts := 0
	err := withBackoff(5, time.Millisecond, func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
