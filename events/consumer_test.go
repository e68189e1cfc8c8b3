package events

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"knowledgebase/models"
)

type fakeAcknowledger struct {
	acks  int
	nacks []bool // recorded requeue flags
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacks = append(f.nacks, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func newTestConsumer(persist func(*models.DuplicateRecord) error) *DuplicateConsumer {
	return &DuplicateConsumer{Persist: persist, Logger: zap.NewNop().Sugar()}
}

func delivery(ack *fakeAcknowledger, body []byte, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func TestHandleAcksAfterPersist(t *testing.T) {
	var saved *models.DuplicateRecord
	consumer := newTestConsumer(func(rec *models.DuplicateRecord) error {
		saved = rec
		return nil
	})

	ack := &fakeAcknowledger{}
	body := []byte(`{"newArticleId":5,"existingArticleId":2,"tenantId":1,"reason":"alias_match","timestamp":"2025-06-01T12:00:00Z"}`)
	consumer.Handle(delivery(ack, body, false))

	require.NotNil(t, saved)
	assert.Equal(t, uint(5), saved.NewArticleID)
	assert.Equal(t, uint(2), saved.ExistingArticleID)
	assert.Equal(t, uint(1), saved.TenantID)
	assert.Equal(t, "alias_match", saved.Reason)
	assert.Equal(t, "2025-06-01T12:00:00Z", saved.Timestamp)
	assert.Equal(t, 1, ack.acks)
	assert.Empty(t, ack.nacks)
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	persisted := false
	consumer := newTestConsumer(func(*models.DuplicateRecord) error {
		persisted = true
		return nil
	})

	ack := &fakeAcknowledger{}
	consumer.Handle(delivery(ack, []byte("not json"), false))

	assert.False(t, persisted)
	assert.Zero(t, ack.acks)
	require.Len(t, ack.nacks, 1)
	assert.False(t, ack.nacks[0], "poison messages must not be requeued")
}

func TestHandleRequeuesFirstPersistFailure(t *testing.T) {
	consumer := newTestConsumer(func(*models.DuplicateRecord) error {
		return errors.New("db down")
	})

	ack := &fakeAcknowledger{}
	body := []byte(`{"newArticleId":1,"existingArticleId":2,"tenantId":3,"reason":"title_match","timestamp":"2025-06-01T12:00:00Z"}`)
	consumer.Handle(delivery(ack, body, false))

	assert.Zero(t, ack.acks)
	require.Len(t, ack.nacks, 1)
	assert.True(t, ack.nacks[0], "first failure should requeue")
}

func TestHandleDropsRedeliveredPersistFailure(t *testing.T) {
	consumer := newTestConsumer(func(*models.DuplicateRecord) error {
		return errors.New("db still down")
	})

	ack := &fakeAcknowledger{}
	body := []byte(`{"newArticleId":1,"existingArticleId":2,"tenantId":3,"reason":"title_match","timestamp":"2025-06-01T12:00:00Z"}`)
	consumer.Handle(delivery(ack, body, true))

	assert.Zero(t, ack.acks)
	require.Len(t, ack.nacks, 1)
	assert.False(t, ack.nacks[0], "second failure should not requeue again")
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	// 经过完整的序列化/反序列化后落库字段逐一相等
	pub := &fakePublisher{}
	event := DuplicateArticleWarningEvent{
		NewArticleID:      42,
		ExistingArticleID: 17,
		TenantID:          9,
		Reason:            ReasonTitleMatch,
		Timestamp:         "2025-06-01T12:00:00+00:00",
	}
	require.NoError(t, EmitDuplicateWarning(context.Background(), pub, event))

	var saved *models.DuplicateRecord
	consumer := newTestConsumer(func(rec *models.DuplicateRecord) error {
		saved = rec
		return nil
	})

	ack := &fakeAcknowledger{}
	consumer.Handle(delivery(ack, pub.msg.Body, false))

	require.NotNil(t, saved)
	assert.Equal(t, event.NewArticleID, saved.NewArticleID)
	assert.Equal(t, event.ExistingArticleID, saved.ExistingArticleID)
	assert.Equal(t, event.TenantID, saved.TenantID)
	assert.Equal(t, event.Reason, saved.Reason)
	assert.Equal(t, event.Timestamp, saved.Timestamp)
	assert.Equal(t, 1, ack.acks)
}
