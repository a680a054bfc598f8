package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type testLogger struct {
	lines []string
}

func (l *testLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *testLogger) Warn(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "parking.notifications", time.Second, &testLogger{})

	msg := Message{
		NotificationID: 9,
		UserID:         4,
		Type:           "PAYMENT_REMINDER",
		Description:    "please pay",
		CreatedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "parking.notifications", ch.sent[0].exchange)
	assert.Equal(t, "notification.payment_reminder", ch.sent[0].key)
	assert.Equal(t, "application/json", ch.sent[0].msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.sent[0].msg.DeliveryMode)

	var decoded Message
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &decoded))
	assert.Equal(t, msg.NotificationID, decoded.NotificationID)
	assert.Equal(t, msg.Description, decoded.Description)
	assert.True(t, msg.CreatedAt.Equal(decoded.CreatedAt))
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(ch, "parking.notifications", 0, &testLogger{})

	err := p.Publish(context.Background(), Message{UserID: 1, Type: "GENERAL"})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "x", 0, &testLogger{})

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestLogSender(t *testing.T) {
	log := &testLogger{}
	s := NewLogSender(log)

	require.NoError(t, s.Publish(context.Background(), Message{UserID: 2, Type: "GENERAL", Description: "hello"}))
	assert.Equal(t, []string{"Publish: notification.general user=2: hello"}, log.lines)
}
