package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	kind       string
	declareErr error
	publishErr error
	published  []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name)
	f.kind = kind
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisher_DeclaresTopicExchange(t *testing.T) {
	ch := &fakeChannel{}

	_, err := NewPublisher(ch, "zerobudget.events")

	require.NoError(t, err)
	assert.Equal(t, []string{"zerobudget.events"}, ch.declared)
	assert.Equal(t, "topic", ch.kind)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	_, err := NewPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "declare exchange")
}

func TestPublisher_RoutesByEventType(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "zerobudget.events")
	require.NoError(t, err)

	march := domain.MustParseMonthKey("2024-03")
	p.Publish(websocket.TransactionCreated(march, map[string]string{"id": "t1"}))
	p.Publish(websocket.BudgetReset())

	require.Len(t, ch.published, 2)
	assert.Equal(t, "zerobudget.events", ch.published[0].exchange)
	assert.Equal(t, "transaction.created", ch.published[0].key)
	assert.Equal(t, "budget.reset", ch.published[1].key)
	assert.Equal(t, "application/json", ch.published[0].msg.ContentType)
	assert.Equal(t, amqp091.Persistent, ch.published[0].msg.DeliveryMode)

	var body struct {
		Type  string `json:"type"`
		Month string `json:"month"`
	}
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &body))
	assert.Equal(t, "transaction.created", body.Type)
	assert.Equal(t, "2024-03", body.Month)
}

func TestPublisher_PublishErrorIsSwallowed(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "zerobudget.events")
	require.NoError(t, err)
	ch.publishErr = errors.New("channel closed")

	assert.NotPanics(t, func() { p.Publish(websocket.CategoryCreated(nil)) })
	assert.Empty(t, ch.published)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "x")
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
