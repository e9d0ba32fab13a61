package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisherPublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newRabbitPublisher(ch, "listings.events")
	require.NoError(t, err)
	assert.Equal(t, []string{"listings.events:topic"}, ch.declared)

	event := NewEvent(PropertyCreated, map[string]int64{"id": 13})
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{"listings.events/property.created"}, ch.keys)
	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, event.ID, msg.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, PropertyCreated, decoded.Type)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisherWrapsErrors(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newRabbitPublisher(ch, "listings.events")
	require.NoError(t, err)

	err = p.Publish(context.Background(), NewEvent(ContactCreated, nil))
	assert.ErrorContains(t, err, "contact.created")

	_, err = newRabbitPublisher(&fakeChannel{}, "")
	assert.Error(t, err)
}

func TestNewEventAssignsIdentity(t *testing.T) {
	a := NewEvent(PropertyDeleted, nil)
	b := NewEvent(PropertyDeleted, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), a))
}
