package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered, UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "user-1", got[0].UserID)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var secondRan bool
	d.Subscribe(EventUserSignedOut, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserSignedOut, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserSignedOut}))
	assert.True(t, secondRan)
}

func TestDispatcher_UnsubscribedTypeIsNoop(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserDeleted}))
}
