package eventbus

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	got := make(chan int, 1)
	b.Subscribe(EventFavoriteAdded, func(e DomainEvent) {
		if ev, ok := e.(FavoriteAddedEvent); ok {
			got <- ev.ArtworkID
		}
	})

	b.Publish(FavoriteAddedEvent{ArtworkID: 27992})

	select {
	case id := <-got:
		assert.Equal(t, 27992, id)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	removed := make(chan struct{}, 1)
	added := make(chan struct{}, 1)

	unsubscribe := b.Subscribe(EventFavoriteAdded, func(DomainEvent) { added <- struct{}{} })
	b.Subscribe(EventFavoriteRemoved, func(DomainEvent) { removed <- struct{}{} })
	unsubscribe()

	b.Publish(FavoriteAddedEvent{ArtworkID: 1})
	b.Publish(FavoriteRemovedEvent{ArtworkID: 1})

	select {
	case <-removed:
	case <-time.After(2 * time.Second):
		t.Fatal("removed event was not delivered")
	}

	// events are dispatched in order, so the added event was already handled
	assert.Len(t, added, 0)
}

func TestHandlerPanicDoesNotStopDispatcher(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New(zerolog.Nop())
	b.Close()
	require.NotPanics(t, b.Close)
}
