package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_DeliversSnapshots(t *testing.T) {
	feed := NewFeed()
	ch, unsubscribe := feed.Subscribe(1)
	defer unsubscribe()

	snapshot := []*Booking{newTestBooking(t, testNow.AddDate(0, 0, 7))}
	feed.Publish(snapshot)

	select {
	case got := <-ch:
		require.Len(t, got, 1)
		assert.Equal(t, snapshot[0].ID(), got[0].ID())
	case <-time.After(time.Second):
		t.Fatal("snapshot not delivered")
	}
}

func TestFeed_UnsubscribeClosesChannel(t *testing.T) {
	feed := NewFeed()
	ch, unsubscribe := feed.Subscribe(1)

	assert.Equal(t, 1, feed.SubscriberCount())
	unsubscribe()
	assert.Equal(t, 0, feed.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestFeed_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	feed := NewFeed()
	_, unsubscribe := feed.Subscribe(1)
	defer unsubscribe()

	snapshot := []*Booking{newTestBooking(t, testNow.AddDate(0, 0, 7))}

	done := make(chan struct{})
	go func() {
		// Buffer holds one snapshot; further publishes must drop, not block.
		feed.Publish(snapshot)
		feed.Publish(snapshot)
		feed.Publish(snapshot)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestFeed_MultipleSubscribers(t *testing.T) {
	feed := NewFeed()
	ch1, unsub1 := feed.Subscribe(1)
	ch2, unsub2 := feed.Subscribe(1)
	defer unsub1()
	defer unsub2()

	feed.Publish(nil)

	for _, ch := range []<-chan []*Booking{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the snapshot")
		}
	}
}
