package booking

import "sync"

// Feed broadcasts full collection snapshots to registered subscribers. Every
// committed change ships the entire collection rather than a diff, so each
// derivation (availability index, admin list) recomputes from scratch.
type Feed struct {
	mu   sync.Mutex
	subs map[int]chan []*Booking
	next int
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]chan []*Booking)}
}

// Subscribe registers a subscriber and returns its snapshot channel plus an
// unsubscribe function. Subscribers must unsubscribe on teardown or they keep
// receiving snapshots they no longer want.
func (f *Feed) Subscribe(buffer int) (<-chan []*Booking, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan []*Booking, buffer)
	f.subs[id] = ch

	unsubscribe := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the snapshot to every subscriber. Slow subscribers with a
// full buffer miss the snapshot rather than blocking the publisher; the next
// snapshot carries the full state anyway.
func (f *Feed) Publish(snapshot []*Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
