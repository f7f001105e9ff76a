package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DeliversInPublishOrder(t *testing.T) {
	d := NewDispatcher(16)

	var mu sync.Mutex
	var got []string
	var wg sync.WaitGroup
	wg.Add(3)
	d.Subscribe(func(ctx context.Context, event Event) {
		mu.Lock()
		got = append(got, event.Name())
		mu.Unlock()
		wg.Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(ctx, PayoutRequested{PayoutID: 1, UserID: 1, Amount: 10000})
	d.Publish(ctx, PayoutCompleted{PayoutID: 1, UserID: 1})
	d.Publish(ctx, ContributionReceived{ContributionID: 5, ListID: 2, Amount: 25000})

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"payout_requested", "payout_completed", "contribution_received"}, got)
}

func TestDispatcher_FanOut(t *testing.T) {
	d := NewDispatcher(16)

	var mu sync.Mutex
	counts := make(map[int]int)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		i := i
		d.Subscribe(func(ctx context.Context, event Event) {
			mu.Lock()
			counts[i]++
			mu.Unlock()
			wg.Done()
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(ctx, PayoutCancelled{PayoutID: 3, UserID: 1})

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 1, counts[1])
}

func TestDispatcher_PublishNeverBlocksWhenFull(t *testing.T) {
	d := NewDispatcher(1)

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Publish(ctx, PayoutRequested{PayoutID: 1})
		d.Publish(ctx, PayoutRequested{PayoutID: 2})
		d.Publish(ctx, PayoutRequested{PayoutID: 3})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}

func TestDispatcher_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	d := NewDispatcher(16)

	var mu sync.Mutex
	var delivered int
	var wg sync.WaitGroup
	wg.Add(2)
	d.Subscribe(func(ctx context.Context, event Event) {
		defer wg.Done()
		panic("handler bug")
	})
	d.Subscribe(func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(ctx, PayoutFailed{PayoutID: 4, UserID: 1, Reason: "rejected"})

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, delivered)
}

func TestDispatcher_DrainDeliversQueued(t *testing.T) {
	d := NewDispatcher(16)

	var mu sync.Mutex
	var got []string
	d.Subscribe(func(ctx context.Context, event Event) {
		mu.Lock()
		got = append(got, event.Name())
		mu.Unlock()
	})

	ctx := context.Background()
	d.Publish(ctx, PayoutRequested{PayoutID: 1})
	d.Publish(ctx, PayoutCompleted{PayoutID: 1})

	d.Drain(ctx)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"payout_requested", "payout_completed"}, got)

	// a second Drain is a no-op
	d.Drain(ctx)
}

func TestDispatcher_StartStopsOnContextCancel(t *testing.T) {
	d := NewDispatcher(16)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}
