package relay

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type fakeSubscriber struct {
	id     string
	full   bool
	mu     sync.Mutex
	frames [][]byte
}

func (f *fakeSubscriber) ID() string {
	return f.id
}

func (f *fakeSubscriber) Send(frame []byte) bool {
	if f.full {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
	return true
}

func (f *fakeSubscriber) Frames() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.frames...)
}

func TestHub_PublishReachesOnlyChannelSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	a := &fakeSubscriber{id: "a"}
	b := &fakeSubscriber{id: "b"}
	c := &fakeSubscriber{id: "c"}
	for _, sub := range []*fakeSubscriber{a, b} {
		if err := hub.Subscribe("match:4", sub); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}
	if err := hub.Subscribe("live", c); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	delivered, err := hub.Publish(Message{Channel: "match:4", Event: "match.event", Data: json.RawMessage(`{"minute":23}`)})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if delivered != 2 {
		t.Fatalf("expected 2 deliveries, got %d", delivered)
	}
	if len(c.Frames()) != 0 {
		t.Fatalf("subscriber of another channel received %d frames", len(c.Frames()))
	}

	want := `{"channel":"match:4","event":"match.event","data":{"minute":23}}`
	if got := string(a.Frames()[0]); got != want {
		t.Fatalf("unexpected frame %s", got)
	}
}

func TestHub_UnsubscribeAndUnsubscribeAll(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	sub := &fakeSubscriber{id: "a"}
	_ = hub.Subscribe("live", sub)
	_ = hub.Subscribe("articles", sub)
	_ = hub.Subscribe("match:1", sub)

	hub.Unsubscribe("live", sub)
	if n, _ := hub.Publish(Message{Channel: "live", Event: "match.updated"}); n != 0 {
		t.Fatalf("expected no delivery after unsubscribe, got %d", n)
	}
	if stats := hub.Stats(); stats.Channels != 2 || stats.Subscribers != 1 {
		t.Fatalf("unexpected stats after unsubscribe: %+v", stats)
	}

	hub.UnsubscribeAll(sub)
	if stats := hub.Stats(); stats.Channels != 0 || stats.Subscribers != 0 {
		t.Fatalf("unexpected stats after unsubscribe all: %+v", stats)
	}
}

func TestHub_SlowSubscriberIsDropped(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	fast := &fakeSubscriber{id: "fast"}
	slow := &fakeSubscriber{id: "slow", full: true}
	_ = hub.Subscribe("live", fast)
	_ = hub.Subscribe("live", slow)
	_ = hub.Subscribe("articles", slow)

	delivered, err := hub.Publish(Message{Channel: "live", Event: "match.updated"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if delivered != 1 {
		t.Fatalf("expected 1 delivery, got %d", delivered)
	}

	stats := hub.Stats()
	if stats.Dropped != 1 || stats.Subscribers != 1 || stats.Channels != 1 {
		t.Fatalf("slow subscriber was not removed everywhere: %+v", stats)
	}
}

func TestHub_RejectsInvalidMessages(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil)
	tests := []Message{
		{Channel: "", Event: "x"},
		{Channel: "Match 4", Event: "x"},
		{Channel: "live", Event: " "},
		{Channel: "live", Event: "x", Data: json.RawMessage(`{broken`)},
	}
	for _, msg := range tests {
		if _, err := hub.Publish(msg); err == nil {
			t.Fatalf("expected error for %+v", msg)
		}
	}
	if err := hub.Subscribe("bad channel!", &fakeSubscriber{id: "a"}); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("expected ErrInvalidChannel, got %v", err)
	}
}

func TestEncodeFrameDefaultsDataToNull(t *testing.T) {
	t.Parallel()

	frame, err := EncodeFrame(Message{Channel: "live", Event: "ping"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := string(frame); got != `{"channel":"live","event":"ping","data":null}` {
		t.Fatalf("unexpected frame %s", got)
	}
}
