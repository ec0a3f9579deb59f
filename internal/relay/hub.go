package relay

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"github.com/valyala/bytebufferpool"
)

const maxChannelLength = 100

var ErrInvalidChannel = crerr.New("invalid channel")

// Message is one event pushed to a channel. Data is forwarded as-is.
type Message struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Subscriber receives encoded frames. Send must not block; it reports
// false when the frame could not be queued.
type Subscriber interface {
	ID() string
	Send(frame []byte) bool
}

type Stats struct {
	Channels    int    `json:"channels"`
	Subscribers int    `json:"subscribers"`
	Published   uint64 `json:"published"`
	Dropped     uint64 `json:"dropped"`
}

// Hub keeps per-channel subscriber sets and fans published messages out to
// them. Subscribers that cannot keep up are removed from every channel.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[string]Subscriber
	joined   map[string]map[string]struct{}

	published atomic.Uint64
	dropped   atomic.Uint64
	logger    *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		channels: make(map[string]map[string]Subscriber),
		joined:   make(map[string]map[string]struct{}),
		logger:   logger,
	}
}

// ValidChannel accepts names such as "live", "articles" or "match:42".
func ValidChannel(channel string) error {
	if channel == "" || len(channel) > maxChannelLength {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	for _, r := range channel {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune(":._-", r):
		default:
			return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
		}
	}
	return nil
}

func (h *Hub) Subscribe(channel string, sub Subscriber) error {
	if err := ValidChannel(channel); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[string]Subscriber)
		h.channels[channel] = subs
	}
	subs[sub.ID()] = sub

	joined, ok := h.joined[sub.ID()]
	if !ok {
		joined = make(map[string]struct{})
		h.joined[sub.ID()] = joined
	}
	joined[channel] = struct{}{}
	return nil
}

func (h *Hub) Unsubscribe(channel string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(channel, sub.ID())
}

// UnsubscribeAll removes sub from every channel, typically on disconnect.
func (h *Hub) UnsubscribeAll(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveAll(sub.ID())
}

func (h *Hub) leave(channel, id string) {
	if subs, ok := h.channels[channel]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
	if joined, ok := h.joined[id]; ok {
		delete(joined, channel)
		if len(joined) == 0 {
			delete(h.joined, id)
		}
	}
}

func (h *Hub) leaveAll(id string) {
	for channel := range h.joined[id] {
		if subs, ok := h.channels[channel]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
	}
	delete(h.joined, id)
}

// Publish delivers msg to the channel's current subscribers and returns how
// many accepted the frame.
func (h *Hub) Publish(msg Message) (int, error) {
	if err := ValidChannel(msg.Channel); err != nil {
		return 0, err
	}
	if strings.TrimSpace(msg.Event) == "" {
		return 0, crerr.New("event is required")
	}

	frame, err := EncodeFrame(msg)
	if err != nil {
		return 0, err
	}

	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.channels[msg.Channel]))
	for _, sub := range h.channels[msg.Channel] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()
	h.published.Add(1)

	if len(targets) == 0 {
		return 0, nil
	}

	var delivered atomic.Int64
	var slow sync.Map
	iter.ForEach(targets, func(sub *Subscriber) {
		if (*sub).Send(frame) {
			delivered.Add(1)
			return
		}
		slow.Store((*sub).ID(), struct{}{})
	})

	slow.Range(func(key, _ any) bool {
		id := key.(string)
		h.mu.Lock()
		h.leaveAll(id)
		h.mu.Unlock()
		h.dropped.Add(1)
		h.logger.Warn("dropped slow subscriber", "subscriber_id", id, "channel", msg.Channel)
		return true
	})

	return int(delivered.Load()), nil
}

func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{
		Channels:    len(h.channels),
		Subscribers: len(h.joined),
		Published:   h.published.Load(),
		Dropped:     h.dropped.Load(),
	}
}

// EncodeFrame renders msg as the JSON text frame sent to subscribers.
func EncodeFrame(msg Message) ([]byte, error) {
	data := msg.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	channel, err := sonic.Marshal(msg.Channel)
	if err != nil {
		return nil, fmt.Errorf("encode channel: %w", err)
	}
	event, err := sonic.Marshal(msg.Event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	if !json.Valid(data) {
		return nil, crerr.New("data is not valid json")
	}

	_, _ = buf.WriteString(`{"channel":`)
	_, _ = buf.Write(channel)
	_, _ = buf.WriteString(`,"event":`)
	_, _ = buf.Write(event)
	_, _ = buf.WriteString(`,"data":`)
	_, _ = buf.Write(data)
	_ = buf.WriteByte('}')

	return append([]byte(nil), buf.B...), nil
}
