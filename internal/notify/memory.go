package notify

import (
	"context"
	"sync"

	"energycoach/internal/model"
)

// Published is one captured notification.
type Published struct {
	Subject string
	Message model.Notification
}

// Memory captures published notifications for tests.
type Memory struct {
	mu        sync.RWMutex
	published []Published
}

func NewMemory() *Memory {
	return &Memory{}
}

func (n *Memory) Publish(ctx context.Context, subject string, msg model.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, Published{Subject: subject, Message: msg})
	return nil
}

func (n *Memory) Close() error { return nil }

func (n *Memory) Published() []Published {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Published, len(n.published))
	copy(out, n.published)
	return out
}
