package conversationcontext

import (
	"context"
	"remindchat/internal/core/domain/conversation"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"sync"
	"time"
)

// Memory is a process-local store used when Redis is not configured.
type Memory struct {
	snapshots map[user.ID]conversation.Snapshot
	ttl       time.Duration
	now       func() time.Time
	lock      sync.Mutex
}

func NewMemory(ttl time.Duration, now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if ttl <= 0 {
		ttl = DEFAULT_TTL
	}
	return &Memory{snapshots: make(map[user.ID]conversation.Snapshot), ttl: ttl, now: now}
}

func (m *Memory) RecordList(ctx context.Context, userID user.ID, ids []reminder.ID) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.evictExpired()
	m.snapshots[userID] = conversation.Snapshot{
		ReminderIDs: append([]reminder.ID{}, ids...),
		CapturedAt:  m.now(),
	}
	return nil
}

func (m *Memory) ResolveIndex(ctx context.Context, userID user.ID, oneBasedIndex int) (reminder.ID, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	snapshot, ok := m.snapshots[userID]
	if !ok || m.isExpired(snapshot) {
		delete(m.snapshots, userID)
		return 0, conversation.ErrNoSuchIndex
	}
	return snapshot.At(oneBasedIndex)
}

func (m *Memory) isExpired(snapshot conversation.Snapshot) bool {
	return !m.now().Before(snapshot.CapturedAt.Add(m.ttl))
}

// evictExpired must be called with the lock held.
func (m *Memory) evictExpired() {
	for userID, snapshot := range m.snapshots {
		if m.isExpired(snapshot) {
			delete(m.snapshots, userID)
		}
	}
}
