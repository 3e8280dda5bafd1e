package conversation

import (
	"context"
	"fmt"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"sync"
	"time"
)

type FakeContextStore struct {
	Snapshots   map[user.ID]Snapshot
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeContextStore() *FakeContextStore {
	return &FakeContextStore{Snapshots: make(map[user.ID]Snapshot)}
}

func (s *FakeContextStore) RecordList(ctx context.Context, userID user.ID, ids []reminder.ID) error {
	if s.ReturnError {
		return fmt.Errorf("could not record list")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Snapshots[userID] = Snapshot{ReminderIDs: append([]reminder.ID(nil), ids...), CapturedAt: time.Now()}
	return nil
}

func (s *FakeContextStore) ResolveIndex(ctx context.Context, userID user.ID, oneBasedIndex int) (reminder.ID, error) {
	if s.ReturnError {
		return 0, fmt.Errorf("could not resolve index")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	snapshot, ok := s.Snapshots[userID]
	if !ok {
		return 0, ErrNoSuchIndex
	}
	return snapshot.At(oneBasedIndex)
}
