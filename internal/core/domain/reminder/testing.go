package reminder

import (
	"context"
	"fmt"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/user"
	"sort"
	"strings"
	"sync"
)

// FakeStore keeps reminders and recipients in memory. Reminders() and
// Recipients() expose it through the repository ports.
type FakeStore struct {
	Users       user.UserRepository
	ReturnError error

	reminders  map[ID]Reminder
	recipients []Recipient
	nextID     ID
	lock       sync.Mutex

	CreateCalls int
	LockCalls   int
	DeleteCalls int
}

func NewFakeStore(users user.UserRepository) *FakeStore {
	return &FakeStore{Users: users, reminders: make(map[ID]Reminder)}
}

func (s *FakeStore) Reminders() ReminderRepository {
	return &fakeReminderRepository{store: s}
}

func (s *FakeStore) Recipients() RecipientRepository {
	return &fakeRecipientRepository{store: s}
}

func (s *FakeStore) Put(r Reminder, recipientIDs ...user.ID) Reminder {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nextID++
	if r.ID == 0 {
		r.ID = s.nextID
	}
	if r.Status == StatusUnknown {
		r.Status = StatusScheduled
	}
	r.IsRecurring = r.Cadence.IsRecurring()
	s.reminders[r.ID] = r
	s.addRecipients(r.ID, recipientIDs)
	return r
}

func (s *FakeStore) Get(id ID) (ReminderWithRecipients, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return ReminderWithRecipients{}, false
	}
	return s.withRecipients(r), true
}

func (s *FakeStore) All() []ReminderWithRecipients {
	s.lock.Lock()
	defer s.lock.Unlock()
	result := make([]ReminderWithRecipients, 0, len(s.reminders))
	for _, r := range s.reminders {
		result = append(result, s.withRecipients(r))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Reminder.ID < result[j].Reminder.ID })
	return result
}

func (s *FakeStore) RecipientRows() []Recipient {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Recipient(nil), s.recipients...)
}

func (s *FakeStore) addRecipients(reminderID ID, recipientIDs []user.ID) []Recipient {
	created := make([]Recipient, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		recipient := Recipient{
			ID:          int64(len(s.recipients) + 1),
			ReminderID:  reminderID,
			RecipientID: recipientID,
			Status:      RecipientStatusScheduled,
		}
		if s.Users != nil {
			if u, err := s.Users.GetByID(context.Background(), recipientID); err == nil {
				recipient.Username = u.Username
				recipient.Phone = u.Phone
			}
		}
		s.recipients = append(s.recipients, recipient)
		created = append(created, recipient)
	}
	return created
}

func (s *FakeStore) withRecipients(r Reminder) ReminderWithRecipients {
	result := ReminderWithRecipients{Reminder: r}
	for _, recipient := range s.recipients {
		if recipient.ReminderID == r.ID {
			result.Recipients = append(result.Recipients, recipient)
		}
	}
	return result
}

func (s *FakeStore) matches(r Reminder, options ReadOptions) bool {
	if options.OwnerIDEquals.IsPresent && r.OwnerID != options.OwnerIDEquals.Value {
		return false
	}
	if options.StatusNotEquals.IsPresent && r.Status == options.StatusNotEquals.Value {
		return false
	}
	if options.StatusIn.IsPresent {
		found := false
		for _, status := range options.StatusIn.Value {
			if r.Status == status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if options.TitleContains.IsPresent &&
		!strings.Contains(strings.ToLower(r.Title), strings.ToLower(options.TitleContains.Value)) {
		return false
	}
	return true
}

type fakeReminderRepository struct {
	store *FakeStore
}

func (r *fakeReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.store.ReturnError != nil {
		return rem, r.store.ReturnError
	}
	r.store.lock.Lock()
	r.store.CreateCalls++
	r.store.lock.Unlock()
	return r.store.Put(Reminder{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		DueAt:       input.DueAt,
		Status:      input.Status,
		Cadence:     input.Cadence,
		TimeOfDay:   input.TimeOfDay,
		EndDate:     input.EndDate,
		ScheduledAt: input.ScheduledAt,
		CreatedAt:   input.CreatedAt,
	}), nil
}

func (r *fakeReminderRepository) Lock(ctx context.Context, id ID) error {
	if r.store.ReturnError != nil {
		return r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	r.store.LockCalls++
	if _, ok := r.store.reminders[id]; !ok {
		return ErrReminderDoesNotExist
	}
	return nil
}

func (r *fakeReminderRepository) GetByID(ctx context.Context, id ID) (ReminderWithRecipients, error) {
	if r.store.ReturnError != nil {
		return ReminderWithRecipients{}, r.store.ReturnError
	}
	rem, ok := r.store.Get(id)
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	return rem, nil
}

func (r *fakeReminderRepository) Read(ctx context.Context, options ReadOptions) ([]ReminderWithRecipients, error) {
	if r.store.ReturnError != nil {
		return nil, r.store.ReturnError
	}
	all := r.store.All()
	result := make([]ReminderWithRecipients, 0, len(all))
	for _, rem := range all {
		if r.store.matches(rem.Reminder, options) {
			result = append(result, rem)
		}
	}
	switch options.OrderBy {
	case OrderByDueAtAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Reminder.DueAt.Value.Before(result[j].Reminder.DueAt.Value)
		})
	case OrderByDueAtDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Reminder.DueAt.Value.After(result[j].Reminder.DueAt.Value)
		})
	case OrderByCreatedAtDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Reminder.CreatedAt.After(result[j].Reminder.CreatedAt)
		})
	}
	if options.Offset >= uint(len(result)) {
		return []ReminderWithRecipients{}, nil
	}
	result = result[options.Offset:]
	if options.Limit.IsPresent && options.Limit.Value < uint(len(result)) {
		result = result[:options.Limit.Value]
	}
	return result, nil
}

func (r *fakeReminderRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	options.Limit = c.Optional[uint]{}
	options.Offset = 0
	result, err := r.Read(ctx, options)
	return uint(len(result)), err
}

func (r *fakeReminderRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.store.ReturnError != nil {
		return rem, r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	rem, ok := r.store.reminders[input.ID]
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	if input.DoDueAtUpdate {
		rem.DueAt = input.DueAt
	}
	if input.DoStatusUpdate {
		rem.Status = input.Status
	}
	if input.DoScheduledAtUpdate {
		rem.ScheduledAt = input.ScheduledAt
	}
	if input.DoCompletedAtUpdate {
		rem.CompletedAt = input.CompletedAt
	}
	if input.DoCancelledAtUpdate {
		rem.CancelledAt = input.CancelledAt
	}
	r.store.reminders[input.ID] = rem
	return rem, nil
}

func (r *fakeReminderRepository) Schedule(ctx context.Context, input ScheduleInput) ([]Reminder, error) {
	if r.store.ReturnError != nil {
		return nil, r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	scheduled := make([]Reminder, 0)
	for id, rem := range r.store.reminders {
		if rem.Status != StatusScheduled || rem.ScheduledAt.IsPresent || !rem.DueAt.IsPresent {
			continue
		}
		if !rem.DueAt.Value.Before(input.DueBefore) {
			continue
		}
		rem.ScheduledAt = c.NewOptional(input.ScheduledAt, true)
		r.store.reminders[id] = rem
		scheduled = append(scheduled, rem)
	}
	sort.Slice(scheduled, func(i, j int) bool { return scheduled[i].ID < scheduled[j].ID })
	return scheduled, nil
}

func (r *fakeReminderRepository) Delete(ctx context.Context, id ID) error {
	if r.store.ReturnError != nil {
		return r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	if _, ok := r.store.reminders[id]; !ok {
		return ErrReminderDoesNotExist
	}
	r.store.DeleteCalls++
	delete(r.store.reminders, id)
	kept := r.store.recipients[:0]
	for _, recipient := range r.store.recipients {
		if recipient.ReminderID != id {
			kept = append(kept, recipient)
		}
	}
	r.store.recipients = kept
	return nil
}

type fakeRecipientRepository struct {
	store *FakeStore
}

func (r *fakeRecipientRepository) Create(ctx context.Context, input CreateRecipientsInput) ([]Recipient, error) {
	if r.store.ReturnError != nil {
		return nil, r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	return r.store.addRecipients(input.ReminderID, input.RecipientIDs), nil
}

func (r *fakeRecipientRepository) UpdateStatusByReminderID(
	ctx context.Context,
	reminderID ID,
	status RecipientStatus,
) error {
	if r.store.ReturnError != nil {
		return r.store.ReturnError
	}
	r.store.lock.Lock()
	defer r.store.lock.Unlock()
	for ix, recipient := range r.store.recipients {
		if recipient.ReminderID == reminderID {
			r.store.recipients[ix].Status = status
		}
	}
	return nil
}

type FakeScheduler struct {
	Registered []FireRequest
	Cancelled  []ID
	Error      error
	lock       sync.Mutex
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) RegisterFire(ctx context.Context, request FireRequest) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Registered = append(s.Registered, request)
	return nil
}

func (s *FakeScheduler) Cancel(ctx context.Context, id ID) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Cancelled = append(s.Cancelled, id)
	return nil
}

type FakeTombstones struct {
	Marked map[ID]bool
	Error  error
	lock   sync.Mutex
}

func NewFakeTombstones() *FakeTombstones {
	return &FakeTombstones{Marked: make(map[ID]bool)}
}

func (t *FakeTombstones) Mark(ctx context.Context, id ID) error {
	if t.Error != nil {
		return t.Error
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.Marked[id] = true
	return nil
}

func (t *FakeTombstones) IsMarked(ctx context.Context, id ID) (bool, error) {
	if t.Error != nil {
		return false, t.Error
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.Marked[id], nil
}

type FakeEventPublisher struct {
	Published []FiredEvent
	Error     error
	lock      sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) PublishFired(ctx context.Context, event FiredEvent) error {
	if p.Error != nil {
		return fmt.Errorf("could not publish event: %w", p.Error)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}
