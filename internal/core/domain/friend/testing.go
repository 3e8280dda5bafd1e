package friend

import (
	"context"
	"fmt"
	"remindchat/internal/core/domain/user"
	"sync"
)

type FakeFriendRepository struct {
	Friends     []Friend
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeFriendRepository() *FakeFriendRepository {
	return &FakeFriendRepository{}
}

// AddMirrored stores an accepted pair in both directions.
func (r *FakeFriendRepository) AddMirrored(a user.ID, b user.ID) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.insert(CreateInput{UserID: a, FriendID: b, Status: StatusAccepted})
	r.insert(CreateInput{UserID: b, FriendID: a, Status: StatusAccepted})
}

func (r *FakeFriendRepository) insert(input CreateInput) Friend {
	f := Friend{
		ID:        ID(len(r.Friends) + 1),
		UserID:    input.UserID,
		FriendID:  input.FriendID,
		Status:    input.Status,
		CreatedAt: input.CreatedAt,
	}
	for _, existing := range r.Friends {
		if existing.ID >= f.ID {
			f.ID = existing.ID + 1
		}
	}
	r.Friends = append(r.Friends, f)
	return f
}

func (r *FakeFriendRepository) Create(ctx context.Context, input CreateInput) (f Friend, err error) {
	if r.ReturnError {
		return f, fmt.Errorf("could not create friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Friends {
		if existing.UserID == input.UserID && existing.FriendID == input.FriendID {
			return f, ErrFriendRequestExists
		}
	}
	return r.insert(input), nil
}

func (r *FakeFriendRepository) GetByID(ctx context.Context, id ID) (f Friend, err error) {
	if r.ReturnError {
		return f, fmt.Errorf("could not get friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Friends {
		if existing.ID == id {
			return existing, nil
		}
	}
	return f, ErrFriendDoesNotExist
}

func (r *FakeFriendRepository) GetByPair(ctx context.Context, userID user.ID, friendID user.ID) (f Friend, err error) {
	if r.ReturnError {
		return f, fmt.Errorf("could not get friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Friends {
		if existing.UserID == userID && existing.FriendID == friendID {
			return existing, nil
		}
	}
	return f, ErrFriendDoesNotExist
}

func (r *FakeFriendRepository) Upsert(ctx context.Context, input CreateInput) (f Friend, err error) {
	if r.ReturnError {
		return f, fmt.Errorf("could not upsert friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Friends {
		if existing.UserID == input.UserID && existing.FriendID == input.FriendID {
			r.Friends[ix].Status = input.Status
			return r.Friends[ix], nil
		}
	}
	return r.insert(input), nil
}

func (r *FakeFriendRepository) UpdateStatus(ctx context.Context, id ID, status Status) (f Friend, err error) {
	if r.ReturnError {
		return f, fmt.Errorf("could not update friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Friends {
		if existing.ID == id {
			r.Friends[ix].Status = status
			return r.Friends[ix], nil
		}
	}
	return f, ErrFriendDoesNotExist
}

func (r *FakeFriendRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete friend")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Friends {
		if existing.ID == id {
			r.Friends = append(r.Friends[:ix], r.Friends[ix+1:]...)
			return nil
		}
	}
	return ErrFriendDoesNotExist
}

func (r *FakeFriendRepository) DeletePair(ctx context.Context, a user.ID, b user.ID) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete friends")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := make([]Friend, 0, len(r.Friends))
	var deleted int64
	for _, existing := range r.Friends {
		if (existing.UserID == a && existing.FriendID == b) || (existing.UserID == b && existing.FriendID == a) {
			deleted++
			continue
		}
		kept = append(kept, existing)
	}
	r.Friends = kept
	return deleted, nil
}

func (r *FakeFriendRepository) IsAcceptedFriend(ctx context.Context, ownerID user.ID, otherID user.ID) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not check friendship")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	forward, backward := false, false
	for _, existing := range r.Friends {
		if existing.Status != StatusAccepted {
			continue
		}
		if existing.UserID == ownerID && existing.FriendID == otherID {
			forward = true
		}
		if existing.UserID == otherID && existing.FriendID == ownerID {
			backward = true
		}
	}
	return forward && backward, nil
}

func (r *FakeFriendRepository) ListForUser(ctx context.Context, userID user.ID) ([]Friend, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list friends")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Friend, 0)
	for _, existing := range r.Friends {
		if existing.UserID == userID || existing.FriendID == userID {
			result = append(result, existing)
		}
	}
	return result, nil
}

// Accepted returns accepted rows between a and b in both directions.
func (r *FakeFriendRepository) Accepted(a user.ID, b user.ID) []Friend {
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Friend, 0, 2)
	for _, existing := range r.Friends {
		if existing.Status != StatusAccepted {
			continue
		}
		if (existing.UserID == a && existing.FriendID == b) || (existing.UserID == b && existing.FriendID == a) {
			result = append(result, existing)
		}
	}
	return result
}
