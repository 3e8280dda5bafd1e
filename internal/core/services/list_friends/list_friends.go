package listfriends

import (
	"context"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
	"sort"
	"strings"
)

type Input struct {
	UserID     user.ID
	Direction  friend.Direction
	Search     c.Optional[string]
	Descending bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Item struct {
	Friend    friend.Friend
	Direction friend.Direction
	OtherUser user.Profile
}

type Result struct {
	Friends []Item
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	friendRepository friend.FriendRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	friendRepository friend.FriendRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if friendRepository == nil {
		panic(e.NewNilArgumentError("friendRepository"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		friendRepository: friendRepository,
	}
}

// Run lists edges touching the user, ordered by the other user's handle.
// Without a direction filter a mirrored pair shows up once, as outgoing.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	edges, err := s.friendRepository.ListForUser(ctx, input.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	outgoingTo := make(map[user.ID]struct{})
	for _, edge := range edges {
		if edge.UserID == input.UserID {
			outgoingTo[edge.FriendID] = struct{}{}
		}
	}

	selected := make([]friend.Friend, 0, len(edges))
	otherIDs := make([]user.ID, 0, len(edges))
	for _, edge := range edges {
		direction := edge.DirectionFor(input.UserID)
		if input.Direction != friend.DirectionAll && direction != input.Direction {
			continue
		}
		if input.Direction == friend.DirectionAll && direction == friend.DirectionIncoming {
			if _, mirrored := outgoingTo[edge.UserID]; mirrored {
				continue
			}
		}
		selected = append(selected, edge)
		otherIDs = append(otherIDs, edge.OtherSide(input.UserID))
	}

	others, err := s.userRepository.ListByIDs(ctx, otherIDs)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}
	byID := make(map[user.ID]user.User, len(others))
	for _, other := range others {
		byID[other.ID] = other
	}

	search := ""
	if input.Search.IsPresent {
		search = strings.ToLower(strings.TrimSpace(input.Search.Value))
	}
	result.Friends = make([]Item, 0, len(selected))
	for _, edge := range selected {
		other, ok := byID[edge.OtherSide(input.UserID)]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(string(other.Username), search) {
			continue
		}
		result.Friends = append(result.Friends, Item{
			Friend:    edge,
			Direction: edge.DirectionFor(input.UserID),
			OtherUser: other.Profile(),
		})
	}

	sort.SliceStable(result.Friends, func(i, j int) bool {
		if input.Descending {
			return result.Friends[i].OtherUser.Username > result.Friends[j].OtherUser.Username
		}
		return result.Friends[i].OtherUser.Username < result.Friends[j].OtherUser.Username
	})
	return result, nil
}
