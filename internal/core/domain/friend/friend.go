package friend

import (
	"errors"
	"remindchat/internal/core/domain/user"
	"time"
)

type ID int64

var ErrParseStatus = errors.New("invalid friend status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

var (
	StatusUnknown  = Status{}
	StatusPending  = Status{v: "pending"}
	StatusAccepted = Status{v: "accepted"}
	StatusRejected = Status{v: "rejected"}
)

func ParseStatus(value string) (Status, error) {
	switch value {
	case "pending":
		return StatusPending, nil
	case "accepted":
		return StatusAccepted, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

// Friend is a directed edge from UserID to FriendID.
type Friend struct {
	ID        ID
	UserID    user.ID
	FriendID  user.ID
	Status    Status
	CreatedAt time.Time
}

type Action struct {
	v string
}

var (
	ActionUnknown = Action{}
	ActionAccept  = Action{v: "accept"}
	ActionReject  = Action{v: "reject"}
)

var ErrParseAction = errors.New("invalid action")

func (a Action) String() string {
	return a.v
}

func ParseAction(value string) (Action, error) {
	switch value {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	default:
		return ActionUnknown, ErrParseAction
	}
}

// Direction is relative to the user listing friends.
type Direction struct {
	v string
}

var (
	DirectionAll      = Direction{}
	DirectionIncoming = Direction{v: "incoming"}
	DirectionOutgoing = Direction{v: "outgoing"}
)

var ErrParseDirection = errors.New("invalid direction")

func (d Direction) String() string {
	if d == DirectionAll {
		return "all"
	}
	return d.v
}

func ParseDirection(value string) (Direction, error) {
	switch value {
	case "", "all":
		return DirectionAll, nil
	case "incoming":
		return DirectionIncoming, nil
	case "outgoing":
		return DirectionOutgoing, nil
	default:
		return DirectionAll, ErrParseDirection
	}
}

// DirectionFor tells how f looks from the side of userID.
func (f Friend) DirectionFor(userID user.ID) Direction {
	if f.UserID == userID {
		return DirectionOutgoing
	}
	return DirectionIncoming
}

// OtherSide returns the user on the opposite end of the edge.
func (f Friend) OtherSide(userID user.ID) user.ID {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}
