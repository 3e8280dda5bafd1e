package friend

import "errors"

var (
	ErrFriendDoesNotExist  = errors.New("friend relation does not exist")
	ErrFriendRequestExists = errors.New("friend request already exists")
	ErrFriendPermission    = errors.New("friend relation does not belong to user")
	ErrSelfFriendship      = errors.New("user cannot befriend themselves")
	ErrNotPending          = errors.New("friend request is not pending")
	ErrUsernameRequired    = errors.New("username is required")
)
