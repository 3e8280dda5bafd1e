package response

import (
	"remindchat/internal/core/domain/friend"
	listfriends "remindchat/internal/core/services/list_friends"
	"time"
)

type Friend struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FriendID  int64     `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Friend) FromDomain(df friend.Friend) {
	f.ID = int64(df.ID)
	f.UserID = int64(df.UserID)
	f.FriendID = int64(df.FriendID)
	f.Status = df.Status.String()
	f.CreatedAt = df.CreatedAt
}

type FriendItem struct {
	Friend
	Direction string  `json:"direction"`
	User      Profile `json:"user"`
}

func (i *FriendItem) FromDomain(item listfriends.Item) {
	i.Friend.FromDomain(item.Friend)
	i.Direction = item.Direction.String()
	i.User.FromDomain(item.OtherUser)
}
