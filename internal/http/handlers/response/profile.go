package response

import (
	"remindchat/internal/core/domain/user"
	"time"
)

type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	TimeZone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Profile) FromDomain(dp user.Profile) {
	p.ID = int64(dp.ID)
	p.Username = string(dp.Username)
	p.Phone = string(dp.Phone)
	p.TimeZone = dp.TimeZone
	p.CreatedAt = dp.CreatedAt
}
