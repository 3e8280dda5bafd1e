package user

import (
	"fmt"
	c "remindchat/internal/core/domain/common"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToWIB(t *testing.T) {
	assert := require.New(t)

	u := User{TimeZone: "Mars/Olympus_Mons"}
	assert.Equal(WIB, u.Location())
}

func TestLocationDefault(t *testing.T) {
	assert := require.New(t)

	u := User{}
	loc := u.Location()
	if loc != WIB {
		assert.Equal(DEFAULT_TIME_ZONE, loc.String())
	}
}

func TestPasswordHashIsHidden(t *testing.T) {
	assert := require.New(t)

	hash := PasswordHash("secret-hash")
	assert.Equal("***", hash.String())
	assert.Equal("***", fmt.Sprintf("%v", hash))
}

func TestValidateUsername(t *testing.T) {
	assert := require.New(t)

	assert.Nil(ValidateUsername(c.NewHandle("@Budi_01")))
	assert.Nil(ValidateUsername(c.Handle("siti.rahma")))
	assert.ErrorIs(ValidateUsername(c.Handle("ab")), ErrInvalidUsername)
	assert.ErrorIs(ValidateUsername(c.Handle("budi santoso")), ErrInvalidUsername)
}

func TestValidatePhone(t *testing.T) {
	assert := require.New(t)

	assert.Nil(ValidatePhone(c.NewPhoneHandle("whatsapp:+62 811 0000 0001")))
	assert.ErrorIs(ValidatePhone(c.PhoneHandle("081100000001")), ErrInvalidPhone)
	assert.ErrorIs(ValidatePhone(c.PhoneHandle("+62abc")), ErrInvalidPhone)
}
