package friend

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/db"
	dbuser "remindchat/internal/db/user"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *PgxFriendRepository
	userRepo *dbuser.PgxUserRepository
	budi     user.User
	siti     user.User
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxFriendRepository(suite.pool)
	suite.userRepo = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (s *testSuite) SetupTest() {
	s.budi = s.createUser("budi", "+6281100000001")
	s.siti = s.createUser("siti", "+6281100000002")
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxFriendRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateAndGet() {
	ctx := context.Background()
	created, err := s.repo.Create(ctx, friend.CreateInput{
		UserID:    s.budi.ID,
		FriendID:  s.siti.ID,
		Status:    friend.StatusPending,
		CreatedAt: Now,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(friend.StatusPending, created.Status)

	byID, err := s.repo.GetByID(ctx, created.ID)
	assert.Nil(err)
	assert.Equal(created.ID, byID.ID)

	byPair, err := s.repo.GetByPair(ctx, s.budi.ID, s.siti.ID)
	assert.Nil(err)
	assert.Equal(created.ID, byPair.ID)

	_, err = s.repo.GetByPair(ctx, s.siti.ID, s.budi.ID)
	assert.ErrorIs(err, friend.ErrFriendDoesNotExist)
}

func (s *testSuite) TestCreateDuplicate() {
	ctx := context.Background()
	input := friend.CreateInput{UserID: s.budi.ID, FriendID: s.siti.ID, Status: friend.StatusPending, CreatedAt: Now}
	_, err := s.repo.Create(ctx, input)
	s.Require().Nil(err)

	_, err = s.repo.Create(ctx, input)
	s.ErrorIs(err, friend.ErrFriendRequestExists)
}

func (s *testSuite) TestCreateSelf() {
	_, err := s.repo.Create(context.Background(), friend.CreateInput{
		UserID:    s.budi.ID,
		FriendID:  s.budi.ID,
		Status:    friend.StatusPending,
		CreatedAt: Now,
	})
	s.ErrorIs(err, friend.ErrSelfFriendship)
}

func (s *testSuite) TestAcceptanceNeedsBothRows() {
	ctx := context.Background()
	request, err := s.repo.Create(ctx, friend.CreateInput{
		UserID:    s.budi.ID,
		FriendID:  s.siti.ID,
		Status:    friend.StatusPending,
		CreatedAt: Now,
	})
	assert := s.Require()
	assert.Nil(err)

	_, err = s.repo.UpdateStatus(ctx, request.ID, friend.StatusAccepted)
	assert.Nil(err)
	ok, err := s.repo.IsAcceptedFriend(ctx, s.budi.ID, s.siti.ID)
	assert.Nil(err)
	assert.False(ok)

	_, err = s.repo.Upsert(ctx, friend.CreateInput{
		UserID:    s.siti.ID,
		FriendID:  s.budi.ID,
		Status:    friend.StatusAccepted,
		CreatedAt: Now,
	})
	assert.Nil(err)
	ok, err = s.repo.IsAcceptedFriend(ctx, s.siti.ID, s.budi.ID)
	assert.Nil(err)
	assert.True(ok)

	friends, err := s.repo.ListForUser(ctx, s.budi.ID)
	assert.Nil(err)
	assert.Len(friends, 2)
}

func (s *testSuite) TestUpsertOverwritesStatus() {
	ctx := context.Background()
	first, err := s.repo.Upsert(ctx, friend.CreateInput{
		UserID:    s.budi.ID,
		FriendID:  s.siti.ID,
		Status:    friend.StatusPending,
		CreatedAt: Now,
	})
	assert := s.Require()
	assert.Nil(err)

	second, err := s.repo.Upsert(ctx, friend.CreateInput{
		UserID:    s.budi.ID,
		FriendID:  s.siti.ID,
		Status:    friend.StatusAccepted,
		CreatedAt: Now.Add(time.Hour),
	})
	assert.Nil(err)
	assert.Equal(first.ID, second.ID)
	assert.Equal(friend.StatusAccepted, second.Status)
	assert.True(Now.Equal(second.CreatedAt))
}

func (s *testSuite) TestDelete() {
	ctx := context.Background()
	for _, pair := range [][2]user.ID{{s.budi.ID, s.siti.ID}, {s.siti.ID, s.budi.ID}} {
		_, err := s.repo.Create(ctx, friend.CreateInput{
			UserID:    pair[0],
			FriendID:  pair[1],
			Status:    friend.StatusAccepted,
			CreatedAt: Now,
		})
		s.Require().Nil(err)
	}

	deleted, err := s.repo.DeletePair(ctx, s.siti.ID, s.budi.ID)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(int64(2), deleted)
	friends, err := s.repo.ListForUser(ctx, s.budi.ID)
	assert.Nil(err)
	assert.Empty(friends)

	assert.ErrorIs(s.repo.Delete(ctx, friend.ID(111222333)), friend.ErrFriendDoesNotExist)
}

func (s *testSuite) createUser(username string, phone string) user.User {
	s.T().Helper()
	u, err := s.userRepo.Create(context.Background(), user.CreateInput{
		Username:  c.Handle(username),
		Phone:     c.PhoneHandle(phone),
		TimeZone:  user.DEFAULT_TIME_ZONE,
		CreatedAt: Now,
	})
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u
}
