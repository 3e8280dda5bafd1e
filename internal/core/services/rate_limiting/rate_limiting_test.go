package ratelimiting

import (
	"context"
	"remindchat/internal/core/domain/logging"
	ratelimiter "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Phone string
}

func (i input) GetRateLimitKey() string {
	return "test::" + i.Phone
}

type result struct{}

type stubService struct {
	Calls int
}

func (s *stubService) Run(ctx context.Context, input input) (result result, err error) {
	s.Calls++
	return result, nil
}

type testRateLimitingSuite struct {
	suite.Suite
	Logger      *logging.FakeLogger
	RateLimiter *ratelimiter.FakeRateLimiter
	Inner       *stubService
	Service     services.Service[input, result]
}

func (suite *testRateLimitingSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.RateLimiter = ratelimiter.NewFakeRateLimiter(true)
	suite.Inner = &stubService{}
	suite.Service = WithRateLimiting[input, result](
		suite.Logger,
		suite.RateLimiter,
		ratelimiter.NewLimit(10, ratelimiter.Minute),
		suite.Inner,
	)
}

func TestRateLimitingService(t *testing.T) {
	suite.Run(t, new(testRateLimitingSuite))
}

func (suite *testRateLimitingSuite) TestNotLimited() {
	_, err := suite.Service.Run(context.Background(), input{Phone: "+62811"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Inner.Calls)
	assert.Equal([]string{"test::+62811"}, suite.RateLimiter.Keys)
}

func (suite *testRateLimitingSuite) TestLimited() {
	suite.RateLimiter.IsAllowed = false

	_, err := suite.Service.Run(context.Background(), input{Phone: "+62811"})

	assert := suite.Require()
	assert.ErrorIs(err, ratelimiter.ErrRateLimitExceeded)
	assert.Equal(0, suite.Inner.Calls)
	assert.Equal(1, suite.Logger.CountLevel(logging.WARNING))
}
