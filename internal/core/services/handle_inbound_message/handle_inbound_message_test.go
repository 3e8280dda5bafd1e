package handleinboundmessage

import (
	"context"
	"errors"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reply"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	dispatchintent "remindchat/internal/core/services/dispatch_intent"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

const PHONE = "+620000000001"

type stubDispatcher struct {
	Inputs []dispatchintent.Input
	Reply  string
}

func (d *stubDispatcher) Run(ctx context.Context, input dispatchintent.Input) (dispatchintent.Result, error) {
	d.Inputs = append(d.Inputs, input)
	return dispatchintent.Result{Intent: input.Extraction.Intent, Reply: d.Reply}, nil
}

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	users      *user.FakeUserRepository
	extractor  *chat.FakeExtractor
	dispatcher *stubDispatcher
	polisher   chat.ReplyPolisher
	sender     *chat.FakeMessageSender
	owner      user.User
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.users = user.NewFakeUserRepository()
	suite.owner = suite.users.Add(user.User{Username: c.NewHandle("user1"), Phone: c.NewPhoneHandle(PHONE)})
	suite.extractor = chat.NewFakeExtractor(chat.Extraction{Intent: chat.IntentList})
	suite.dispatcher = &stubDispatcher{Reply: "Daftar pengingat kamu"}
	suite.polisher = chat.NopPolisher{}
	suite.sender = chat.NewFakeMessageSender()
}

func (suite *testSuite) service() services.Service[Input, Result] {
	return New(
		suite.logger,
		suite.users,
		suite.extractor,
		suite.dispatcher,
		suite.polisher,
		suite.sender,
		func() time.Time { return Now },
	)
}

func TestHandleInboundMessageService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestReplySentToSender() {
	// Exercise
	result, err := s.service().Run(context.Background(), NewInput("whatsapp:"+PHONE, " list "))

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Sent)
	assert.Equal(chat.IntentList, result.Intent)
	assert.Equal(1, s.sender.SentCount())
	assert.Equal(c.PhoneHandle(PHONE), s.sender.LastSent().To)
	assert.Equal("Daftar pengingat kamu", s.sender.LastSent().Text)

	assert.Len(s.extractor.Inputs, 1)
	assert.Equal("list", s.extractor.Inputs[0].Text)
	assert.True(s.extractor.Inputs[0].Now.Equal(Now))
	assert.Equal(s.owner.ID, s.dispatcher.Inputs[0].User.ID)
}

func (s *testSuite) TestEmptyBodyIsIgnored() {
	result, err := s.service().Run(context.Background(), NewInput("whatsapp:"+PHONE, "   "))

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Equal(0, s.sender.SentCount())
	assert.Empty(s.extractor.Inputs)
}

func (s *testSuite) TestUnregisteredPhone() {
	_, err := s.service().Run(context.Background(), NewInput("whatsapp:+629999", "halo"))

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(reply.NotRegistered, s.sender.LastSent().Text)
	assert.Equal(c.PhoneHandle("+629999"), s.sender.LastSent().To)
	assert.Empty(s.dispatcher.Inputs)
}

func (s *testSuite) TestUserLookupFailure() {
	s.users.ReturnError = true

	_, err := s.service().Run(context.Background(), NewInput(PHONE, "halo"))

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(reply.TechnicalIssue, s.sender.LastSent().Text)
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))
}

func (s *testSuite) TestExtractorFailureBecomesUnknown() {
	s.extractor.Error = errors.New("model timeout")

	result, err := s.service().Run(context.Background(), NewInput(PHONE, "halo"))

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(chat.IntentUnknown, result.Intent)
	assert.Equal(chat.IntentUnknown, s.dispatcher.Inputs[0].Extraction.Intent)
	assert.Equal(1, s.sender.SentCount())
}

func (s *testSuite) TestPolishedReply() {
	s.polisher = &chat.FakePolisher{Result: "Ini daftarnya ya!"}

	result, err := s.service().Run(context.Background(), NewInput(PHONE, "list"))

	assert := s.Require()
	assert.Nil(err)
	assert.Equal("Ini daftarnya ya!", result.Reply)
	assert.Equal("Ini daftarnya ya!", s.sender.LastSent().Text)
}

func (s *testSuite) TestPolisherFailureKeepsOriginal() {
	cases := []struct {
		id       string
		polisher *chat.FakePolisher
	}{
		{id: "error", polisher: &chat.FakePolisher{Error: errors.New("quota")}},
		{id: "empty", polisher: &chat.FakePolisher{Result: "  "}},
	}
	for _, testCase := range cases {
		s.Run(testCase.id, func() {
			s.polisher = testCase.polisher

			result, err := s.service().Run(context.Background(), NewInput(PHONE, "list"))

			assert := s.Require()
			assert.Nil(err)
			assert.Equal("Daftar pengingat kamu", result.Reply)
		})
	}
}

func (s *testSuite) TestSendFailureIsSwallowed() {
	s.sender.ReturnError = true

	result, err := s.service().Run(context.Background(), NewInput(PHONE, "list"))

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Equal(1, s.sender.SentCount())
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))
}

func (s *testSuite) TestRateLimitKeyUsesNormalizedPhone() {
	s.Require().Equal("inbound-message::"+PHONE, NewInput("whatsapp: "+PHONE, "x").GetRateLimitKey())
}
