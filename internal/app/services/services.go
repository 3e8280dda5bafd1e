package services

import (
	"remindchat/internal/app/deps"
	drl "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
	cancelreminder "remindchat/internal/core/services/cancel_reminder"
	createreminder "remindchat/internal/core/services/create_reminder"
	deletefriend "remindchat/internal/core/services/delete_friend"
	deletereminder "remindchat/internal/core/services/delete_reminder"
	dispatchintent "remindchat/internal/core/services/dispatch_intent"
	firereminder "remindchat/internal/core/services/fire_reminder"
	getuserprofile "remindchat/internal/core/services/get_user_profile"
	handleinboundmessage "remindchat/internal/core/services/handle_inbound_message"
	listfriends "remindchat/internal/core/services/list_friends"
	listuserreminders "remindchat/internal/core/services/list_user_reminders"
	login "remindchat/internal/core/services/log_in"
	ratelimiting "remindchat/internal/core/services/rate_limiting"
	registeruser "remindchat/internal/core/services/register_user"
	respondfriendrequest "remindchat/internal/core/services/respond_friend_request"
	schedulereminders "remindchat/internal/core/services/schedule_reminders"
	sendfriendrequest "remindchat/internal/core/services/send_friend_request"
	validaterecipients "remindchat/internal/core/services/validate_recipients"
)

type Services struct {
	HandleInboundMessage services.Service[handleinboundmessage.Input, handleinboundmessage.Result]
	DispatchIntent       services.Service[dispatchintent.Input, dispatchintent.Result]

	RegisterUser   services.Service[registeruser.Input, registeruser.Result]
	LogIn          services.Service[login.Input, login.Result]
	GetUserProfile services.Service[getuserprofile.Input, getuserprofile.Result]

	ListFriends          services.Service[listfriends.Input, listfriends.Result]
	SendFriendRequest    services.Service[sendfriendrequest.Input, sendfriendrequest.Result]
	RespondFriendRequest services.Service[respondfriendrequest.Input, respondfriendrequest.Result]
	DeleteFriend         services.Service[deletefriend.Input, deletefriend.Result]

	ListUserReminders services.Service[listuserreminders.Input, listuserreminders.Result]
	CancelReminder    services.Service[cancelreminder.Input, cancelreminder.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]
	ScheduleReminders services.Service[schedulereminders.Input, schedulereminders.Result]
	FireReminder      services.Service[firereminder.Input, firereminder.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	listReminders := listuserreminders.New(deps.Logger, deps.ReminderRepository)
	cancelReminder := cancelreminder.New(deps.Logger, deps.UnitOfWork, deps.ReminderScheduler, deps.Now)

	s.DispatchIntent = dispatchintent.New(
		deps.Logger,
		validaterecipients.New(deps.Logger, deps.UserRepository, deps.FriendRepository),
		createreminder.New(deps.Logger, deps.UnitOfWork, deps.ReminderScheduler, deps.Now),
		listReminders,
		cancelReminder,
		deps.ContextStore,
		deps.Now,
	)
	s.HandleInboundMessage = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.NewLimit(deps.Config.InboundRateLimitPerMinute, drl.Minute),
		handleinboundmessage.New(
			deps.Logger,
			deps.UserRepository,
			deps.Extractor,
			s.DispatchIntent,
			deps.ReplyPolisher,
			deps.MessageSender,
			deps.Now,
		),
	)

	s.RegisterUser = registeruser.New(deps.Logger, deps.UnitOfWork, deps.PasswordHasher, deps.Now)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.NewLimit(deps.Config.LogInRateLimitPerHour, drl.Hour),
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.AccessTokenIssuer,
			deps.Now,
		),
	)
	s.GetUserProfile = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		getuserprofile.New(deps.Logger),
	)

	s.ListFriends = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		listfriends.New(deps.Logger, deps.UserRepository, deps.FriendRepository),
	)
	s.SendFriendRequest = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		sendfriendrequest.New(deps.Logger, deps.UserRepository, deps.FriendRepository, deps.Now),
	)
	s.RespondFriendRequest = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		respondfriendrequest.New(deps.Logger, deps.UnitOfWork, deps.Now),
	)
	s.DeleteFriend = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		deletefriend.New(deps.Logger, deps.UnitOfWork),
	)

	s.ListUserReminders = auth.WithAuthentication(deps.AccessTokenValidator, deps.UserRepository, listReminders)
	s.CancelReminder = auth.WithAuthentication(deps.AccessTokenValidator, deps.UserRepository, cancelReminder)
	s.DeleteReminder = auth.WithAuthentication(
		deps.AccessTokenValidator,
		deps.UserRepository,
		deletereminder.New(deps.Logger, deps.UnitOfWork, deps.ReminderScheduler),
	)
	s.ScheduleReminders = schedulereminders.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.ReminderScheduler,
		deps.Now,
	)
	s.FireReminder = firereminder.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.MessageSender,
		deps.EventPublisher,
		deps.ReminderScheduler,
		deps.FireTombstones,
		deps.Now,
	)

	return s
}
