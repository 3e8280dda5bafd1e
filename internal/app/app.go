package app

import (
	"fmt"
	"net/http"
	"remindchat/internal/app/deps"
	"remindchat/internal/app/services"
	"remindchat/internal/http/handlers/auth"
	login "remindchat/internal/http/handlers/auth/log_in"
	deletefriend "remindchat/internal/http/handlers/friends/delete_friend"
	listfriends "remindchat/internal/http/handlers/friends/list_friends"
	respondfriendrequest "remindchat/internal/http/handlers/friends/respond_friend_request"
	sendfriendrequest "remindchat/internal/http/handlers/friends/send_friend_request"
	cancelreminder "remindchat/internal/http/handlers/reminders/cancel_reminder"
	deletereminder "remindchat/internal/http/handlers/reminders/delete_reminder"
	listuserreminders "remindchat/internal/http/handlers/reminders/list_user_reminders"
	requestid "remindchat/internal/http/handlers/request_id"
	"remindchat/internal/http/handlers/user/events"
	"remindchat/internal/http/handlers/user/me"
	"remindchat/internal/http/handlers/whatsapp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	whatsappRouter := chi.NewRouter()
	whatsappRouter.Method(
		http.MethodPost,
		"/inbound",
		whatsapp.New(
			deps.Logger,
			whatsapp.SignatureVerifier{
				AuthToken:  deps.Config.WhatsappAuthToken,
				WebhookURL: deps.Config.WhatsappWebhookURL,
			},
			s.HandleInboundMessage,
		),
	)

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserProfile))
	profileRouter.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer, s.GetUserProfile))

	friendRouter := chi.NewRouter()
	friendRouter.Use(auth.SetAuthTokenToContext)
	friendRouter.Method(http.MethodGet, "/", listfriends.New(s.ListFriends))
	friendRouter.Method(http.MethodPost, "/", sendfriendrequest.New(s.SendFriendRequest))
	friendRouter.Method(http.MethodPut, "/{friendID:[0-9]+}", respondfriendrequest.New(s.RespondFriendRequest))
	friendRouter.Method(http.MethodDelete, "/{friendID:[0-9]+}", deletefriend.New(s.DeleteFriend))

	reminderRouter := chi.NewRouter()
	reminderRouter.Use(auth.SetAuthTokenToContext)
	reminderRouter.Method(http.MethodGet, "/", listuserreminders.New(s.ListUserReminders))
	reminderRouter.Method(http.MethodPut, "/{reminderID:[0-9]+}/cancel", cancelreminder.New(s.CancelReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))

	router := chi.NewRouter()
	router.Use(requestid.SetRequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/whatsapp", whatsappRouter)
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/friends", friendRouter)
	router.Mount("/reminders", reminderRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
