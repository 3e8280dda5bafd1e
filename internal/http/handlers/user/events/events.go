package events

import (
	"errors"
	"net/http"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	domainAuth "remindchat/internal/core/services/auth"
	s "remindchat/internal/core/services/get_user_profile"
	"remindchat/internal/http/handlers/auth"
	"remindchat/internal/http/handlers/response"
	userEvents "remindchat/internal/implementations/events"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if token, ok := auth.ParseQueryToken(r); ok {
		r = r.WithContext(domainAuth.WithAccessToken(r.Context(), token))
	}

	result, err := h.service.Run(r.Context(), s.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAccessToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != userEvents.StreamID(result.Profile.ID) {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}
	if !h.sseServer.StreamExists(streamID) {
		h.sseServer.CreateStream(streamID)
	}

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from user events.",
			logging.Entry("userID", result.Profile.ID),
		)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to user events.",
		logging.Entry("userID", result.Profile.ID),
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
