package deletefriend

import (
	"errors"
	"net/http"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	service "remindchat/internal/core/services/delete_friend"
	"remindchat/internal/http/handlers/response"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Deleted int64 `json:"deleted"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	friendID, err := strconv.ParseInt(chi.URLParam(r, "friendID"), 10, 64)
	if err != nil || friendID <= 0 {
		response.RenderError(rw, "invalid friend ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{FriendID: friend.ID(friendID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAccessToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, friend.ErrFriendDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, friend.ErrFriendPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.Render(rw, Result{Deleted: result.Deleted}, http.StatusOK)
}
