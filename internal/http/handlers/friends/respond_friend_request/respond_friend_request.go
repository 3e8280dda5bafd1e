package respondfriendrequest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	service "remindchat/internal/core/services/respond_friend_request"
	"remindchat/internal/http/handlers/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Action string `json:"action"`
}

func (i *Input) FromJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Action, validation.Required, validation.In("accept", "reject")),
	)
}

type Result struct {
	Friend response.Friend `json:"friend"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	friendID, err := strconv.ParseInt(chi.URLParam(r, "friendID"), 10, 64)
	if err != nil || friendID <= 0 {
		response.RenderError(rw, "invalid friend ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}
	action, err := friend.ParseAction(input.Action)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{FriendID: friend.ID(friendID), Action: action})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAccessToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, friend.ErrFriendDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, friend.ErrFriendPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		case errors.Is(err, friend.ErrNotPending):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	f := response.Friend{}
	f.FromDomain(result.Friend)
	response.Render(rw, Result{Friend: f}, http.StatusOK)
}
