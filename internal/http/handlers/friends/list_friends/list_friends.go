package listfriends

import (
	"errors"
	"net/http"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	service "remindchat/internal/core/services/list_friends"
	"remindchat/internal/http/handlers/response"
	"strings"
)

const MAX_SEARCH_LEN = 64

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
	Friends []response.FriendItem `json:"friends"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	direction, err := friend.ParseDirection(query.Get("direction"))
	if err != nil {
		response.RenderError(rw, "invalid direction query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{Direction: direction}
	if search := strings.TrimSpace(query.Get("search")); search != "" {
		if len(search) > MAX_SEARCH_LEN {
			response.RenderError(rw, "invalid search query parameter", http.StatusBadRequest)
			return
		}
		input.Search = c.NewOptional(search, true)
	}
	switch query.Get("order") {
	case "", "asc":
	case "desc":
		input.Descending = true
	default:
		response.RenderError(rw, "invalid order query parameter", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAccessToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	friends := make([]response.FriendItem, 0, len(result.Friends))
	for _, item := range result.Friends {
		f := response.FriendItem{}
		f.FromDomain(item)
		friends = append(friends, f)
	}
	response.Render(rw, Result{Friends: friends}, http.StatusOK)
}
