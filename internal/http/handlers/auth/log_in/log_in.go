package login

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	ratelimiter "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	login "remindchat/internal/core/services/log_in"
	"remindchat/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(service services.Service[login.Input, login.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Result struct {
	Token   string           `json:"token"`
	Profile response.Profile `json:"profile"`
}

func (i *Input) FromJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		login.Input{Username: c.NewHandle(input.Username), Password: user.RawPassword(input.Password)},
	)
	switch {
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
		return
	case errors.Is(err, user.ErrInvalidCredentials):
		response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	profile := response.Profile{}
	profile.FromDomain(result.User.Profile())
	response.Render(rw, Result{Token: string(result.Token), Profile: profile}, http.StatusOK)
}
