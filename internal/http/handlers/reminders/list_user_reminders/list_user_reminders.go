package listuserreminders

import (
	"errors"
	"fmt"
	"net/http"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	service "remindchat/internal/core/services/list_user_reminders"
	"remindchat/internal/http/handlers/response"
	"strconv"
	"strings"
)

const MAX_SEARCH_LEN = 128

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
	Reminders  []response.ReminderWithRecipients `json:"reminders"`
	TotalCount uint                              `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	statusIn, err := parseStatusIn(query.Get("status_in"))
	if err != nil {
		response.RenderError(rw, "invalid status_in query parameter", http.StatusBadRequest)
		return
	}

	search, err := parseSearch(query.Get("search"))
	if err != nil {
		response.RenderError(rw, "invalid search query parameter", http.StatusBadRequest)
		return
	}

	orderBy, err := parseOrderBy(query.Get("order_by"))
	if err != nil {
		response.RenderError(rw, "invalid order_by query parameter", http.StatusBadRequest)
		return
	}

	limit, err := parseLimit(query.Get("limit"))
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	offset, err := parseOffset(query.Get("offset"))
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		StatusIn:      statusIn,
		TitleContains: search,
		OrderBy:       orderBy,
		Limit:         limit,
		Offset:        offset,
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

	reminders := make([]response.ReminderWithRecipients, 0, len(result.Reminders))
	for _, r := range result.Reminders {
		item := response.ReminderWithRecipients{}
		item.FromDomainType(r)
		reminders = append(reminders, item)
	}
	response.Render(rw, Result{Reminders: reminders, TotalCount: result.TotalCount}, http.StatusOK)
}

func parseStatusIn(raw string) (result c.Optional[[]reminder.Status], err error) {
	if raw == "" {
		return result, nil
	}
	rawStatuses := strings.SplitN(raw, ",", 4)
	statuses := make([]reminder.Status, 0, len(rawStatuses))
	for _, rawStatus := range rawStatuses {
		status, err := reminder.ParseStatus(rawStatus)
		if err != nil {
			return result, err
		}
		statuses = append(statuses, status)
	}
	return c.NewOptional(statuses, true), nil
}

func parseSearch(raw string) (search c.Optional[string], err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return search, nil
	}
	if len(raw) > MAX_SEARCH_LEN {
		return search, fmt.Errorf("search must be at most %d bytes", MAX_SEARCH_LEN)
	}
	return c.NewOptional(raw, true), nil
}

func parseOrderBy(raw string) (orderBy reminder.OrderBy, err error) {
	if raw == "" {
		return orderBy, nil
	}
	return reminder.ParseOrderBy(raw)
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	l, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return limit, err
	}
	if l > service.DEFAULT_LIMIT {
		return limit, fmt.Errorf("limit must be less than or equal to %v", service.DEFAULT_LIMIT)
	}
	return c.NewOptional(uint(l), true), nil
}

func parseOffset(raw string) (offset uint, err error) {
	if raw == "" {
		return offset, nil
	}
	o, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return offset, err
	}
	return uint(o), nil
}
