package deletefriend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"remindchat/internal/core/domain/friend"
	service "remindchat/internal/core/services/delete_friend"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	input *service.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{Deleted: 2}, nil
}

func serve(s *stubService, friendID string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodDelete, "/friends/{friendID}", New(s))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/friends/"+friendID, nil))
	return rec
}

func TestDeleteFriend(t *testing.T) {
	require := require.New(t)
	s := &stubService{}

	rec := serve(s, "4")

	require.Equal(http.StatusOK, rec.Code)
	require.Equal(friend.ID(4), s.input.FriendID)
	require.JSONEq(`{"deleted": 2}`, rec.Body.String())
}

func TestDeleteFriendErrors(t *testing.T) {
	require := require.New(t)

	require.Equal(http.StatusBadRequest, serve(&stubService{}, "abc").Code)
	require.Equal(http.StatusNotFound, serve(&stubService{err: friend.ErrFriendDoesNotExist}, "4").Code)
	require.Equal(http.StatusForbidden, serve(&stubService{err: friend.ErrFriendPermission}, "4").Code)
	require.Equal(http.StatusInternalServerError, serve(&stubService{err: errors.New("boom")}, "4").Code)
}
