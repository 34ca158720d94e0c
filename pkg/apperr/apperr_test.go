package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		Validation:      http.StatusBadRequest,
		Unauthenticated: http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		NotFound:        http.StatusNotFound,
		Conflict:        http.StatusConflict,
		Upstream:        http.StatusBadGateway,
		Internal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := New(NotFound, "bootcamp not found")
	wrapped := fmt.Errorf("loading bootcamp: %w", base)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, NotFound))
	assert.Equal(t, "bootcamp not found", Message(wrapped))
}

func TestUntypedErrorIsInternal(t *testing.T) {
	err := errors.New("pq: connection refused")

	assert.Equal(t, Internal, KindOf(err))
	assert.Equal(t, "server error", Message(err), "internals never leak into responses")
	assert.Nil(t, Details(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(Upstream, cause, "email could not be sent")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "email could not be sent", Message(err))
	assert.Equal(t, Upstream, KindOf(err))
}

func TestWithDetails(t *testing.T) {
	err := New(Validation, "invalid payload").WithDetails(map[string]string{"email": "email must be a valid email address"})

	details, ok := Details(err).(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "email must be a valid email address", details["email"])
}
