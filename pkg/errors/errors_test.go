package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:    http.StatusBadRequest,
		KindNotFound:      http.StatusNotFound,
		KindUnauthorized:  http.StatusUnauthorized,
		KindUpstream:      http.StatusBadGateway,
		KindConfiguration: http.StatusInternalServerError,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		require.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Task not found."))
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrUnauthorized))

	appErr := As(err)
	require.Equal(t, KindNotFound, appErr.Kind)
	require.Equal(t, "Task not found.", appErr.Message)
}

func TestAsWrapsForeignErrors(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := As(cause)
	require.Equal(t, KindInternal, appErr.Kind)
	require.ErrorIs(t, appErr, cause)
	require.ErrorIs(t, appErr, ErrInternal)
}
