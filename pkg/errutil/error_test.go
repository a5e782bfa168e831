package errutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("user store unavailable", WithErr(cause))

	var base BaseError
	require.True(t, errors.As(err, &base))
	require.Equal(t, StatusServiceUnavailable, base.Code)
	require.Equal(t, "user store unavailable", base.Message)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}

func TestBaseErrorAsThroughWrap(t *testing.T) {
	err := fmt.Errorf("handling claim: %w", Conflict("already claimed"))

	var base BaseError
	require.True(t, errors.As(err, &base))
	require.Equal(t, StatusConflict, base.Code)
}

func TestWithDetails(t *testing.T) {
	err := ValidationFailed("invalid request", WithDetails(
		Detail{Field: "latitude", Message: "must be between -90 and 90"},
	))

	var base BaseError
	require.True(t, errors.As(err, &base))
	require.Len(t, base.Details, 1)
	require.Equal(t, "latitude", base.Details[0].Field)
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[CoreStatus]int{
		StatusBadRequest:          http.StatusBadRequest,
		StatusValidationFailed:    http.StatusBadRequest,
		StatusUnauthorized:        http.StatusUnauthorized,
		StatusForbidden:           http.StatusForbidden,
		StatusNotFound:            http.StatusNotFound,
		StatusConflict:            http.StatusConflict,
		StatusTooManyRequests:     http.StatusTooManyRequests,
		StatusTimeout:             http.StatusGatewayTimeout,
		StatusServiceUnavailable:  http.StatusServiceUnavailable,
		StatusInternal:            http.StatusInternalServerError,
		StatusClientClosedRequest: 499,
		StatusUnknown:             http.StatusInternalServerError,
	}

	for status, want := range cases {
		require.Equal(t, want, status.HTTPStatus(), "status %s", status)
	}
}
