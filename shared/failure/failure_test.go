package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"aulaboard/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad request", err: failure.BadRequestFromString("nope"), want: http.StatusBadRequest},
		{name: "not found", err: failure.NotFound("reservation not found"), want: http.StatusNotFound},
		{name: "conflict", err: failure.Conflict("reservation was modified"), want: http.StatusConflict},
		{name: "unprocessable", err: failure.UnprocessableEntity("already reviewed"), want: http.StatusUnprocessableEntity},
		{name: "forbidden", err: failure.Forbidden("admins only"), want: http.StatusForbidden},
		{name: "unauthorized", err: failure.Unauthorized("missing token"), want: http.StatusUnauthorized},
		{name: "plain error maps to 500", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped failure keeps its code", err: fmt.Errorf("outer: %w", failure.NotFound("gone")), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, failure.IsRetryable(failure.Conflict("lost the race")))
	assert.False(t, failure.IsRetryable(failure.BadRequestFromString("fix your input")))
	assert.False(t, failure.IsRetryable(errors.New("transportless")))
}
