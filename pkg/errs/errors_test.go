package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"client error", ErrClient, http.StatusBadRequest},
		{"unknown product", ErrProductNotFound, http.StatusBadRequest},
		{"missing upload", ErrNoFileUploaded, http.StatusBadRequest},
		{"invalid signature", ErrInvalidSignature, http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"notification failure", ErrNotificationFailure, http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("%w: hmac mismatch", ErrInvalidSignature), http.StatusBadRequest},
		{"unrecognized error", errors.New("Invalid positive integer"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetErrorStatusCode(tc.err))
		})
	}
}
