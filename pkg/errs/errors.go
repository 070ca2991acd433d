package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotFound            = errors.New("Resource not found")
	ErrProductNotFound     = errors.New("One or more products do not exist")
	ErrCategoryNotFound    = errors.New("One or more categories do not exist")
	ErrNoFileUploaded      = errors.New("No file was uploaded")
	ErrInvalidSignature    = errors.New("Invalid webhook signature")
	ErrNotificationFailure = errors.New("Failed to send notification email")
)

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrNotFound:            ErrStatusNotFound,
	ErrProductNotFound:     ErrStatusClient,
	ErrCategoryNotFound:    ErrStatusClient,
	ErrNoFileUploaded:      ErrStatusClient,
	ErrInvalidSignature:    ErrStatusClient,
	ErrNotificationFailure: ErrStatusInternalServer,
}

// GetErrorStatusCode resolves an error to an HTTP status. Wrapped sentinels
// are matched with errors.Is; anything unrecognized maps to 500 so that
// provider messages pass through with their original text.
func GetErrorStatusCode(err error) int {
	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}

	return ErrStatusInternalServer
}
