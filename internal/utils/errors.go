package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidationError     ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInfoRequired        ErrorCode = "INFO_REQUIRED"
	ErrorCodeMetadataFetchFailed ErrorCode = "METADATA_FETCH_FAILED"
	ErrorCodeDownloadFailed      ErrorCode = "DOWNLOAD_FAILED"
	ErrorCodeDownloadInProgress  ErrorCode = "DOWNLOAD_IN_PROGRESS"
	ErrorCodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"
	ErrorCodeRateLimitExceeded   ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors returned by the services and mapped onto AppError by the handlers.
var (
	ErrMetadataFetch = errors.New("error fetching video info")
	ErrDownload      = errors.New("download failed")
	ErrNoOutputFile  = errors.New("download produced no recognised media file")
	ErrBusy          = errors.New("a download is already running for this session")
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

// NewInfoRequiredError is returned when a download is requested before the
// session fetched metadata.
func NewInfoRequiredError() *AppError {
	return NewError(
		ErrorCodeInfoRequired,
		"Please get video info first!",
		http.StatusPreconditionFailed,
	)
}

// NewMetadataFetchError does not distinguish transient from permanent failures.
func NewMetadataFetchError(err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeMetadataFetchFailed,
		"Error fetching video info",
		http.StatusBadGateway,
		map[string]interface{}{
			"reason": err.Error(),
		},
	)
}

func NewDownloadError(err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeDownloadFailed,
		"Download failed. Please check the URL and try again.",
		http.StatusBadGateway,
		map[string]interface{}{
			"reason": err.Error(),
		},
	)
}

func NewDownloadInProgressError() *AppError {
	return NewError(
		ErrorCodeDownloadInProgress,
		"A download is already running in this session",
		http.StatusConflict,
	)
}

func NewFileNotFoundError() *AppError {
	return NewError(
		ErrorCodeFileNotFound,
		"No downloaded file is available for this session",
		http.StatusNotFound,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}

// ToAppError maps service errors onto their API representation.
func ToAppError(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrBusy):
		return NewDownloadInProgressError()
	case errors.Is(err, ErrMetadataFetch):
		return NewMetadataFetchError(err)
	case errors.Is(err, ErrDownload), errors.Is(err, ErrNoOutputFile):
		return NewDownloadError(err)
	default:
		return NewInternalError()
	}
}
