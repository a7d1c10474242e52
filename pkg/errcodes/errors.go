package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		http.StatusForbidden,
		action + " is not allowed.",
		"forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// CapabilityDisabled is returned when a search targets a media type whose
// provider has been switched off in settings.
func CapabilityDisabled(mediaType string) error {
	return &Error{
		http.StatusForbidden,
		fmt.Sprintf("Searching for %s is disabled. Enable it in settings first.", mediaType),
		"capability_disabled",
	}
}

// ProviderCredentials means the upstream catalog rejected (or never received)
// the API key.
func ProviderCredentials(provider string) error {
	return &Error{
		http.StatusFailedDependency,
		fmt.Sprintf("The %s API key is missing or invalid.", provider),
		"provider_credentials",
	}
}

// ProviderUnavailable covers every other upstream search failure.
func ProviderUnavailable(provider string, status int) error {
	msg := fmt.Sprintf("Failed to fetch data from %s.", provider)
	if status > 0 {
		msg = fmt.Sprintf("Failed to fetch data from %s (HTTP %d).", provider, status)
	}
	return &Error{
		http.StatusBadGateway,
		msg,
		"provider_unavailable",
	}
}

// Superseded is returned when a newer search for the same session was issued
// before this one completed.
func Superseded() error {
	return &Error{
		http.StatusConflict,
		"A newer search has replaced this one.",
		"superseded",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
