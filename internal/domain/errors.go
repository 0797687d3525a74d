package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoImage        = errors.New("no image selected")
	ErrEncodingFailed = errors.New("image encoding failed")
	ErrRunNotFound    = errors.New("run not found")
)

// ConfigurationError marks a required credential missing for one pipeline
// stage. The stage fails before any network call is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// RemoteServiceError reports a non-success HTTP response from an inference
// endpoint. The response body is carried for diagnostics.
type RemoteServiceError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// IsRemoteServiceError reports whether err wraps a RemoteServiceError.
func IsRemoteServiceError(err error) bool {
	var rse *RemoteServiceError
	return errors.As(err, &rse)
}
