// Package errors defines the failure taxonomy of a probe run.
//
// Setup failures (ConfigurationError, ClientConstructionError) abort the run
// before any request is sent. Probe failures (ProtocolError, TransportError)
// travel as values from the workers to the aggregator and never leave it.
package errors

import (
	"errors"
	"fmt"
)

// ErrNoData is reported when a run finishes without a single successful sample.
var ErrNoData = errors.New("no data: no successful samples were recorded")

// ConfigurationError covers malformed header specs, invalid header names or
// values, unreadable value files and invalid run parameters.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}

	return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err for the given field.
func NewConfigurationError(field string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Err: err}
}

// ClientConstructionError is returned when an HTTP client cannot be built,
// usually because its local address is not usable on this host.
type ClientConstructionError struct {
	Addr string
	Err  error
}

func (e *ClientConstructionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("client construction: %v", e.Err)
	}

	return fmt.Sprintf("client construction (local address %s): %v", e.Addr, e.Err)
}

func (e *ClientConstructionError) Unwrap() error {
	return e.Err
}

// ProtocolError is a response with a non-2xx status. The worker keeps probing.
type ProtocolError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("status code not OK: %s body: %s", e.Status, e.Body)
}

// TransportError is a connection, timeout, DNS or TLS failure. It ends the
// worker's probing loop.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// IsProtocol reports whether err is (or wraps) a ProtocolError.
func IsProtocol(err error) bool {
	var pe *ProtocolError

	return errors.As(err, &pe)
}
