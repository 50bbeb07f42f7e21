package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("probe: %w", &TransportError{Err: io.ErrUnexpectedEOF})

	assert.True(t, IsTransport(err))
	assert.False(t, IsProtocol(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestProtocolErrorMessage(t *testing.T) {
	err := &ProtocolError{StatusCode: 503, Status: "503 Service Unavailable", Body: "busy"}

	assert.True(t, IsProtocol(err))
	assert.Equal(t, "status code not OK: 503 Service Unavailable body: busy", err.Error())
}

func TestSetupErrors(t *testing.T) {
	cause := errors.New("boom")

	cfgErr := NewConfigurationError("header-file", cause)
	assert.Equal(t, "configuration: header-file: boom", cfgErr.Error())
	assert.ErrorIs(t, cfgErr, cause)

	clientErr := &ClientConstructionError{Addr: "10.0.0.1", Err: cause}
	assert.Contains(t, clientErr.Error(), "10.0.0.1")
	assert.ErrorIs(t, clientErr, cause)
}
