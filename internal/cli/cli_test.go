package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httplatencies/internal/config"
	errs "httplatencies/internal/errors"
	"httplatencies/internal/logging"
	"httplatencies/internal/runner"
	"httplatencies/internal/stats"
)

func TestTerminalAppendMode(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.Progress(0, 40)
	term.ProbeError(3, errors.New("boom"))
	term.Progress(40, 40)
	term.Finish()

	assert.Equal(t, "0/40\n3 ERROR boom\n\n40/40\n", buf.String())
}

func TestTerminalInPlaceMode(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)

	term.Progress(0, 10)
	term.ProbeError(1, errors.New("refused"))
	term.Progress(10, 10)
	term.Finish()

	assert.Equal(t, "\r\x1b[K0/10\r\x1b[K1 ERROR refused\n\n\r\x1b[K10/10\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer

	err := PrintSummary(&buf, runner.Result{}, stats.Summary{Count: 1, Min: 2, Max: 2, Mean: 2, P25: 2, P50: 2, P75: 2, P95: 2}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "min: 2, max: 2"))

	buf.Reset()
	err = PrintSummary(&buf, runner.Result{TransportErrors: 3}, stats.Summary{}, errs.ErrNoData)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no data")
	assert.Contains(t, buf.String(), "3 transport errors")
}

func TestStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	cfg := &config.Config{
		URLs:         []string{srv.URL},
		TaskCount:    2,
		ProbeCount:   2,
		Timeout:      time.Second,
		Interval:     time.Millisecond,
		JitterWindow: 10 * time.Millisecond,
	}

	r, err := runner.New(cfg, runner.WithLogger(logging.Discard()))
	require.NoError(t, err)

	var buf bytes.Buffer
	res := Start(context.Background(), r, &buf, false)

	assert.Equal(t, 4, res.Successes)
	assert.Contains(t, buf.String(), "Targets    : "+srv.URL)
	assert.True(t, strings.HasSuffix(buf.String(), "0/4\n4/4\n"))
}
