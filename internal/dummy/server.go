// Package dummy serves a handful of target endpoints with known latency and
// failure profiles, for trying the prober locally and for tests.
package dummy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port int
}

// NewMux returns the target endpoints:
//
//	/fast          10-50ms
//	/medium        100-300ms
//	/slow          1-2s
//	/spike         20ms, 5% of requests take 2s
//	/error         20% 500, 20% 429, otherwise 200
//	/status/{code} always answers with code
//	/headers       echoes the request headers (and Host) as JSON
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /fast", delayed(10*time.Millisecond, 40*time.Millisecond, "Fast response"))
	mux.HandleFunc("GET /medium", delayed(100*time.Millisecond, 200*time.Millisecond, "Medium response"))
	mux.HandleFunc("GET /slow", delayed(time.Second, time.Second, "Slow response"))

	mux.HandleFunc("GET /spike", func(w http.ResponseWriter, r *http.Request) {
		if rand.Float32() < 0.05 {
			time.Sleep(2 * time.Second)
		} else {
			time.Sleep(20 * time.Millisecond)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Spikey response"))
	})

	mux.HandleFunc("GET /error", func(w http.ResponseWriter, r *http.Request) {
		rnd := rand.Float32()
		if rnd < 0.2 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 Internal Server Error"))
		} else if rnd < 0.4 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("429 Too Many Requests"))
		} else {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		}
	})

	mux.HandleFunc("GET /status/{code}", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(r.PathValue("code"))
		if err != nil || code < 100 || code > 599 {
			http.Error(w, "invalid status code", http.StatusBadRequest)
			return
		}
		w.WriteHeader(code)
		fmt.Fprintf(w, "status %d", code)
	})

	mux.HandleFunc("GET /headers", func(w http.ResponseWriter, r *http.Request) {
		echo := map[string]string{"Host": r.Host}
		for name := range r.Header {
			echo[name] = r.Header.Get(name)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(echo)
	})

	return mux
}

// delayed answers 200 after base plus up to spread of random delay.
func delayed(base, spread time.Duration, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(base + rand.N(spread))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

// Start serves NewMux on cfg.Port in the background.
func Start(cfg ServerConfig) *http.Server {
	addr := fmt.Sprintf(":%d", cfg.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           NewMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("target server listening", "addr", addr,
		"endpoints", "/fast /medium /slow /spike /error /status/{code} /headers")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("target server failed", "error", err)
		}
	}()

	return server
}

// Shutdown stops a server returned by Start.
func Shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
