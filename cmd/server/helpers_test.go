package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/mjolnir/internal/config"
)

// testConfig returns a valid configuration pointing at partnerURL with an
// in-memory cache.
func testConfig(partnerURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ReadTimeoutSeconds:     5,
			WriteTimeoutSeconds:    5,
			ShutdownTimeoutSeconds: 5,
		},
		Partner: config.PartnerConfig{
			BaseURL:          partnerURL,
			TimeoutSeconds:   2,
			MaxRetries:       0,
			RetryDelayMillis: 1,
			CatalogLimit:     50,
		},
		Cache: config.CacheConfig{
			Driver:     cacheDriverMemory,
			TTLSeconds: 60,
		},
		Task: config.TaskConfig{
			QueueSize:           10,
			WorkerCount:         1,
			WriteTimeoutSeconds: 1,
		},
	}
}

// fakeDeezer serves count tracks for every artist and counts the calls.
type fakeDeezer struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeDeezer(t *testing.T, count int) *fakeDeezer {
	t.Helper()

	f := &fakeDeezer{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if !strings.HasPrefix(r.URL.Path, "/artist/") {
			http.NotFound(w, r)
			return
		}

		var b strings.Builder
		b.WriteString(`{"data":[`)
		for i := 1; i <= count; i++ {
			if i > 1 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b,
				`{"id":%d,"title":"A rather long song title number %d","rank":%d,"duration":200,"link":"https://www.deezer.com/track/%d","album":{"title":"Album %d"}}`,
				i, i, i*1000, i, i)
		}
		fmt.Fprintf(&b, `],"total":%d}`, count)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, b.String())
	}))
	t.Cleanup(f.server.Close)
	return f
}
