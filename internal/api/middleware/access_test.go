package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type fakeObserver struct {
	called int
	method string
	route  string
	status int
}

func (f *fakeObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.called++
	f.method = method
	f.route = route
	f.status = status
}

func TestAccessLog_RecordsRoutePatternAndStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	obs := &fakeObserver{}
	r := chi.NewRouter()
	r.Use(AccessLog(zerolog.New(&buf), obs))
	r.Get("/api/v1/tables/{table}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tables/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
	if obs.called != 1 || obs.route != "/api/v1/tables/{table}" || obs.status != http.StatusNotFound || obs.method != http.MethodGet {
		t.Fatalf("unexpected observation %+v", obs)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["path"] != "/api/v1/tables/nope" || line["status"] != float64(http.StatusNotFound) || line["level"] != "info" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestAccessLog_NilObserverAndDefaultStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := AccessLog(zerolog.New(&buf), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["status"] != float64(http.StatusOK) || line["route"] != "unmatched" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestAccessLog_ServerErrorsLogAtErrorLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := AccessLog(zerolog.New(&buf), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["level"] != "error" {
		t.Fatalf("level=%v", line["level"])
	}
}
