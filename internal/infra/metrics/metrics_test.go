package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveTool(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.ObserveTool("interface_1", "lookup_user", "success", time.Millisecond)
	m.ObserveTool("interface_1", "lookup_user", "success", time.Millisecond)
	m.ObserveTool("interface_1", "lookup_user", "halted", time.Millisecond)

	text := scrape(t, m)
	assert.Contains(t, text, `payrollenv_tool_invocations_total{interface="interface_1",outcome="success",tool="lookup_user"} 2`)
	assert.Contains(t, text, `payrollenv_tool_invocations_total{interface="interface_1",outcome="halted",tool="lookup_user"} 1`)
	assert.Contains(t, text, `payrollenv_tool_invocation_duration_seconds_count{interface="interface_1"} 3`)
}

func TestSetTableRows(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.SetTableRows(map[string]int{"users": 25, "audit_logs": 26})

	assert.Contains(t, scrape(t, m), `payrollenv_table_rows{table="audit_logs"} 26`)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New(func() uint64 { return 3 })
	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)

	text := scrape(t, m)
	assert.Contains(t, text, `payrollenv_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, text, "payrollenv_eventbus_dropped_total 3")
	assert.Contains(t, text, "go_goroutines")
}
