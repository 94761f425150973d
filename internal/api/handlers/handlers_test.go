package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/env"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/policy"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/seed"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/tool"
)

func mustEnv(t *testing.T) *env.Environment {
	t.Helper()
	ds, err := seed.Generate(seed.DefaultOptions())
	if err != nil {
		t.Fatalf("seed.Generate: %v", err)
	}
	pol, err := policy.Load()
	if err != nil {
		t.Fatalf("policy.Load: %v", err)
	}
	e, err := env.New(ds, pol, env.Options{})
	if err != nil {
		t.Fatalf("env.New: %v", err)
	}
	return e
}

func newTestRouter(e *env.Environment) http.Handler {
	ih := NewInterfaceHandler(e)
	th := NewTableHandler(e)
	r := chi.NewRouter()
	r.Get("/interfaces", ih.ListInterfaces)
	r.Get("/interfaces/{iface}/tools", ih.ListTools)
	r.Post("/interfaces/{iface}/tools/{tool}", ih.InvokeTool)
	r.Get("/tables", th.ListTables)
	r.Get("/tables/{table}", th.GetTable)
	r.Get("/policy", NewPolicyHandler(e).GetPolicy)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestInterfaceHandler_ListInterfaces(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(mustEnv(t)), http.MethodGet, "/interfaces", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data []env.InterfaceInfo `json:"data"`
		Meta map[string]int      `json:"meta"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 5 || resp.Meta["total"] != 5 {
		t.Fatalf("expected 5 interfaces, got %+v", resp)
	}
	if resp.Data[0].Name != tool.Interface1 || resp.Data[0].ToolCount != 12 {
		t.Fatalf("unexpected first interface %+v", resp.Data[0])
	}
}

func TestInterfaceHandler_ListTools(t *testing.T) {
	t.Parallel()

	h := newTestRouter(mustEnv(t))
	rr := do(t, h, http.MethodGet, "/interfaces/interface_4/tools", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data []tool.Descriptor `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 12 {
		t.Fatalf("expected 12 tools, got %d", len(resp.Data))
	}
	if resp.Data[0].Type != "function" || !strings.Contains(string(resp.Data[0].Function.Parameters), "acting_user_id") {
		t.Fatalf("unexpected descriptor %+v", resp.Data[0])
	}

	if rr := do(t, h, http.MethodGet, "/interfaces/interface_0/tools", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown interface: status=%d", rr.Code)
	}
}

func TestInterfaceHandler_InvokeTool(t *testing.T) {
	t.Parallel()

	e := mustEnv(t)
	h := newTestRouter(e)
	name := tool.Catalogs()[0].Tools[0].Name

	rr := do(t, h, http.MethodPost, "/interfaces/interface_1/tools/"+name, `{"payload": {"note": "a & b"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	want := `{"tool":"` + name + `","ok":true,"received":{"payload":{"note":"a & b"}}}`
	if got := rr.Body.String(); got != want {
		t.Fatalf("body=%s want=%s", got, want)
	}
	if got := e.Counts()["audit_logs"]; got != seed.DefaultRows+1 {
		t.Fatalf("audit rows=%d", got)
	}

	rr = do(t, h, http.MethodPost, "/interfaces/interface_1/tools/"+name, "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"received":{}`) {
		t.Fatalf("empty body: status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestInterfaceHandler_InvokeToolHaltIs200(t *testing.T) {
	t.Parallel()

	name := tool.Catalogs()[1].Tools[0].Name
	rr := do(t, newTestRouter(mustEnv(t)), http.MethodPost, "/interfaces/interface_2/tools/"+name, `{"acting_user_id":"999999"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"error":"Halt: Invalid acting user"}` {
		t.Fatalf("body=%s", got)
	}
}

func TestInterfaceHandler_InvokeToolErrors(t *testing.T) {
	t.Parallel()

	h := newTestRouter(mustEnv(t))
	name := tool.Catalogs()[0].Tools[0].Name
	cases := []struct {
		path string
		body string
		want int
	}{
		{"/interfaces/interface_9/tools/" + name, `{}`, http.StatusNotFound},
		{"/interfaces/interface_1/tools/no_such_tool", `{}`, http.StatusNotFound},
		{"/interfaces/interface_1/tools/" + name, `[1,2]`, http.StatusBadRequest},
		{"/interfaces/interface_1/tools/" + name, `{"broken"`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := do(t, h, http.MethodPost, tc.path, tc.body)
		if rr.Code != tc.want {
			t.Fatalf("%s %s: status=%d want=%d body=%s", tc.path, tc.body, rr.Code, tc.want, rr.Body.String())
		}
		if !strings.Contains(rr.Body.String(), `"error"`) {
			t.Fatalf("%s: expected error body, got %s", tc.path, rr.Body.String())
		}
	}
}

func TestTableHandler(t *testing.T) {
	t.Parallel()

	e := mustEnv(t)
	h := newTestRouter(e)

	rr := do(t, h, http.MethodGet, "/tables/vendors", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	want, err := e.EncodeTable("vendors")
	if err != nil {
		t.Fatalf("EncodeTable: %v", err)
	}
	if rr.Body.String() != string(want) {
		t.Fatal("table body differs from encoded table")
	}

	if rr := do(t, h, http.MethodGet, "/tables/salaries", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown table: status=%d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/tables", "")
	var resp struct {
		Data []tableSummary `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 16 || resp.Data[0].Name != "users" || resp.Data[0].Rows != seed.DefaultRows {
		t.Fatalf("unexpected summary %+v", resp.Data)
	}
}

func TestPolicyHandler(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(mustEnv(t)), http.MethodGet, "/policy", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var resp struct {
		Rules []policy.Section `json:"rules"`
		Wiki  string           `json:"wiki"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rules) != 4 || resp.Rules[0].Name != "payroll_processing" {
		t.Fatalf("unexpected rules %+v", resp.Rules)
	}
	if resp.Wiki == "" {
		t.Fatal("expected wiki text")
	}
}
