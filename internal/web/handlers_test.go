package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tianji/internal/config"
	"tianji/internal/db"
	"tianji/internal/ops"
)

func stringPtr(s string) *string { return &s }

// serve builds the full route table backed by a fresh database.
func serve(t *testing.T) (http.Handler, *Handlers) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	srv := NewServer(database, cfg, "test", "127.0.0.1", 0)

	return srv.Handler, &Handlers{db: database, cfg: cfg, version: "test"}
}

// divineTestChart stores a chart directly through the ops layer.
func divineTestChart(t *testing.T, h *Handlers, name string) string {
	t.Helper()
	out, err := ops.Divine(context.Background(), h.db, ops.DivineInput{
		Name: stringPtr(name),
		Year: 1990, Month: 5, Day: 15, Hour: 14,
	})
	if err != nil {
		t.Fatalf("Divine: %v", err)
	}
	return out.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v\n%s", err, rec.Body.String())
	}
	return payload
}

func TestHandleDivine_Created(t *testing.T) {
	handler, _ := serve(t)

	body := `{"name":"web seeker","year":1990,"month":5,"day":15,"hour":14}`
	req := httptest.NewRequest("POST", "/api/charts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["pillars"] != "庚午 甲午 庚子 癸未" {
		t.Errorf("pillars = %v", payload["pillars"])
	}
	if payload["id"] == nil {
		t.Error("response missing id")
	}
}

func TestHandleDivine_BadJSON(t *testing.T) {
	handler, _ := serve(t)

	req := httptest.NewRequest("POST", "/api/charts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleDivine_InvalidDate(t *testing.T) {
	handler, _ := serve(t)

	body := `{"year":1990,"month":2,"day":30,"hour":14}`
	req := httptest.NewRequest("POST", "/api/charts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	payload := decodeBody(t, rec)
	errorObj, _ := payload["error"].(map[string]any)
	if errorObj["code"] != "INVALID_DATE" {
		t.Errorf("code = %v, want INVALID_DATE", errorObj["code"])
	}
}

func TestHandleFetchAndDelete(t *testing.T) {
	handler, h := serve(t)
	id := divineTestChart(t, h, "fetch me")

	req := httptest.NewRequest("GET", "/api/charts/"+id, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d\n%s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["id"]; got != id {
		t.Errorf("id = %v, want %s", got, id)
	}

	req = httptest.NewRequest("DELETE", "/api/charts/"+id, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Gone now
	req = httptest.NewRequest("GET", "/api/charts/"+id, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("fetch after delete status = %d, want 404", rec.Code)
	}
}

func TestHandleList_Pagination(t *testing.T) {
	handler, h := serve(t)
	divineTestChart(t, h, "one")
	divineTestChart(t, h, "two")

	req := httptest.NewRequest("GET", "/api/charts?limit=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	items, _ := payload["items"].([]any)
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
	pagination, _ := payload["pagination"].(map[string]any)
	if pagination["total"] != float64(2) || pagination["has_more"] != true {
		t.Errorf("pagination = %v", pagination)
	}
}

func TestHandleSnapshot_QueryParams(t *testing.T) {
	handler, _ := serve(t)

	req := httptest.NewRequest("GET", "/api/celestial?element=%E9%87%91&weather=%E9%9B%B7%E6%9A%B4", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	weather, _ := payload["weather"].(map[string]any)
	if weather["weather"] != "雷暴" {
		t.Errorf("weather = %v, want 雷暴", weather["weather"])
	}
	if payload["bonus"] == nil {
		t.Error("response missing bonus")
	}
}

func TestHandleWisdom(t *testing.T) {
	handler, _ := serve(t)

	req := httptest.NewRequest("GET", "/api/wisdom?element=%E6%9C%A8", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	quote, _ := payload["quote"].(map[string]any)
	if quote["content"] == nil {
		t.Error("quote missing content")
	}
}

func TestHandleCultivateRoutes(t *testing.T) {
	handler, h := serve(t)
	id := divineTestChart(t, h, "web cultivator")

	req := httptest.NewRequest("POST", "/api/charts/"+id+"/cultivate/start", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d\n%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("POST", "/api/charts/"+id+"/cultivate/end", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("end status = %d\n%s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["expGained"] == nil {
		t.Error("end response missing expGained")
	}

	req = httptest.NewRequest("GET", "/api/charts/"+id+"/cultivate", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status status = %d", rec.Code)
	}

	// Ending with no open session is a conflict
	req = httptest.NewRequest("POST", "/api/charts/"+id+"/cultivate/end", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second end status = %d, want 409", rec.Code)
	}
}

func TestAlmanacPage_HTML(t *testing.T) {
	handler, _ := serve(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "天机黄历") {
		t.Error("page missing almanac heading")
	}
	// Markdown table should have been converted to HTML
	if !strings.Contains(body, "<table>") {
		t.Error("page missing rendered bonus table")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestParseParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=5&flag=true&bad=abc", nil)

	if got := parseIntParam(req, "limit", 20); got != 5 {
		t.Errorf("limit = %d, want 5", got)
	}
	if got := parseIntParam(req, "bad", 20); got != 20 {
		t.Errorf("bad int = %d, want default 20", got)
	}
	if got := parseIntParam(req, "missing", 7); got != 7 {
		t.Errorf("missing = %d, want 7", got)
	}
	if !parseBoolParam(req, "flag") {
		t.Error("flag should parse as true")
	}
	if parseBoolParam(req, "missing") {
		t.Error("missing bool should be false")
	}
}
