package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tianji/internal/config"
	"tianji/internal/db"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

// resultPayload unmarshals a success result's JSON text.
func resultPayload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("content is not TextContent")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal result payload: %v", err)
	}
	return payload
}

func TestHandleDivine(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "divine valid chart",
			args: map[string]any{
				"name":  "test seeker",
				"year":  1990,
				"month": 5,
				"day":   15,
				"hour":  14,
			},
			wantError: false,
		},
		{
			name: "divine invalid date",
			args: map[string]any{
				"year":  1990,
				"month": 2,
				"day":   30,
				"hour":  14,
			},
			wantError: true,
			errorCode: "INVALID_DATE",
		},
		{
			name: "divine out-of-range hour",
			args: map[string]any{
				"year":  1990,
				"month": 5,
				"day":   15,
				"hour":  24,
			},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name: "divine duplicate name with mode:error",
			args: map[string]any{
				"name":  "test seeker", // already exists from first test
				"year":  1991,
				"month": 6,
				"day":   16,
				"hour":  8,
			},
			wantError: true,
			errorCode: "NAME_ALREADY_EXISTS",
		},
		{
			name: "divine duplicate name with mode:replace",
			args: map[string]any{
				"name":  "test seeker",
				"year":  1991,
				"month": 6,
				"day":   16,
				"hour":  8,
				"mode":  "replace",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleDivine(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Error("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
				return
			}

			if result.IsError {
				t.Fatalf("unexpected error result: %+v", result)
			}
			payload := resultPayload(t, result)
			if payload["spiritualRoot"] == nil {
				t.Error("result missing spiritualRoot")
			}
		})
	}
}

func TestHandleFetch_RoundTrip(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	divineResult, err := h.HandleDivine(ctx, makeRequest(map[string]any{
		"name": "round trip", "year": 1990, "month": 5, "day": 15, "hour": 14,
	}))
	if err != nil || divineResult.IsError {
		t.Fatalf("divine failed: %v %+v", err, divineResult)
	}
	id, _ := resultPayload(t, divineResult)["id"].(string)
	if id == "" {
		t.Fatal("divine result missing id")
	}

	fetchResult, err := h.HandleFetch(ctx, makeRequest(map[string]any{"name": "Round  TRIP"}))
	if err != nil || fetchResult.IsError {
		t.Fatalf("fetch failed: %v %+v", err, fetchResult)
	}
	if got, _ := resultPayload(t, fetchResult)["id"].(string); got != id {
		t.Errorf("fetched id = %q, want %q", got, id)
	}

	notFound, err := h.HandleFetch(ctx, makeRequest(map[string]any{"id": "nonexistent"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !notFound.IsError {
		t.Error("expected error result for unknown id")
	}
	assertErrorCode(t, notFound, "NOT_FOUND")
}

func TestHandleSnapshot(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	result, err := h.HandleSnapshot(ctx, makeRequest(map[string]any{
		"element": "金",
		"weather": "雷暴",
	}))
	if err != nil || result.IsError {
		t.Fatalf("snapshot failed: %v %+v", err, result)
	}
	payload := resultPayload(t, result)
	if payload["bonus"] == nil {
		t.Error("result missing bonus")
	}
	weather, _ := payload["weather"].(map[string]any)
	if weather["weather"] != "雷暴" {
		t.Errorf("weather condition = %v, want 雷暴", weather["weather"])
	}

	bad, err := h.HandleSnapshot(ctx, makeRequest(map[string]any{"element": "gold"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, bad, "INVALID_REQUEST")
}

func TestHandleCultivateLifecycle(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	if r, err := h.HandleDivine(ctx, makeRequest(map[string]any{
		"name": "mcp cultivator", "year": 1990, "month": 5, "day": 15, "hour": 14,
	})); err != nil || r.IsError {
		t.Fatalf("divine failed: %v %+v", err, r)
	}

	start, err := h.HandleCultivateStart(ctx, makeRequest(map[string]any{"name": "mcp cultivator"}))
	if err != nil || start.IsError {
		t.Fatalf("start failed: %v %+v", err, start)
	}

	// Double start conflicts
	again, err := h.HandleCultivateStart(ctx, makeRequest(map[string]any{"name": "mcp cultivator"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, again, "CONFLICT")

	end, err := h.HandleCultivateEnd(ctx, makeRequest(map[string]any{"name": "mcp cultivator"}))
	if err != nil || end.IsError {
		t.Fatalf("end failed: %v %+v", err, end)
	}
	payload := resultPayload(t, end)
	if payload["expGained"] == nil {
		t.Error("result missing expGained")
	}

	status, err := h.HandleCultivateStatus(ctx, makeRequest(map[string]any{"name": "mcp cultivator"}))
	if err != nil || status.IsError {
		t.Fatalf("status failed: %v %+v", err, status)
	}
	if realm, _ := resultPayload(t, status)["realm"].(map[string]any); realm["name"] == nil {
		t.Error("status missing realm name")
	}
}

func TestHandleWisdomAndMoon(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	daily, err := h.HandleWisdomDaily(ctx, makeRequest(map[string]any{"element": "木"}))
	if err != nil || daily.IsError {
		t.Fatalf("wisdom_daily failed: %v %+v", err, daily)
	}
	if quote, _ := resultPayload(t, daily)["quote"].(map[string]any); quote["content"] == nil {
		t.Error("daily quote missing content")
	}

	random, err := h.HandleWisdomRandom(ctx, makeRequest(map[string]any{"category": "bogus"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, random, "INVALID_REQUEST")

	moon, err := h.HandleMoon(ctx, makeRequest(nil))
	if err != nil || moon.IsError {
		t.Fatalf("moon failed: %v %+v", err, moon)
	}
	if phase := resultPayload(t, moon); phase["name"] == nil {
		t.Error("moon result missing name")
	}
}

func TestRegistry(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("AllToolNames len = %d, want %d", len(names), len(toolRegistry))
	}

	if got := GetTypeForTool("chart_divine"); got != "chart" {
		t.Errorf("GetTypeForTool = %q, want chart", got)
	}
	if got := GetTypeForTool("noprefix"); got != "" {
		t.Errorf("GetTypeForTool = %q, want empty", got)
	}

	unknown := ValidateDisabledTools([]string{"chart_divine", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("ValidateDisabledTools = %v", unknown)
	}
}

func TestNewServer_DisabledTools(t *testing.T) {
	database, cfg := testSetup(t)
	cfg.DisabledTools = []string{"chart_delete", "not_a_tool"}

	// Unknown names are ignored; registration must not panic
	s := NewServer(database, cfg, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
