package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tianji/internal/celestial"
	"tianji/internal/config"
	"tianji/internal/errors"
	"tianji/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// DivineRequest represents the arguments for chart_divine.
type DivineRequest struct {
	Name     *string `json:"name,omitempty"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Day      int     `json:"day"`
	Hour     int     `json:"hour"`
	Advanced bool    `json:"advanced,omitempty"`
	Mode     string  `json:"mode,omitempty"`
	Persist  *bool   `json:"persist,omitempty"`
}

// FetchRequest represents the arguments for chart_fetch.
type FetchRequest struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// ListRequest represents the arguments for chart_list.
type ListRequest struct {
	Limit          int  `json:"limit,omitempty"`
	Offset         int  `json:"offset,omitempty"`
	IncludeDeleted bool `json:"include_deleted,omitempty"`
}

// DeleteRequest represents the arguments for chart_delete.
type DeleteRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SnapshotRequest represents the arguments for celestial_now and the
// weather overrides shared with cultivate_end.
type SnapshotRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Element     string `json:"element,omitempty"`
	Weather     string `json:"weather,omitempty"`
	Temperature *int   `json:"temperature,omitempty"`
}

// WisdomRequest represents the arguments for wisdom_daily and wisdom_random.
type WisdomRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Element  string `json:"element,omitempty"`
	Category string `json:"category,omitempty"`
}

// CultivateRequest represents the arguments for the cultivate tools.
type CultivateRequest struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Weather      string `json:"weather,omitempty"`
	Temperature  *int   `json:"temperature,omitempty"`
	SessionLimit int    `json:"session_limit,omitempty"`
}

// HandleDivine handles the chart_divine tool call.
func (h *Handlers) HandleDivine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DivineRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Divine(ctx, h.db, ops.DivineInput{
		Name:     input.Name,
		Year:     input.Year,
		Month:    input.Month,
		Day:      input.Day,
		Hour:     input.Hour,
		Advanced: input.Advanced,
		Mode:     ops.DivineMode(input.Mode),
		Persist:  input.Persist,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the chart_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, ops.FetchInput{
		ID:             input.ID,
		Name:           input.Name,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the chart_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the chart_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{
		ID:   input.ID,
		Name: input.Name,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSnapshot handles the celestial_now tool call.
func (h *Handlers) HandleSnapshot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SnapshotRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Snapshot(h.db, h.cfg, ops.SnapshotInput{
		ID:      input.ID,
		Name:    input.Name,
		Element: input.Element,
		Weather: readingOverride(input.Weather, input.Temperature),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleMoon handles the celestial_moon tool call.
func (h *Handlers) HandleMoon(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(celestial.MoonPhaseAt(time.Now()))
}

// HandleWisdomDaily handles the wisdom_daily tool call.
func (h *Handlers) HandleWisdomDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WisdomRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Wisdom(h.db, ops.WisdomInput{
		ID:      input.ID,
		Name:    input.Name,
		Element: input.Element,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleWisdomRandom handles the wisdom_random tool call.
func (h *Handlers) HandleWisdomRandom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WisdomRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Wisdom(h.db, ops.WisdomInput{
		ID:       input.ID,
		Name:     input.Name,
		Element:  input.Element,
		Category: input.Category,
		Random:   true,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCultivateStart handles the cultivate_start tool call.
func (h *Handlers) HandleCultivateStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CultivateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CultivateStart(ctx, h.db, ops.CultivateStartInput{
		ID:   input.ID,
		Name: input.Name,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCultivateEnd handles the cultivate_end tool call.
func (h *Handlers) HandleCultivateEnd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CultivateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CultivateEnd(ctx, h.db, h.cfg, ops.CultivateEndInput{
		ID:      input.ID,
		Name:    input.Name,
		Weather: readingOverride(input.Weather, input.Temperature),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCultivateStatus handles the cultivate_status tool call.
func (h *Handlers) HandleCultivateStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CultivateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CultivateStatus(h.db, ops.CultivateStatusInput{
		ID:           input.ID,
		Name:         input.Name,
		SessionLimit: input.SessionLimit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleAlmanac handles the almanac_today tool call.
func (h *Handlers) HandleAlmanac(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WisdomRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Almanac(h.db, h.cfg, ops.AlmanacInput{
		ID:      input.ID,
		Name:    input.Name,
		Element: input.Element,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// readingOverride builds a partial weather reading from tool arguments,
// or nil when nothing was overridden.
func readingOverride(condition string, temperature *int) *celestial.Reading {
	if condition == "" && temperature == nil {
		return nil
	}
	r := celestial.DefaultReading()
	if condition != "" {
		r.Condition = condition
	}
	if temperature != nil {
		r.Temperature = *temperature
	}
	return &r
}

// errorResult creates an MCP error result from any error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := err.(*errors.TianjiError); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
