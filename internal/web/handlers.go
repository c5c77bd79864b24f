package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"tianji/internal/celestial"
	"tianji/internal/config"
	"tianji/internal/errors"
	"tianji/internal/ops"
)

// Handlers contains HTTP route handlers for the web surface.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	version string
}

// divineBody is the JSON request body for POST /api/charts.
type divineBody struct {
	Name     *string `json:"name,omitempty"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Day      int     `json:"day"`
	Hour     int     `json:"hour"`
	Advanced bool    `json:"advanced,omitempty"`
	Mode     string  `json:"mode,omitempty"`
}

// HandleDivine handles POST /api/charts — cast and store a chart.
func (h *Handlers) HandleDivine(w http.ResponseWriter, r *http.Request) {
	var body divineBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		renderError(w, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	result, err := ops.Divine(r.Context(), h.db, ops.DivineInput{
		Name:     body.Name,
		Year:     body.Year,
		Month:    body.Month,
		Day:      body.Day,
		Hour:     body.Hour,
		Advanced: body.Advanced,
		Mode:     ops.DivineMode(body.Mode),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusCreated, result)
}

// HandleList handles GET /api/charts.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db, ops.ListInput{
		Limit:          parseIntParam(r, "limit", 0),
		Offset:         parseIntParam(r, "offset", 0),
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleFetch handles GET /api/charts/{id}.
func (h *Handlers) HandleFetch(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Fetch(h.db, ops.FetchInput{
		ID:             r.PathValue("id"),
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleDelete handles DELETE /api/charts/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{
		ID: r.PathValue("id"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleCultivateStart handles POST /api/charts/{id}/cultivate/start.
func (h *Handlers) HandleCultivateStart(w http.ResponseWriter, r *http.Request) {
	result, err := ops.CultivateStart(r.Context(), h.db, ops.CultivateStartInput{
		ID: r.PathValue("id"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleCultivateEnd handles POST /api/charts/{id}/cultivate/end.
func (h *Handlers) HandleCultivateEnd(w http.ResponseWriter, r *http.Request) {
	result, err := ops.CultivateEnd(r.Context(), h.db, h.cfg, ops.CultivateEndInput{
		ID:      r.PathValue("id"),
		Weather: weatherParams(r),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleCultivateStatus handles GET /api/charts/{id}/cultivate.
func (h *Handlers) HandleCultivateStatus(w http.ResponseWriter, r *http.Request) {
	result, err := ops.CultivateStatus(h.db, ops.CultivateStatusInput{
		ID:           r.PathValue("id"),
		SessionLimit: parseIntParam(r, "session_limit", 0),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleSnapshot handles GET /api/celestial.
func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Snapshot(h.db, h.cfg, ops.SnapshotInput{
		ID:      r.URL.Query().Get("id"),
		Name:    r.URL.Query().Get("name"),
		Element: r.URL.Query().Get("element"),
		Weather: weatherParams(r),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleWisdom handles GET /api/wisdom.
func (h *Handlers) HandleWisdom(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Wisdom(h.db, ops.WisdomInput{
		ID:       r.URL.Query().Get("id"),
		Name:     r.URL.Query().Get("name"),
		Element:  r.URL.Query().Get("element"),
		Category: r.URL.Query().Get("category"),
		Random:   parseBoolParam(r, "random"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleAlmanac handles GET /api/almanac.
func (h *Handlers) HandleAlmanac(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Almanac(h.db, h.cfg, ops.AlmanacInput{
		ID:      r.URL.Query().Get("id"),
		Name:    r.URL.Query().Get("name"),
		Element: r.URL.Query().Get("element"),
		Weather: weatherParams(r),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleAlmanacPage handles GET / — the almanac rendered as HTML.
func (h *Handlers) HandleAlmanacPage(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Almanac(h.db, h.cfg, ops.AlmanacInput{
		Name:    r.URL.Query().Get("name"),
		Element: r.URL.Query().Get("element"),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderMarkdown(w, h.version, result.Markdown)
}

// weatherParams builds a weather override from query parameters, or nil
// when none are present.
func weatherParams(r *http.Request) *celestial.Reading {
	condition := r.URL.Query().Get("weather")
	tempStr := r.URL.Query().Get("temperature")
	if condition == "" && tempStr == "" {
		return nil
	}

	reading := celestial.DefaultReading()
	if condition != "" {
		reading.Condition = condition
	}
	if tempStr != "" {
		if temp, err := strconv.Atoi(tempStr); err == nil {
			reading.Temperature = temp
		}
	}
	return &reading
}

// parseIntParam reads an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam reads a boolean query parameter; only "true" and "1"
// count as true.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
