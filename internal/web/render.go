package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"tianji/internal/errors"
)

// almanacPage wraps the goldmark-rendered almanac in a minimal layout.
var almanacPage = template.Must(template.New("almanac").Parse(`<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>天机 · 黄历</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: serif; line-height: 1.7; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.8rem; }
blockquote { border-left: 3px solid #b8860b; margin-left: 0; padding-left: 1rem; color: #444; }
footer { margin-top: 3rem; color: #888; font-size: 0.8rem; }
</style>
</head>
<body>
{{.Content}}
<footer>tianji {{.Version}}</footer>
</body>
</html>
`))

// renderMarkdown converts almanac markdown to an HTML page.
func renderMarkdown(w http.ResponseWriter, version, markdown string) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &body); err != nil {
		log.Printf("markdown conversion error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	err := almanacPage.Execute(&page, struct {
		Content template.HTML
		Version string
	}{
		Content: template.HTML(body.String()),
		Version: version,
	})
	if err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

// renderJSON writes a JSON response with the given status code.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("json encoding error: %v", err)
	}
}

// renderError writes a structured JSON error. Internal errors hide
// their details so SQL text and file paths never reach clients.
func renderError(w http.ResponseWriter, err error) {
	var tErr *errors.TianjiError
	if !stderrors.As(err, &tErr) {
		tErr = errors.NewInternal(err)
	}

	errorObj := map[string]any{
		"code":    string(tErr.Code),
		"message": tErr.Message,
		"status":  tErr.Status,
	}
	if tErr.Code != errors.ErrInternal && tErr.Details != nil {
		errorObj["details"] = tErr.Details
	}

	renderJSON(w, tErr.Status, map[string]any{"error": errorObj})
}
