package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "embedded templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderWrapsPageInLayout(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, "pages/home.html", TemplateData{
		Title:       "Unit economics projection",
		CurrentPath: "/",
		Data:        struct{ ConfigJSON, Error string }{ConfigJSON: "{}"},
	})
	require.NoError(t, err)

	body := rr.Body.String()
	assert.Contains(t, body, "<title>Unit economics projection</title>")
	assert.Contains(t, body, "config_json")
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	assert.Error(t, engine.Render(rr, "pages/missing.html", TemplateData{}))
}
