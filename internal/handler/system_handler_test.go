package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func newSystemEngine(api *API) *gin.Engine {
	engine := gin.New()
	engine.GET("/settings", api.GetSystemSettings)
	engine.PUT("/settings", api.UpdateSystemSettings)
	engine.POST("/settings/test-ai", api.TestAIConnection)
	engine.GET("/analytics", api.GetAnalytics)
	return engine
}

func TestSystemSettingsHandlerRoundTrip(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	engine := newSystemEngine(api)

	w := performJSON(t, engine, http.MethodGet, "/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	decoded := decodeBody(t, w)
	settings, ok := decoded["settings"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing settings in %v", decoded)
	}
	if settings["siteName"] != "PostForge" || settings["aiProvider"] != "groq" {
		t.Fatalf("unexpected defaults %v", settings)
	}

	w = performJSON(t, engine, http.MethodPut, "/settings", gin.H{
		"siteName":    "Studio",
		"aiProvider":  "openai",
		"openaiApiKey": "sk-live",
		"defaultTone": "casual",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", w.Code, w.Body.String())
	}

	w = performJSON(t, engine, http.MethodGet, "/settings", nil)
	decoded = decodeBody(t, w)
	settings = decoded["settings"].(map[string]interface{})
	if settings["siteName"] != "Studio" || settings["aiProvider"] != "openai" {
		t.Fatalf("settings did not persist: %v", settings)
	}
	if settings["defaultTone"] != "casual" {
		t.Fatalf("default tone did not persist: %v", settings)
	}
}

func TestTestAIConnectionHandlerRejectsMissingKey(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	engine := newSystemEngine(api)

	w := performJSON(t, engine, http.MethodPost, "/settings/test-ai", gin.H{
		"provider": "groq",
		"apiKey":   "",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyticsHandler(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	engine := newSystemEngine(api)

	w := performJSON(t, engine, http.MethodGet, "/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	decoded := decodeBody(t, w)
	stats, ok := decoded["statistics"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing statistics in %v", decoded)
	}
	if stats["totalPosts"] != float64(0) || stats["mostUsedTone"] != "N/A" {
		t.Fatalf("unexpected empty statistics %v", stats)
	}
}
