package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bedtime-story-api/internal/application/story"
	"bedtime-story-api/internal/interfaces/http/dto"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := story.NewService(
		story.NewPromptBuilder(),
		story.NewGenerator(nil, story.DefaultGenerationConfig("none", "none")),
		story.NewTranslator(nil, story.TranslationConfig{}),
		story.NewCatalog(),
		nil,
		nil,
	)

	engine := gin.New()
	storyHandler := NewStoryHandler(svc)
	taleHandler := NewTaleHandler(svc)
	engine.POST("/v1/stories/generate", storyHandler.Generate)
	engine.GET("/v1/tales", taleHandler.List)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTaleListEndpoint(t *testing.T) {
	engine := newTestEngine()

	w := doJSON(t, engine, http.MethodGet, "/v1/tales", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp dto.Response[[]dto.TaleDTO]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Data) == 0 {
		t.Fatal("tale catalog must not be empty")
	}

	ids := make(map[string]bool, len(resp.Data))
	for _, tale := range resp.Data {
		ids[tale.ID] = true
	}
	// 目录包含 surprise 哨兵和具体童话
	if !ids["surprise"] || !ids["cinderella"] {
		t.Errorf("catalog ids = %v", ids)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing mode", `{"duration_minutes": 5}`, http.StatusBadRequest},
		{"zero duration", `{"mode": "original", "duration_minutes": 0}`, http.StatusBadRequest},
		{"duration over limit", `{"mode": "original", "duration_minutes": 90}`, http.StatusBadRequest},
		{"unknown mode", `{"mode": "epic", "duration_minutes": 5}`, http.StatusBadRequest},
		{"unsupported language", `{"mode": "original", "duration_minutes": 5, "language": "Klingon"}`, http.StatusBadRequest},
		{"missing modification", `{"mode": "classic_mixed", "duration_minutes": 5}`, http.StatusBadRequest},
		{"unknown tale", `{"mode": "classic", "duration_minutes": 5, "tale_id": "no_such_tale"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/v1/stories/generate", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestGenerateEndpointLenientPersonalization(t *testing.T) {
	engine := newTestEngine()

	// 个性化字段格式异常时按缺失处理，不应出现 400；
	// 后端未配置导致生成失败，这里只断言校验层放行
	body := `{"mode": "original", "duration_minutes": 5, "personalization": {"tones": 42, "topics": {"x": 1}}}`
	w := doJSON(t, engine, http.MethodPost, "/v1/stories/generate", body)
	if w.Code == http.StatusBadRequest {
		t.Errorf("malformed personalization must not fail validation, body %s", w.Body.String())
	}
}
