package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/postforge/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeHTTPClient struct {
	handler func(r *http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return f.handler(req)
}

// jsonResponse 构造一个带 JSON Body 的响应。
func jsonResponse(status int, payload interface{}) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// chatReply 构造一个成功的 chat completions 响应。
func chatReply(content string) *http.Response {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20},
	})
}

func setupGeneratorTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate system settings: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func newTestGenerator(t *testing.T, handler func(r *http.Request) (*http.Response, error)) *GeneratorService {
	t.Helper()

	system := NewSystemSettingService(db.DB)
	if _, err := system.UpdateSettings(SystemSettingsInput{
		AIProvider: AIProviderGroq,
		GroqAPIKey: "gsk-test",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	svc := NewGeneratorService(system)
	svc.SetGroqBaseURL("https://groq.test/openai/v1")
	svc.SetHTTPClient(fakeHTTPClient{handler: handler})
	return svc
}

func decodeChatRequest(t *testing.T, r *http.Request) chatCompletionRequest {
	t.Helper()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read request body: %v", err)
	}
	var payload chatCompletionRequest
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	return payload
}

func TestGeneratePostRequiresTopic(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("empty topic must be rejected before any external call")
		return nil, nil
	})

	if _, err := svc.GeneratePost(context.Background(), GeneratePostInput{Topic: "   "}); !errors.Is(err, ErrTopicRequired) {
		t.Fatalf("expected ErrTopicRequired, got %v", err)
	}
}

func TestGeneratePostSendsExpectedPayload(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk-test" {
			t.Fatalf("unexpected authorization header %s", got)
		}

		payload := decodeChatRequest(t, r)
		if payload.Model != defaultGroqGeneratorModel {
			t.Fatalf("unexpected model %s", payload.Model)
		}
		if payload.Temperature != postTemperature {
			t.Fatalf("unexpected temperature %v", payload.Temperature)
		}
		if payload.MaxTokens != postMaxTokens {
			t.Fatalf("unexpected max tokens %d", payload.MaxTokens)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(payload.Messages))
		}
		if payload.Messages[0].Role != "system" || !strings.Contains(payload.Messages[0].Content, "LinkedIn content creator") {
			t.Fatalf("unexpected system message %+v", payload.Messages[0])
		}
		if !strings.Contains(payload.Messages[1].Content, "remote onboarding") {
			t.Fatalf("user prompt must mention the topic: %q", payload.Messages[1].Content)
		}
		if !strings.Contains(payload.Messages[1].Content, "casual") {
			t.Fatalf("user prompt must use the casual template: %q", payload.Messages[1].Content)
		}

		return chatReply("  Generated post body.  "), nil
	})

	post, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		Topic: "remote onboarding",
		Tone:  ToneCasual,
	})
	if err != nil {
		t.Fatalf("generate post failed: %v", err)
	}
	if post != "Generated post body." {
		t.Fatalf("expected trimmed reply, got %q", post)
	}
}

func TestGeneratePostUnknownToneFallsBackToProfessional(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		payload := decodeChatRequest(t, r)
		if !strings.Contains(payload.Messages[1].Content, "professional LinkedIn post") {
			t.Fatalf("expected professional template, got %q", payload.Messages[1].Content)
		}
		return chatReply("post"), nil
	})

	if _, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		Topic: "ai",
		Tone:  "sarcastic",
	}); err != nil {
		t.Fatalf("generate post failed: %v", err)
	}
}

func TestGenerateHashtagsRecoversFromChatter(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("Sure! #Tech #AI rocks #Growth"), nil
	})

	hashtags, err := svc.GenerateHashtags(context.Background(), "tech growth")
	if err != nil {
		t.Fatalf("generate hashtags failed: %v", err)
	}
	if hashtags != "#Tech #AI #Growth" {
		t.Fatalf("expected recovered hashtags, got %q", hashtags)
	}
}

func TestGenerateHashtagsKeepsWellFormedReply(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("#Marketing #ContentStrategy"), nil
	})

	hashtags, err := svc.GenerateHashtags(context.Background(), "marketing")
	if err != nil {
		t.Fatalf("generate hashtags failed: %v", err)
	}
	if hashtags != "#Marketing #ContentStrategy" {
		t.Fatalf("unexpected hashtags %q", hashtags)
	}
}

func TestGenerateHooksParsesPrefixedLines(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("Hook 1: First hook\nHook 2: Second hook\nHook 3: Third hook"), nil
	})

	hooks, err := svc.GenerateHooks(context.Background(), "leadership")
	if err != nil {
		t.Fatalf("generate hooks failed: %v", err)
	}
	want := []string{"First hook", "Second hook", "Third hook"}
	if !reflect.DeepEqual(hooks, want) {
		t.Fatalf("expected %v, got %v", want, hooks)
	}
}

func TestGenerateHooksFallsBackToWholeReply(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("Here are some ideas without the agreed format."), nil
	})

	hooks, err := svc.GenerateHooks(context.Background(), "leadership")
	if err != nil {
		t.Fatalf("generate hooks failed: %v", err)
	}
	if len(hooks) != 1 || hooks[0] != "Here are some ideas without the agreed format." {
		t.Fatalf("expected whole reply as single hook, got %v", hooks)
	}
}

func TestRefinePostRejectsUnknownKind(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("unknown refinement kinds must be rejected before any external call")
		return nil, nil
	})

	_, err := svc.RefinePost(context.Background(), "post body", "translate")
	if !errors.Is(err, ErrInvalidRefinement) {
		t.Fatalf("expected ErrInvalidRefinement, got %v", err)
	}
}

func TestRefinePostAcceptsLegacyKindAlias(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		payload := decodeChatRequest(t, r)
		if !strings.Contains(payload.Messages[1].Content, "shorter") {
			t.Fatalf("expected shorten template, got %q", payload.Messages[1].Content)
		}
		if !strings.Contains(payload.Messages[1].Content, "original body") {
			t.Fatalf("template must embed the post, got %q", payload.Messages[1].Content)
		}
		return chatReply("shorter body"), nil
	})

	refined, err := svc.RefinePost(context.Background(), "original body", "make_shorter")
	if err != nil {
		t.Fatalf("refine failed: %v", err)
	}
	if refined != "shorter body" {
		t.Fatalf("unexpected refined post %q", refined)
	}
}

func TestGenerateVariationsEscalatesTemperature(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	var temperatures []float64
	calls := 0
	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		payload := decodeChatRequest(t, r)
		temperatures = append(temperatures, payload.Temperature)
		calls++
		return chatReply(fmt.Sprintf("variation %d", calls)), nil
	})

	variations, err := svc.GenerateVariations(context.Background(), GeneratePostInput{Topic: "ai"}, 5)
	if err != nil {
		t.Fatalf("generate variations failed: %v", err)
	}
	if len(variations) != 3 {
		t.Fatalf("count must be capped at 3, got %d", len(variations))
	}
	if !reflect.DeepEqual(temperatures, []float64{0.7, 0.85, 0.95}) {
		t.Fatalf("unexpected temperatures %v", temperatures)
	}
	if variations[0] == variations[1] {
		t.Fatal("variations must be independent replies")
	}
}

func TestPredictEngagementParsesScores(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	reply := strings.Join([]string{
		"Hook: 22/25 - strong opener",
		"Content: 20/25 - useful insight",
		"Readability: 18/20 - good breaks",
		"CTA: 12/15 - clear ask",
		"Authenticity: 13/15 - genuine",
		"Total: 85/100",
		"Prediction: Good",
	}, "\n")

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		payload := decodeChatRequest(t, r)
		if payload.Temperature != engagementTemperature {
			t.Fatalf("unexpected temperature %v", payload.Temperature)
		}
		return chatReply(reply), nil
	})

	score, err := svc.PredictEngagement(context.Background(), "post body")
	if err != nil {
		t.Fatalf("predict engagement failed: %v", err)
	}
	if score.Hook != 22 || score.Content != 20 || score.Readability != 18 ||
		score.CTA != 12 || score.Authenticity != 13 || score.Total != 85 {
		t.Fatalf("unexpected scores %+v", score)
	}
	if score.Prediction != "Good" {
		t.Fatalf("unexpected prediction %q", score.Prediction)
	}
	if score.Details != reply {
		t.Fatal("details must retain the raw reply")
	}
}

func TestPredictEngagementToleratesMalformedReply(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("Hook: 22/25\nContent: not-a-number/25\nTotal: 40/100"), nil
	})

	score, err := svc.PredictEngagement(context.Background(), "post body")
	if err != nil {
		t.Fatalf("malformed replies must not fail the call: %v", err)
	}
	if score.Hook != 22 {
		t.Fatalf("expected hook 22, got %d", score.Hook)
	}
	if score.Content != 0 {
		t.Fatalf("non-numeric field must stay zero, got %d", score.Content)
	}
	if score.Readability != 0 {
		t.Fatalf("missing field must stay zero, got %d", score.Readability)
	}
	if score.Total != 40 {
		t.Fatalf("expected total 40, got %d", score.Total)
	}
	if score.Prediction != "Unknown" {
		t.Fatalf("expected Unknown prediction, got %q", score.Prediction)
	}
}

func TestAddEmojisReturnsRawReply(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		payload := decodeChatRequest(t, r)
		if !strings.Contains(payload.Messages[1].Content, "plain body") {
			t.Fatalf("prompt must embed the post, got %q", payload.Messages[1].Content)
		}
		return chatReply("body with 🚀"), nil
	})

	got, err := svc.AddEmojis(context.Background(), "plain body", "launch")
	if err != nil {
		t.Fatalf("add emojis failed: %v", err)
	}
	if got != "body with 🚀" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestGenerateCTAsParsesNumberedLines(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("1. Share your story below.\n2. Tag a colleague.\n3. What would you add?"), nil
	})

	ctas, err := svc.GenerateCTAs(context.Background(), "networking")
	if err != nil {
		t.Fatalf("generate ctas failed: %v", err)
	}
	want := []string{"Share your story below.", "Tag a colleague.", "What would you add?"}
	if !reflect.DeepEqual(ctas, want) {
		t.Fatalf("expected %v, got %v", want, ctas)
	}
}

func TestGeneratorSurfacesServiceError(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		}), nil
	})

	_, err := svc.GeneratePost(context.Background(), GeneratePostInput{Topic: "ai"})
	if err == nil {
		t.Fatal("expected service error")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("error must carry the upstream message, got %v", err)
	}
}

func TestGeneratorLogsModelReplyOnly(t *testing.T) {
	cleanup := setupGeneratorTestDB(t)
	defer cleanup()

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	svc := newTestGenerator(t, func(r *http.Request) (*http.Response, error) {
		return chatReply("Generated body"), nil
	})

	if _, err := svc.GeneratePost(context.Background(), GeneratePostInput{Topic: "ai"}); err != nil {
		t.Fatalf("generate post: %v", err)
	}

	output := logged.String()
	if !strings.Contains(output, "[AI POST] reply") {
		t.Fatalf("expected a reply log line, got: %s", output)
	}
	if strings.Contains(output, "prompt") {
		t.Fatalf("prompts must not be logged, got: %s", output)
	}
}
