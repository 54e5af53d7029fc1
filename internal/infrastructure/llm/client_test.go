package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCompletionRequest_TemperatureSurvivesSerialization(t *testing.T) {
	c := &OpenAIClient{model: "gpt-4o-mini"}

	req := c.completionRequest("system", "prompt")
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !strings.Contains(string(b), `"temperature"`) {
		t.Fatalf("temperature must reach the wire request, got %s", b)
	}
	if req.Temperature <= 0 || req.Temperature > 1e-30 {
		t.Fatalf("temperature must be effectively zero, got %v", req.Temperature)
	}
}

func TestCompletionRequest_CarriesBothMessages(t *testing.T) {
	c := &OpenAIClient{model: "gpt-4o-mini"}

	req := c.completionRequest("sys", "usr")
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != RoleSystem || req.Messages[0].Content != "sys" {
		t.Fatalf("unexpected system message %+v", req.Messages[0])
	}
	if req.Messages[1].Role != RoleUser || req.Messages[1].Content != "usr" {
		t.Fatalf("unexpected user message %+v", req.Messages[1])
	}
}
