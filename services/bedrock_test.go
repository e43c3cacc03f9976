package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// fakeBedrockClient scripts the InvokeModel outcome.
type fakeBedrockClient struct {
	response ClaudeResponse
	err      error
	lastBody []byte
}

func (f *fakeBedrockClient) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastBody = params.Body
	if f.err != nil {
		return nil, f.err
	}
	body, _ := json.Marshal(f.response)
	return &bedrockruntime.InvokeModelOutput{Body: body}, nil
}

func claudeText(text string) ClaudeResponse {
	var resp ClaudeResponse
	resp.Content = []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{{Type: "text", Text: text}}
	return resp
}

func TestBedrockService_Generate(t *testing.T) {
	freshRegistry(t)
	client := &fakeBedrockClient{response: claudeText("bedrock analysis")}
	svc := newBedrockServiceWithClient(client, "anthropic.claude-3-haiku-20240307-v1:0", 2000)

	text, err := svc.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "bedrock analysis" {
		t.Errorf("expected 'bedrock analysis', got %q", text)
	}

	// Verify the request carried both prompts in the Claude format
	var req ClaudeRequest
	if err := json.Unmarshal(client.lastBody, &req); err != nil {
		t.Fatalf("request body not valid JSON: %v", err)
	}
	if req.System != "system prompt" {
		t.Errorf("expected system prompt in request, got %q", req.System)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "user prompt" {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("expected max_tokens=2000, got %d", req.MaxTokens)
	}
}

func TestBedrockService_Generate_InvokeError(t *testing.T) {
	freshRegistry(t)
	client := &fakeBedrockClient{err: errors.New("throttled")}
	svc := newBedrockServiceWithClient(client, "model", 2000)

	_, err := svc.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error from failed invocation")
	}
}

func TestBedrockService_Generate_EmptyContent(t *testing.T) {
	freshRegistry(t)
	client := &fakeBedrockClient{response: ClaudeResponse{}}
	svc := newBedrockServiceWithClient(client, "model", 2000)

	_, err := svc.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestBedrockService_Name(t *testing.T) {
	svc := newBedrockServiceWithClient(&fakeBedrockClient{}, "model", 100)
	if svc.Name() != "bedrock" {
		t.Errorf("expected name 'bedrock', got %s", svc.Name())
	}
}
