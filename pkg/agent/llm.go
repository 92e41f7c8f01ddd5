package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// OpenAI-compatible wire types for the chat completions endpoint.

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type functionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []toolDef     `json:"tools,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatChoice struct {
	FinishReason string      `json:"finish_reason"`
	Message      chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete performs one chat completions round-trip.
func (a *Agent) complete(ctx context.Context, messages []chatMessage) (chatMessage, error) {
	body := chatRequest{
		Model:       a.cfg.Model,
		Messages:    messages,
		Tools:       a.tools,
		Temperature: a.cfg.Temperature,
	}

	endpoint := strings.TrimSuffix(a.cfg.LLMBaseURL, "/") + "/chat/completions"

	var parsed chatResponse
	resp, err := a.llm.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+a.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&parsed).
		Post(endpoint)
	if err != nil {
		return chatMessage{}, fmt.Errorf("chat completions request: %w", err)
	}
	if resp.IsError() {
		return chatMessage{}, fmt.Errorf("chat completions status %d: %s", resp.StatusCode(), llmErrMessage(resp.Body()))
	}
	if len(parsed.Choices) == 0 {
		return chatMessage{}, fmt.Errorf("chat completions returned no choices")
	}

	return parsed.Choices[0].Message, nil
}

func llmErrMessage(body []byte) string {
	var parsed chatErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
