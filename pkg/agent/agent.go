package agent

// Package agent answers natural-language queries about an API by letting a
// chat model plan calls through the direct client's verbs, exposed as tools.

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/apiki-hq/apiki/pkg/client"
)

// Step records one tool invocation made while answering a query.
type Step struct {
	Tool      string `json:"tool"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
}

// Response is the outcome of one agent run. Failures are folded into Output
// rather than returned as errors, mirroring the direct client's contract.
type Response struct {
	Output string `json:"output"`
	Steps  []Step `json:"steps,omitempty"`
}

// Agent plans and executes API calls from natural-language queries.
type Agent struct {
	cfg    Config
	apiKey string
	api    *client.Client
	llm    *resty.Client
	tools  []toolDef
	log    *zap.SugaredLogger
}

// New builds the inner direct client (a failed spec fetch is fatal here too)
// and prepares the LLM transport. It errors when no API key is configured and
// none is found in OPENAI_API_KEY.
func New(ctx context.Context, cfg Config) (*Agent, error) {
	cfg = cfg.withDefaults()

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no LLM API key configured (set OPENAI_API_KEY)")
	}

	api, err := client.New(ctx, client.Config{
		OpenAPIURL:         cfg.OpenAPIURL,
		APIBaseURL:         cfg.APIBaseURL,
		Headers:            cfg.Headers,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		Verbose:            cfg.Verbose,
		Logger:             cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	llm := resty.New()
	llm.SetTimeout(cfg.Timeout)

	return &Agent{
		cfg:    cfg,
		apiKey: apiKey,
		api:    api,
		llm:    llm,
		tools:  buildTools(),
		log:    cfg.Logger,
	}, nil
}

// Client exposes the inner direct client.
func (a *Agent) Client() *client.Client { return a.api }

// Run answers one query. The loop alternates model round-trips with tool
// execution until the model replies without tool calls or MaxSteps round-trips
// have been spent. Any failure becomes a Response with an Error: output.
func (a *Agent) Run(ctx context.Context, query string) Response {
	messages := []chatMessage{
		{Role: "system", Content: a.systemPrompt()},
		{Role: "user", Content: query},
	}

	var steps []Step

	for i := 0; i < a.cfg.MaxSteps; i++ {
		msg, err := a.complete(ctx, messages)
		if err != nil {
			a.log.Warnw("agent run failed", "error", err)
			return Response{Output: fmt.Sprintf("Error: %v", err), Steps: steps}
		}

		if len(msg.ToolCalls) == 0 {
			return Response{Output: msg.Content, Steps: steps}
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			if a.cfg.Verbose {
				a.log.Infow("executing tool", "tool", call.Function.Name, "arguments", call.Function.Arguments)
			}
			result := a.execTool(ctx, call.Function.Name, call.Function.Arguments)
			steps = append(steps, Step{
				Tool:      call.Function.Name,
				Arguments: call.Function.Arguments,
				Result:    result,
			})
			messages = append(messages, chatMessage{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return Response{
		Output: fmt.Sprintf("Error: no final answer after %d steps", a.cfg.MaxSteps),
		Steps:  steps,
	}
}

var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// systemPrompt summarizes the indexed endpoints so the model can plan calls
// without an exploratory round-trip.
func (a *Agent) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an assistant that answers questions by calling an HTTP API. ")
	b.WriteString("Use the provided tools to inspect endpoints and make requests. ")
	b.WriteString("The API exposes the following endpoints:\n")

	index := a.api.ListEndpoints()
	paths := make([]string, 0, len(index))
	for path := range index {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, method := range methodOrder {
			op, ok := index[path][method]
			if !ok {
				continue
			}
			line := fmt.Sprintf("- %s %s", method, path)
			if op.Summary != "" {
				line += " - " + op.Summary
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
