package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// The toolset handed to the model: endpoint discovery plus the five direct
// client verbs. Tool execution funnels through the direct client, so the
// agent inherits its never-throw normalization.

func pathParam() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Endpoint path, e.g. /v3/health",
	}
}

func paramsParam() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Query parameters as a JSON object",
	}
}

func dataParam() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "JSON request body",
	}
}

func objectSchema(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func buildTools() []toolDef {
	readSchema := objectSchema([]string{"path"}, map[string]any{
		"path":   pathParam(),
		"params": paramsParam(),
	})
	writeSchema := objectSchema([]string{"path"}, map[string]any{
		"path":   pathParam(),
		"params": paramsParam(),
		"data":   dataParam(),
	})

	return []toolDef{
		{Type: "function", Function: functionDef{
			Name:        "list_endpoints",
			Description: "List every endpoint the API exposes, grouped by path and method.",
			Parameters:  objectSchema(nil, map[string]any{}),
		}},
		{Type: "function", Function: functionDef{
			Name:        "endpoint_details",
			Description: "Describe one endpoint: parameters, request body schema, responses.",
			Parameters: objectSchema([]string{"path", "method"}, map[string]any{
				"path": pathParam(),
				"method": map[string]any{
					"type":        "string",
					"description": "HTTP method, e.g. GET",
				},
			}),
		}},
		{Type: "function", Function: functionDef{
			Name:        "api_get",
			Description: "Make a GET request to the API.",
			Parameters:  readSchema,
		}},
		{Type: "function", Function: functionDef{
			Name:        "api_post",
			Description: "Make a POST request to the API with a JSON body.",
			Parameters:  writeSchema,
		}},
		{Type: "function", Function: functionDef{
			Name:        "api_put",
			Description: "Make a PUT request to the API with a JSON body.",
			Parameters:  writeSchema,
		}},
		{Type: "function", Function: functionDef{
			Name:        "api_delete",
			Description: "Make a DELETE request to the API.",
			Parameters:  readSchema,
		}},
		{Type: "function", Function: functionDef{
			Name:        "api_patch",
			Description: "Make a PATCH request to the API with a JSON body.",
			Parameters:  writeSchema,
		}},
	}
}

type toolArgs struct {
	Path   string         `json:"path"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
	Data   any            `json:"data"`
}

// execTool runs one tool call and renders its outcome as JSON text for the
// model. Failures come back as text too; the loop never aborts on a bad call.
func (a *Agent) execTool(ctx context.Context, name, arguments string) string {
	var args toolArgs
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid tool arguments: %v", err)
		}
	}

	switch name {
	case "list_endpoints":
		return renderJSON(a.api.ListEndpoints())
	case "endpoint_details":
		op, err := a.api.EndpointDetails(args.Path, args.Method)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return renderJSON(op)
	case "api_get":
		return renderJSON(a.api.Get(ctx, args.Path, args.Params))
	case "api_post":
		return renderJSON(a.api.Post(ctx, args.Path, args.Data, args.Params))
	case "api_put":
		return renderJSON(a.api.Put(ctx, args.Path, args.Data, args.Params))
	case "api_delete":
		return renderJSON(a.api.Delete(ctx, args.Path, args.Params))
	case "api_patch":
		return renderJSON(a.api.Patch(ctx, args.Path, args.Data, args.Params))
	default:
		return fmt.Sprintf("Error: unknown tool %q", name)
	}
}

func renderJSON(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
