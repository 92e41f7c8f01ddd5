package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/internal/config"
	"github.com/apiki-hq/apiki/internal/history"
	"github.com/apiki-hq/apiki/internal/logger"
	"github.com/apiki-hq/apiki/pkg/client"
)

// newVerbCmd builds one of the get/post/put/delete/patch subcommands. Verbs
// with hasBody accept --data; all accept --params.
func newVerbCmd(cfg *config.Config, verb string, hasBody bool) *cobra.Command {
	var paramsArg, dataArg string

	cmd := &cobra.Command{
		Use:   verb + " <path>",
		Short: fmt.Sprintf("Make a %s request", strings.ToUpper(verb)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// JSON arguments are validated before any request is attempted,
			// including the construction-time spec fetch.
			params, err := parseParamsArg(paramsArg)
			if err != nil {
				return err
			}
			var data any
			if hasBody {
				data, err = parseDataArg(dataArg)
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			api, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			var result client.Result
			switch verb {
			case "get":
				result = api.Get(ctx, args[0], params)
			case "post":
				result = api.Post(ctx, args[0], data, params)
			case "put":
				result = api.Put(ctx, args[0], data, params)
			case "delete":
				result = api.Delete(ctx, args[0], params)
			case "patch":
				result = api.Patch(ctx, args[0], data, params)
			}

			printResult(cmd, result)
			recordHistory(cfg, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsArg, "params", "", "Query parameters as a JSON object")
	if hasBody {
		cmd.Flags().StringVar(&dataArg, "data", "", "Request body as a JSON object")
	}
	return cmd
}

func newClient(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	return client.New(ctx, client.Config{
		OpenAPIURL:         cfg.OpenAPIURL,
		APIBaseURL:         cfg.APIBaseURL,
		Headers:            cfg.Headers,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.Insecure,
		Verbose:            cfg.Verbose,
		Logger:             logger.S,
	})
}

// parseParamsArg decodes a --params JSON object. Empty means no parameters.
func parseParamsArg(arg string) (map[string]any, error) {
	if arg == "" {
		return nil, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(arg), &params); err != nil {
		return nil, newUsageError(fmt.Sprintf("error parsing --params JSON: %v", err))
	}
	return params, nil
}

// parseDataArg decodes a --data JSON value. Empty means no body.
func parseDataArg(arg string) (any, error) {
	if arg == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(arg), &data); err != nil {
		return nil, newUsageError(fmt.Sprintf("error parsing --data JSON: %v", err))
	}
	return data, nil
}

// recordHistory appends the result to the configured history store. Append
// failures are logged and never affect the command's outcome.
func recordHistory(cfg *config.Config, result client.Result) {
	store, err := history.NewStore(cfg.HistoryType, cfg.HistoryPath, history.Options{
		RecordTTL:       cfg.HistoryTTL,
		CleanupInterval: cfg.HistoryCleanupInterval,
	})
	if err != nil {
		warnHistory("open history store", err)
		return
	}
	defer store.Close()

	if err := store.Append(history.Record{
		At:         time.Now(),
		Method:     result.Request.Method,
		URL:        result.Request.URL,
		StatusCode: result.StatusCode,
		Success:    result.Success,
		Error:      result.Error,
	}); err != nil {
		warnHistory("append history record", err)
	}
}

func warnHistory(op string, err error) {
	if logger.S != nil {
		logger.S.Warnw(op+" failed", "error", err)
	}
}
