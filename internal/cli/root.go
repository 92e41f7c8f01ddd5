package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/internal/config"
)

// Execute runs the apiki CLI against the loaded configuration.
func Execute(cfg *config.Config) error {
	return NewRootCmd(cfg).Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
// Flag defaults come from cfg; set flags override it in place before any
// subcommand runs.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	var headerFlags []string

	cmd := &cobra.Command{
		Use:           "apiki",
		Short:         "Drive any HTTP API described by an OpenAPI document",
		Long:          "apiki fetches an OpenAPI specification, indexes its endpoints, and issues direct or agent-planned requests against the API it describes.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})

	cmd.PersistentFlags().StringVar(&cfg.OpenAPIURL, "openapi", cfg.OpenAPIURL, "URL of the OpenAPI specification")
	cmd.PersistentFlags().StringVar(&cfg.APIBaseURL, "base-url", cfg.APIBaseURL, "Base URL for the API (fallback when the spec declares no servers)")
	cmd.PersistentFlags().Int64Var(&cfg.TimeoutSeconds, "timeout", cfg.TimeoutSeconds, "Timeout for API requests in seconds")
	cmd.PersistentFlags().BoolVar(&cfg.Insecure, "insecure", cfg.Insecure, "Skip TLS certificate verification")
	cmd.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose output")
	cmd.PersistentFlags().StringArrayVar(&headerFlags, "header", nil, "Extra request header as key=value (repeatable)")

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if cfg.TimeoutSeconds <= 0 {
			return newUsageError("--timeout must be a positive number of seconds")
		}
		cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

		for _, h := range headerFlags {
			key, value, ok := strings.Cut(h, "=")
			if !ok || strings.TrimSpace(key) == "" {
				return newUsageError(fmt.Sprintf("invalid --header %q (want key=value)", h))
			}
			if cfg.Headers == nil {
				cfg.Headers = map[string]string{}
			}
			cfg.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		return nil
	}

	for _, sub := range []*cobra.Command{
		newVerbCmd(cfg, "get", false),
		newVerbCmd(cfg, "post", true),
		newVerbCmd(cfg, "put", true),
		newVerbCmd(cfg, "delete", false),
		newVerbCmd(cfg, "patch", true),
		newEndpointsCmd(cfg),
		newDescribeCmd(cfg),
		newAgentCmd(cfg),
		newHistoryCmd(cfg),
	} {
		sub.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
		})
		cmd.AddCommand(sub)
	}

	return cmd
}
