package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/internal/config"
	"github.com/apiki-hq/apiki/internal/logger"
	"github.com/apiki-hq/apiki/pkg/agent"
)

func newAgentCmd(cfg *config.Config) *cobra.Command {
	var model, llmBaseURL string
	var temperature float64
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "agent <query>",
		Short: "Answer a natural-language query by planning API calls with an LLM",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := agent.New(cmd.Context(), agent.Config{
				OpenAPIURL:         cfg.OpenAPIURL,
				APIBaseURL:         cfg.APIBaseURL,
				Headers:            cfg.Headers,
				Model:              model,
				Temperature:        temperature,
				LLMBaseURL:         llmBaseURL,
				MaxSteps:           maxSteps,
				Timeout:            cfg.Timeout,
				InsecureSkipVerify: cfg.Insecure,
				Verbose:            cfg.Verbose,
				Logger:             logger.S,
			})
			if err != nil {
				return err
			}

			resp := a.Run(cmd.Context(), strings.Join(args, " "))
			printAgentResponse(cmd, resp, cfg.Verbose)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", cfg.LLMModel, "Chat model to use")
	cmd.Flags().StringVar(&llmBaseURL, "llm-base-url", cfg.LLMBaseURL, "OpenAI-compatible endpoint base URL")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "Temperature for the model")
	cmd.Flags().IntVar(&maxSteps, "max-steps", agent.DefaultMaxSteps, "Maximum model round-trips per query")
	return cmd
}
