package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/pkg/agent"
	"github.com/apiki-hq/apiki/pkg/client"
)

// printResult renders a normalized request result. Remote failures are part
// of the normal output here, not process errors.
func printResult(cmd *cobra.Command, result client.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Status Code: %d\n", result.StatusCode)
	fmt.Fprintf(out, "Success: %t\n", result.Success)

	if result.Data != nil {
		fmt.Fprintln(out, "\nData:")
		fmt.Fprintln(out, prettyJSON(result.Data))
	}

	if result.Error != "" {
		fmt.Fprintf(out, "\nError: %s\n", result.Error)
	}
}

func printAgentResponse(cmd *cobra.Command, resp agent.Response, verbose bool) {
	out := cmd.OutOrStdout()

	if verbose && len(resp.Steps) > 0 {
		fmt.Fprintln(out, "Steps:")
		for i, step := range resp.Steps {
			fmt.Fprintf(out, "  %d. %s(%s)\n", i+1, step.Tool, step.Arguments)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Output:\n%s\n", resp.Output)
}

func printJSON(cmd *cobra.Command, v any) {
	fmt.Fprintln(cmd.OutOrStdout(), prettyJSON(v))
}

func prettyJSON(v any) string {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
