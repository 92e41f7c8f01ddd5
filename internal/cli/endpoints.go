package cli

import (
	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/internal/config"
)

func newEndpointsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "Get information about available endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := newClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printJSON(cmd, api.ListEndpoints())
			return nil
		},
	}
}

func newDescribeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <path> <method>",
		Short: "Describe one endpoint from the API specification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			op, err := api.EndpointDetails(args[0], args[1])
			if err != nil {
				return err
			}
			printJSON(cmd, op)
			return nil
		},
	}
}
