package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newBackend(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s (%s)\n", cfg.BackendURL, client.Name())
			if err := client.Health(cmd.Context()); err != nil {
				fmt.Fprintln(out, "status:  unreachable")
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(out, "status:  ok")
			return nil
		},
	}
}
