package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinka12/amdash/internal/api"
)

// newHealthCmd creates the health command: a reachability and version
// handshake against the backend.
func newHealthCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend reachability and version compatibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, compatible, err := st.client.CheckVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable at %s: %w", st.cfg.API.BaseURL, err)
			}

			cmd.Printf("Backend:    %s\n", st.cfg.API.BaseURL)
			cmd.Printf("Version:    %s\n", version)
			if compatible {
				cmd.Printf("Supported:  yes (%s)\n", api.SupportedBackends)
				return nil
			}
			cmd.Printf("Supported:  no (want %s)\n", api.SupportedBackends)
			return fmt.Errorf("backend version %s is outside the supported range", version)
		},
	}
}
