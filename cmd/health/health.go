// Package health implements the connectivity check subcommand.
package health

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/THANGADHIWAN/focal/internal/app"
	"github.com/THANGADHIWAN/focal/internal/conf"
)

// Command returns the health command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend reachability and version",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.Client.TestConnection(cmd.Context()) {
				return fmt.Errorf("backend unreachable at %s", settings.API.URL)
			}

			// Connected; an error here means the health endpoint itself
			// misbehaved, which is still worth reporting as connected.
			health, err := a.Services.Metadata.Health(cmd.Context())
			if err != nil {
				fmt.Println("connected, but health endpoint returned an error:", err)
				return nil
			}
			fmt.Printf("connected: status=%s version=%s\n", health.Status, health.Version)
			return nil
		},
	}
}
