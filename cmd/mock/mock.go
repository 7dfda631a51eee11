// Package mock implements the standalone mock backend subcommand.
package mock

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/logging"
	"github.com/THANGADHIWAN/focal/internal/mockapi"
)

// Command returns the mock serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve the in-memory mock backend",
		Long: `Starts a LIMS backend with the same API surface as the real
service, backed by an in-memory database. State is lost on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := mockapi.New(mockapi.Options{
				Seed:   settings.Mock.Seed,
				Logger: logging.ForService("mockapi"),
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(settings.Mock.Listen); err != nil &&
					!errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&settings.Mock.Listen, "listen", viper.GetString("mock.listen"), "Listen address")
	cmd.Flags().BoolVar(&settings.Mock.Seed, "seed", viper.GetBool("mock.seed"), "Seed fixture data")
	return cmd
}
