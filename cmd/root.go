// Package cmd assembles the focal command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/THANGADHIWAN/focal/cmd/equipment"
	"github.com/THANGADHIWAN/focal/cmd/health"
	"github.com/THANGADHIWAN/focal/cmd/inventory"
	"github.com/THANGADHIWAN/focal/cmd/metadata"
	"github.com/THANGADHIWAN/focal/cmd/mock"
	"github.com/THANGADHIWAN/focal/cmd/products"
	"github.com/THANGADHIWAN/focal/cmd/samples"
	"github.com/THANGADHIWAN/focal/cmd/storage"
	"github.com/THANGADHIWAN/focal/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "focal",
		Short: "focal is a LIMS client for the lab bench and scripts",
		Long: `focal talks to the laboratory information management backend:
samples, aliquots, tests, products, storage, and inventory.`,
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.AddCommand(
		samples.Command(settings),
		products.Command(settings),
		inventory.Command(settings),
		metadata.Command(settings),
		storage.Command(settings),
		equipment.Command(settings),
		health.Command(settings),
		mock.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Command-line flags take precedence over file and environment.
		settings.Debug = viper.GetBool("debug")
		settings.API.URL = viper.GetString("api.url")
		settings.API.Mock = viper.GetBool("api.mock")
		return nil
	}

	return rootCmd
}

func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.API.URL, "api-url", viper.GetString("api.url"), "Base URL of the LIMS backend")
	rootCmd.PersistentFlags().BoolVar(&settings.API.Mock, "mock", viper.GetBool("api.mock"), "Run against an in-process mock backend")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("error binding debug flag: %w", err)
	}
	if err := viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url")); err != nil {
		return fmt.Errorf("error binding api.url flag: %w", err)
	}
	if err := viper.BindPFlag("api.mock", rootCmd.PersistentFlags().Lookup("mock")); err != nil {
		return fmt.Errorf("error binding api.mock flag: %w", err)
	}
	return nil
}
