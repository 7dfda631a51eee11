// Package equipment implements the lab instrument subcommands.
package equipment

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/THANGADHIWAN/focal/internal/app"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// Command returns the equipment command tree.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage lab instruments",
	}
	cmd.AddCommand(listCommand(settings), addCommand(settings), deleteCommand(settings))
	return cmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			equipment, err := a.Services.Equipment.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSERIAL\tLOCATION")
			for _, eq := range equipment {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", eq.ID, eq.Name, eq.SerialNumber, eq.Location)
			}
			return w.Flush()
		},
	}
}

func addCommand(settings *conf.Settings) *cobra.Command {
	var in model.EquipmentCreate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an instrument",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.Services.Equipment.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("registered equipment %s (id %d)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Instrument name")
	cmd.Flags().IntVar(&in.TypeID, "type-id", 0, "Equipment type id")
	cmd.Flags().IntVar(&in.StatusID, "status-id", 0, "Equipment status id")
	cmd.Flags().StringVar(&in.SerialNumber, "serial", "", "Serial number")
	cmd.Flags().StringVar(&in.Location, "location", "", "Lab location")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func deleteCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <equipment-id>",
		Short: "Remove an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("equipment id must be an integer: %w", err)
			}

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Services.Equipment.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted equipment %d\n", id)
			return nil
		},
	}
}
