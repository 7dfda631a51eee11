// Package storage implements the physical storage subcommands.
package storage

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/THANGADHIWAN/focal/internal/app"
	"github.com/THANGADHIWAN/focal/internal/conf"
)

// Command returns the storage command tree.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Browse freezers, boxes, and free slots",
	}
	cmd.AddCommand(treeCommand(settings), slotsCommand(settings))
	return cmd
}

func treeCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the freezer and box hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			tree, err := a.Services.Storage.Hierarchy(cmd.Context())
			if err != nil {
				return err
			}

			for _, node := range tree.Freezers {
				fmt.Printf("%s (%.0f C, %s)\n",
					node.Freezer.Name, node.Freezer.Temperature, node.Freezer.Location)
				for _, box := range node.Boxes {
					fmt.Printf("  %s  %dx%d, %d slots used\n",
						box.Label, box.Rows, box.Columns, box.UsedSlots)
				}
			}
			return nil
		},
	}
}

func slotsCommand(settings *conf.Settings) *cobra.Command {
	var boxID string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free positions in a box",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			slots, err := a.Services.Storage.AvailableSlots(cmd.Context(), boxID)
			if err != nil {
				return err
			}
			for _, slot := range slots {
				fmt.Println(slot.Position)
			}
			fmt.Printf("%d free slots\n", len(slots))
			return nil
		},
	}

	cmd.Flags().StringVar(&boxID, "box", "", "Box id")
	_ = cmd.MarkFlagRequired("box")
	return cmd
}
