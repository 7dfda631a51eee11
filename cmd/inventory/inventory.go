// Package inventory implements the inventory subcommands.
package inventory

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/app"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// Command returns the inventory command tree.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Browse materials and lots, record usage",
	}
	cmd.AddCommand(
		materialsCommand(settings),
		lotsCommand(settings),
		useCommand(settings),
		adjustCommand(settings),
	)
	return cmd
}

func materialsCommand(settings *conf.Settings) *cobra.Command {
	var (
		skip, limit int
		types       []string
		search      string
	)

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			materials, err := a.Services.Inventory.Materials(cmd.Context(),
				api.SkipParams{Skip: skip, Limit: limit},
				model.InventoryFilter{MaterialTypes: types, Search: search})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tGRADE\tUNIT\tCONTROLLED")
			for _, m := range materials {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
					m.ID, m.Name, m.MaterialType, m.Grade, m.UnitOfMeasure, m.IsControlled)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "Rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Filter by material type, repeatable")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	return cmd
}

func lotsCommand(settings *conf.Settings) *cobra.Command {
	var materialID int

	cmd := &cobra.Command{
		Use:   "lots",
		Short: "List material lots",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			lots, err := a.Services.Inventory.Lots(cmd.Context(), api.SkipParams{}, materialID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMATERIAL\tLOT\tRECEIVED\tCURRENT\tSTATUS")
			for _, lot := range lots {
				fmt.Fprintf(w, "%d\t%d\t%s\t%.1f\t%.1f\t%s\n",
					lot.ID, lot.MaterialID, lot.LotNumber,
					lot.ReceivedQuantity, lot.CurrentQuantity, lot.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&materialID, "material", 0, "Restrict to one material id")
	return cmd
}

func useCommand(settings *conf.Settings) *cobra.Command {
	var (
		in  model.UsageLogCreate
		qty string
	)

	cmd := &cobra.Command{
		Use:   "use",
		Short: "Record consumption against a lot",
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.ParseFloat(qty, 64)
			if err != nil {
				return fmt.Errorf("quantity must be numeric: %w", err)
			}
			in.UsedQuantity = quantity

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.Services.Inventory.CreateUsageLog(cmd.Context(), in)
			if err != nil {
				return err
			}

			lot, err := a.Services.Inventory.Lot(cmd.Context(), entry.MaterialLotID)
			if err != nil {
				return err
			}
			fmt.Printf("recorded usage %d, lot %d now at %.1f\n",
				entry.ID, lot.ID, lot.CurrentQuantity)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.MaterialLotID, "lot", 0, "Lot id")
	cmd.Flags().StringVar(&qty, "quantity", "", "Quantity consumed")
	cmd.Flags().StringVar(&in.UsedBy, "used-by", "", "User id")
	cmd.Flags().StringVar(&in.Purpose, "purpose", "", "What the material was used for")
	_ = cmd.MarkFlagRequired("lot")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func adjustCommand(settings *conf.Settings) *cobra.Command {
	var (
		in  model.AdjustmentCreate
		qty string
	)

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Record a quantity correction against a lot",
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.ParseFloat(qty, 64)
			if err != nil {
				return fmt.Errorf("quantity must be numeric: %w", err)
			}
			in.Quantity = quantity

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.Services.Inventory.CreateAdjustment(cmd.Context(), in)
			if err != nil {
				return err
			}

			lot, err := a.Services.Inventory.Lot(cmd.Context(), entry.MaterialLotID)
			if err != nil {
				return err
			}
			fmt.Printf("recorded adjustment %d, lot %d now at %.1f\n",
				entry.ID, lot.ID, lot.CurrentQuantity)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.MaterialLotID, "lot", 0, "Lot id")
	cmd.Flags().StringVar(&qty, "quantity", "", "Signed quantity delta")
	cmd.Flags().StringVar(&in.AdjustmentType, "type", "recount", "Adjustment type")
	cmd.Flags().StringVar(&in.Reason, "reason", "", "Why the correction is needed")
	_ = cmd.MarkFlagRequired("lot")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}
