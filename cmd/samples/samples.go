// Package samples implements the sample subcommands.
package samples

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/app"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// Command returns the samples command tree.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Browse and manage samples",
	}
	cmd.AddCommand(
		listCommand(settings),
		getCommand(settings),
		createCommand(settings),
		updateCommand(settings),
		deleteCommand(settings),
		exportCommand(settings),
	)
	return cmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	var (
		page, limit       int
		types, statuses   []string
		locations, owners []string
		search            string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List samples with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Services.Samples.List(cmd.Context(),
				api.PageParams{Page: page, Limit: limit},
				model.SampleFilter{
					Types:     types,
					Statuses:  statuses,
					Locations: locations,
					Owners:    owners,
					Search:    search,
				})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTYPE\tSTATUS\tVOLUME\tLEFT\tALIQUOTS")
			for i := range result.Data {
				smp := &result.Data[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.1f\t%d\n",
					smp.Code, smp.Name, smp.TypeName, smp.Status,
					smp.VolumeML, smp.VolumeLeft(), len(smp.Aliquots))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("page %d of %d, %d samples total\n",
				result.CurrentPage, result.TotalPages, result.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Filter by sample type, repeatable")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status, repeatable")
	cmd.Flags().StringSliceVar(&locations, "location", nil, "Filter by location, repeatable")
	cmd.Flags().StringSliceVar(&owners, "owner", nil, "Filter by created_by, repeatable")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	return cmd
}

func getCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "get <sample-id>",
		Short: "Show one sample with its aliquots and tests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			sample, err := a.Services.Samples.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if sample == nil {
				return fmt.Errorf("sample %s not found", args[0])
			}
			return printJSON(sample)
		},
	}
}

func createCommand(settings *conf.Settings) *cobra.Command {
	var in model.SampleCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			sample, err := a.Services.Samples.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("created sample %s (%s)\n", sample.Code, sample.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Sample name")
	cmd.Flags().IntVar(&in.TypeID, "type-id", 0, "Sample type id")
	cmd.Flags().Float64Var(&in.VolumeML, "volume", 0, "Volume in mL")
	cmd.Flags().StringVar(&in.CreatedBy, "created-by", "", "User id of the registrant")
	cmd.Flags().StringVar(&in.Location, "location", "", "Lab location")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func updateCommand(settings *conf.Settings) *cobra.Command {
	var (
		name, status, location, notes string
		volume                        float64
	)

	cmd := &cobra.Command{
		Use:   "update <sample-id>",
		Short: "Update sample fields, including status moves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user passed go into the patch; everything
			// else stays untouched server-side.
			var patch model.SampleUpdate
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("volume") {
				patch.VolumeML = &volume
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if patch == (model.SampleUpdate{}) {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			sample, err := a.Services.Samples.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("updated sample %s, status %s\n", sample.Code, sample.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New sample name")
	cmd.Flags().StringVar(&status, "status", "", "New lifecycle status")
	cmd.Flags().Float64Var(&volume, "volume", 0, "New volume in mL")
	cmd.Flags().StringVar(&location, "location", "", "New lab location")
	cmd.Flags().StringVar(&notes, "notes", "", "New free-text notes")
	return cmd
}

func deleteCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sample-id>",
		Short: "Delete a sample and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Services.Samples.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted sample %s\n", args[0])
			return nil
		},
	}
}

func exportCommand(settings *conf.Settings) *cobra.Command {
	var (
		out      string
		statuses []string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered sample list as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			payload, err := a.Services.Samples.ExportCSV(cmd.Context(), model.SampleFilter{
				Statuses: statuses,
				Search:   search,
			})
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(payload)
				return err
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(payload), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status, repeatable")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
