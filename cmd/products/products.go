// Package products implements the product subcommands.
package products

import (
	"encoding/json"
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

// Command returns the products command tree.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
	}
	cmd.AddCommand(
		listCommand(settings),
		getCommand(settings),
		createCommand(settings),
		updateCommand(settings),
		deleteCommand(settings),
	)
	return cmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	var (
		page, limit int
		statuses    []string
		search      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := model.ProductFilter{Search: search}
			for _, st := range statuses {
				filter.Statuses = append(filter.Statuses, model.ProductStatus(st))
			}

			result, err := a.Services.Products.List(cmd.Context(),
				api.PageParams{Page: page, Limit: limit}, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tNAME\tSTATUS\tSAMPLES\tTESTS")
			for _, p := range result.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
					p.ID, p.Code, p.Name, p.Status, p.SampleCount, p.TestCount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("page %d of %d, %d products total\n", result.Page, result.Pages, result.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status, repeatable")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	return cmd
}

func getCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("product id must be an integer: %w", err)
			}

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.Services.Products.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if product == nil {
				fmt.Printf("product %d does not exist\n", id)
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(product)
		},
	}
}

func createCommand(settings *conf.Settings) *cobra.Command {
	var in model.ProductCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.Services.Products.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("created product %s (id %d)\n", product.Code, product.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func updateCommand(settings *conf.Settings) *cobra.Command {
	var name, description, status string

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update product fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("product id must be an integer: %w", err)
			}

			var patch model.ProductUpdate
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				st := model.ProductStatus(status)
				patch.Status = &st
			}
			if patch == (model.ProductUpdate{}) {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.Services.Products.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("updated product %s, status %s\n", product.Code, product.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New product name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status (NOT_STARTED, IN_PROGRESS, COMPLETED)")
	return cmd
}

func deleteCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("product id must be an integer: %w", err)
			}

			a, err := app.New(settings)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Services.Products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted product %d\n", id)
			return nil
		},
	}
}
