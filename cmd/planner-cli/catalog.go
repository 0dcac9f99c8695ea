package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		baseURL  string
		category string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List active products from the inventory API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = a.cfg.Inventory.BaseURL
			}
			client := inventory.NewClient(inventory.Config{
				BaseURL: baseURL,
				Timeout: a.cfg.Inventory.Timeout,
				Logger:  a.logg,
			})
			products, err := client.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printCatalog(cmd, inventory.FilterByCategory(products, category))
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "inventory API base URL")
	cmd.Flags().StringVar(&category, "category", inventory.CategoryAll, "category filter")
	return cmd
}

func printCatalog(cmd *cobra.Command, products []inventory.Product) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tLINE\tSIZE (cm)")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s×%s\n", p.ID, p.Name, p.Category, p.Line, inventory.FormatCm(p.WidthCm), inventory.FormatCm(p.HeightCm))
	}
	return w.Flush()
}
