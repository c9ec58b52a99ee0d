package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emprendelab/vitrina/internal/filter"
	"github.com/emprendelab/vitrina/internal/listing"
)

var searchCategory string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter the stored ventures from the command line",
	Long:  `Applies the same text and category filter as the list page and prints the matching ventures.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var query string
		if len(args) == 1 {
			query = args[0]
		}
		return printSearch(cmd.Context(), cmd.OutOrStdout(), store, query, searchCategory)
	},
}

// printSearch runs the list-page filter over every stored listing and
// writes the matches to out.
func printSearch(ctx context.Context, out io.Writer, store *listing.Store, query, category string) error {
	listings, err := store.List(ctx)
	if err != nil {
		return err
	}

	items := listing.Items(listings)
	page := filter.NewPage(items)
	ctrl := filter.NewController(items, page)
	ctrl.SetQuery(query)
	ctrl.SetCategory(category)
	ctrl.Submit()

	if page.EmptyShown {
		fmt.Fprintln(out, "No se encontraron emprendimientos.")
		return nil
	}

	byID := make(map[string]listing.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	fmt.Fprintf(out, "%d resultados\n\n", page.Count)
	for _, id := range page.VisibleIDs() {
		l := byID[id]
		fmt.Fprintf(out, "%s  %s [%s]\n", l.ID, l.Name, l.Category)
		if l.OwnerName != "" {
			fmt.Fprintf(out, "    %s\n", l.OwnerName)
		}
		fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(l.Description, "\n", " "))
	}
	return nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "only show ventures in this category")
	rootCmd.AddCommand(searchCmd)
}
