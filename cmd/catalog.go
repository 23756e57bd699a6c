package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the category catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog categories and their keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Category", "Slug", "Keywords"})
		table.SetBorder(true)
		table.SetAutoWrapText(true)
		for _, def := range appInstance.Catalog.Definitions() {
			table.Append([]string{def.Category, def.Slug(), strings.Join(def.Keywords, ", ")})
		}
		table.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "%d categories\n", appInstance.Catalog.Len())
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name|slug>",
	Short: "Show one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		def, ok := appInstance.Catalog.Lookup(args[0])
		if !ok {
			def, ok = appInstance.Catalog.LookupSlug(args[0])
		}
		if !ok {
			return fmt.Errorf("category %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Category: %s\n", def.Category)
		fmt.Fprintf(out, "Slug: %s\n", def.Slug())
		fmt.Fprintln(out, "Keywords:")
		for _, kw := range def.Keywords {
			fmt.Fprintf(out, "  - %s\n", kw)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}
