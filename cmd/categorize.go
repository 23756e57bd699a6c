package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"niche/internal/clix"
	"niche/internal/services"
	"niche/pkg/categorizer"
)

var categorizeShowAll bool

// categorizeCmd scores an ad hoc profile given on the command line.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a profile given by --bio and --hashtags",
	Long: `Scores a bio and hashtag counts against the catalog and prints the selected
categories. Nothing is stored.

Example:
  niche categorize --bio "Dragon slayer and RPG fan" --hashtags rpg=4,fps=1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		hashtags, err := clix.ParseHashtagCounts(cmd.Flags())
		if err != nil {
			return err
		}
		hashtags, err = services.NormalizeHashtagCounts(hashtags)
		if err != nil {
			return err
		}
		profile := categorizer.Profile{
			Bio:           clix.OptionalString(cmd.Flags(), "bio"),
			HashtagCounts: hashtags,
		}
		if profile.Bio == nil && len(hashtags) == 0 {
			return fmt.Errorf("nothing to categorize: pass --bio and/or --hashtags")
		}

		res, err := appInstance.CategorizationService.CategorizeProfile(cmd.Context(), profile)
		if err != nil {
			return fmt.Errorf("categorize profile: %w", err)
		}

		out := cmd.OutOrStdout()
		renderMatches(out, res.Matches, categorizeShowAll)
		fmt.Fprintf(out, "Categories: %s\n", formatCategories(res.Categories))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
	categorizeCmd.Flags().String("bio", "", "Creator bio text")
	categorizeCmd.Flags().String("hashtags", "", "Hashtag counts as tag=count pairs, e.g. rpg=4,fps=1")
	categorizeCmd.Flags().BoolVarP(&categorizeShowAll, "all", "a", false, "Show categories with zero instances too")
}

// renderMatches prints the per-category scores, highest first as scored.
func renderMatches(w io.Writer, matches []categorizer.CategoryMatch, showZero bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Instances"})
	table.SetBorder(true)
	rows := 0
	for _, m := range matches {
		if m.Instances == 0 && !showZero {
			continue
		}
		table.Append([]string{m.Category, strconv.Itoa(m.Instances)})
		rows++
	}
	if rows == 0 {
		fmt.Fprintln(w, "No category keywords matched.")
		return
	}
	table.Render()
}

func formatCategories(categories []string) string {
	if len(categories) == 0 {
		return color.YellowString("(none)")
	}
	return color.GreenString(strings.Join(categories, ", "))
}
