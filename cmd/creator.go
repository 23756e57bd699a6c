package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"niche/internal/clix"
	"niche/internal/models"
	"niche/internal/services"
)

var creatorCmd = &cobra.Command{
	Use:   "creator",
	Short: "Manage stored creator profiles",
}

var creatorAddCmd = &cobra.Command{
	Use:   "add <handle>",
	Short: "Store a new creator profile",
	Long: `Stores a creator with an optional bio and hashtag counts. Use --categorize
to score the creator right away.

Example:
  niche creator add @chefanna --bio "Crème brûlée every week" --hashtags kitchen=3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		hashtags, err := clix.ParseHashtagCounts(cmd.Flags())
		if err != nil {
			return err
		}

		creator, err := appInstance.CreatorService.AddCreator(cmd.Context(), services.AddCreatorParams{
			Handle:        args[0],
			Bio:           clix.OptionalString(cmd.Flags(), "bio"),
			HashtagCounts: hashtags,
		})
		if err != nil {
			return fmt.Errorf("failed to add creator: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added creator @%s (ID: %s)\n", creator.Handle, creator.ID)

		if categorizeNow, _ := cmd.Flags().GetBool("categorize"); categorizeNow {
			res, err := appInstance.CategorizationService.CategorizeCreator(cmd.Context(), creator.ID, true)
			if err != nil {
				return fmt.Errorf("failed to categorize creator: %w", err)
			}
			fmt.Fprintf(out, "Categories: %s\n", formatCategories(res.Categories))
		}
		return nil
	},
}

var creatorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored creators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}

		creators, err := appInstance.CreatorService.ListCreators(cmd.Context(), pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list creators: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(creators) == 0 {
			fmt.Fprintln(out, "No creators found.")
			return nil
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"ID", "Handle", "Categories", "Categorized At"})
		table.SetBorder(true)
		for _, c := range creators {
			table.Append([]string{
				c.ID.String(),
				"@" + c.Handle,
				strings.Join(c.Categories, ", "),
				formatNullTime(c.CategorizedAt, time.RFC3339),
			})
		}
		table.Render()
		return nil
	},
}

var creatorShowCmd = &cobra.Command{
	Use:   "show <id|handle>",
	Short: "Show one creator profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		creator, err := appInstance.CreatorService.ResolveCreator(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printCreator(cmd.OutOrStdout(), creator)
		return nil
	},
}

var creatorUpdateCmd = &cobra.Command{
	Use:   "update <id|handle>",
	Short: "Replace a creator's bio and/or hashtag counts",
	Long: `Updates the profile fields that are given. Categories are not changed; run
"niche recategorize" afterwards to score the new profile.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		creator, err := appInstance.CreatorService.ResolveCreator(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		bio := creator.Bio
		if b := clix.OptionalString(cmd.Flags(), "bio"); b != nil {
			bio = b
		}
		hashtags := creator.HashtagCounts
		if cmd.Flags().Changed("hashtags") {
			if hashtags, err = clix.ParseHashtagCounts(cmd.Flags()); err != nil {
				return err
			}
		}
		if !cmd.Flags().Changed("bio") && !cmd.Flags().Changed("hashtags") {
			return fmt.Errorf("nothing to update: pass --bio and/or --hashtags")
		}

		updated, err := appInstance.CreatorService.UpdateProfile(cmd.Context(), creator.ID, bio, hashtags)
		if err != nil {
			return fmt.Errorf("failed to update creator: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated creator @%s\n", updated.Handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(creatorCmd)
	creatorCmd.AddCommand(creatorAddCmd, creatorListCmd, creatorShowCmd, creatorUpdateCmd)

	creatorAddCmd.Flags().String("bio", "", "Creator bio text")
	creatorAddCmd.Flags().String("hashtags", "", "Hashtag counts as tag=count pairs, e.g. rpg=4,fps=1")
	creatorAddCmd.Flags().Bool("categorize", false, "Categorize the creator after adding it")

	creatorListCmd.Flags().IntP("limit", "l", 20, "Number of creators to display")
	creatorListCmd.Flags().IntP("offset", "o", 0, "Number of creators to skip")

	creatorUpdateCmd.Flags().String("bio", "", "New bio text (empty clears it)")
	creatorUpdateCmd.Flags().String("hashtags", "", "New hashtag counts, replacing the old ones")
}

func printCreator(w io.Writer, c *models.Creator) {
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	fmt.Fprintf(w, "Handle: @%s\n", c.Handle)
	if c.Bio != nil {
		fmt.Fprintf(w, "Bio: %s\n", *c.Bio)
	} else {
		fmt.Fprintln(w, "Bio: N/A")
	}
	if len(c.HashtagCounts) > 0 {
		tags := make([]string, 0, len(c.HashtagCounts))
		for tag := range c.HashtagCounts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, len(tags))
		for i, tag := range tags {
			parts[i] = "#" + tag + "=" + strconv.Itoa(c.HashtagCounts[tag])
		}
		fmt.Fprintf(w, "Hashtags: %s\n", strings.Join(parts, " "))
	}
	fmt.Fprintf(w, "Categories: %s\n", formatCategories(c.Categories))
	fmt.Fprintf(w, "Categorized: %s\n", formatNullTime(c.CategorizedAt, time.RFC3339))
	fmt.Fprintf(w, "Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
}

// Helper function to format nullable time
func formatNullTime(t *time.Time, layout string) string {
	if t != nil {
		return t.Format(layout)
	}
	return "N/A"
}
