package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"niche/internal/app"
	"niche/internal/services"
)

var (
	recategorizeAll    bool
	recategorizeAsync  bool
	recategorizeDryRun bool
)

// recategorizeCmd scores stored creators again and saves the result.
var recategorizeCmd = &cobra.Command{
	Use:   "recategorize [id|handle...]",
	Short: "Score stored creators again and save their categories",
	Long: `Scores the given creators (or every creator with --all) against the current
catalog. With --dry-run the new categories are shown but not saved. With --async
one background job per creator is enqueued instead; this needs redis.address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if recategorizeAsync && recategorizeDryRun {
			return fmt.Errorf("--async and --dry-run cannot be combined")
		}
		if err := requireTargets(args, recategorizeAll); err != nil {
			return err
		}
		ids, err := resolveCreatorIDs(cmd.Context(), appInstance, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if recategorizeAsync {
			n, err := appInstance.JobService.EnqueueCategorization(cmd.Context(), ids, recategorizeAll)
			if err != nil {
				return fmt.Errorf("enqueued %d categorize jobs before failing: %w", n, err)
			}
			fmt.Fprintf(out, "Enqueued %d categorize jobs.\n", n)
			return nil
		}

		if recategorizeAll {
			if ids, err = appInstance.Store.ListCreatorIDs(cmd.Context()); err != nil {
				return fmt.Errorf("failed to list creators: %w", err)
			}
		}
		results, err := appInstance.CategorizationService.BatchCategorize(cmd.Context(), ids, !recategorizeDryRun)
		if err != nil {
			return fmt.Errorf("recategorize failed after %d creators: %w", len(results), err)
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Handle", "Previous", "Categories", "Status"})
		table.SetBorder(true)
		changed := 0
		for _, id := range ids {
			res, ok := results[id]
			if !ok {
				continue
			}
			status := "unchanged"
			if res.Changed {
				changed++
				status = color.YellowString("changed")
			}
			table.Append([]string{
				"@" + res.Creator.Handle,
				strings.Join(res.Previous, ", "),
				strings.Join(res.Categories, ", "),
				status,
			})
		}
		table.Render()

		verb := "Saved"
		if recategorizeDryRun {
			verb = "Dry run, nothing saved for"
		}
		fmt.Fprintf(out, "%s %d creators (%d changed).\n", verb, len(results), changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recategorizeCmd)
	recategorizeCmd.Flags().BoolVar(&recategorizeAll, "all", false, "Recategorize every stored creator")
	recategorizeCmd.Flags().BoolVar(&recategorizeAsync, "async", false, "Enqueue background jobs instead of working inline")
	recategorizeCmd.Flags().BoolVar(&recategorizeDryRun, "dry-run", false, "Show the new categories without saving them")
}

func requireTargets(args []string, all bool) error {
	if all && len(args) > 0 {
		return fmt.Errorf("pass creator IDs/handles or --all, not both")
	}
	if !all && len(args) == 0 {
		return fmt.Errorf("pass at least one creator ID/handle, or --all")
	}
	return nil
}

// resolveCreatorIDs turns IDs or handles into creator IDs.
func resolveCreatorIDs(ctx context.Context, a *app.App, refs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		creator, err := a.CreatorService.ResolveCreator(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, creator.ID)
	}
	return ids, nil
}

func printReview(cmd *cobra.Command, res *services.CreatorReview) {
	status := "unchanged"
	if res.Changed {
		status = color.YellowString("changed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "@%s: %s -> %s (%s)\n",
		res.Creator.Handle, formatCategories(res.Previous), formatCategories(res.Categories), status)
}
