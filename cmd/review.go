package cmd

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"niche/internal/store"
)

var (
	reviewAll   bool
	reviewAsync bool
)

// reviewCmd re-checks stored categories after the catalog changed.
var reviewCmd = &cobra.Command{
	Use:   "review [id|handle...]",
	Short: "Re-check stored categories against the current catalog",
	Long: `Keeps each creator's categories that still exist in the catalog. A creator left
with none is scored again. Changes are saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := requireTargets(args, reviewAll); err != nil {
			return err
		}
		ids, err := resolveCreatorIDs(cmd.Context(), appInstance, args)
		if err != nil {
			return err
		}

		if reviewAsync {
			n, err := appInstance.JobService.EnqueueReview(cmd.Context(), ids, reviewAll)
			if err != nil {
				return fmt.Errorf("enqueued %d review jobs before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enqueued %d review jobs.\n", n)
			return nil
		}

		if reviewAll {
			if ids, err = appInstance.Store.ListCreatorIDs(cmd.Context()); err != nil {
				return fmt.Errorf("failed to list creators: %w", err)
			}
		}
		changed := 0
		for _, id := range ids {
			res, err := appInstance.CategorizationService.ReviewCreator(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Warnf("Creator %s disappeared during review, skipping", id)
					continue
				}
				return err
			}
			if res.Changed {
				changed++
			}
			printReview(cmd, res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %d creators (%d changed).\n", len(ids), changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().BoolVar(&reviewAll, "all", false, "Review every stored creator")
	reviewCmd.Flags().BoolVar(&reviewAsync, "async", false, "Enqueue background jobs instead of working inline")
}
