package cmd

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"niche/internal/clix"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect background categorization jobs",
}

// jobsListCmd represents the list command for background jobs
var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded background jobs",
	Long:  `Lists the categorize and review jobs recorded when they were enqueued, with their latest status.`,
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

		jobs, err := appInstance.JobService.ListJobs(cmd.Context(), pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(jobs) == 0 {
			fmt.Fprintln(out, "No background jobs found.")
			return nil
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Job ID", "Task Type", "Status", "Creator", "Last Error", "Updated At"})
		table.SetBorder(true)
		table.SetRowLine(true)
		for _, job := range jobs {
			creator := "N/A"
			if job.CreatorID != nil {
				creator = job.CreatorID.String()
			}
			lastErr := ""
			if job.LastError != nil {
				lastErr = *job.LastError
			}
			table.Append([]string{
				job.JobID.String(),
				job.TaskType,
				job.Status,
				creator,
				lastErr,
				job.UpdatedAt.Format(time.RFC3339),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsListCmd.Flags().IntP("limit", "n", 20, "Maximum number of jobs to list")
	jobsListCmd.Flags().IntP("offset", "o", 0, "Number of jobs to skip")
}
