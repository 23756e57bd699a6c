package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var suggestBios []string

// suggestCmd asks the configured language model for new catalog keywords.
var suggestCmd = &cobra.Command{
	Use:   "suggest-keywords <category>",
	Short: "Ask a language model for new keywords for a category",
	Long: `Proposes keywords for a catalog category from sample bios. Without --bio the
bios of stored creators already in the category are used. The catalog file is
never changed; review the suggestions and edit it yourself.

Needs suggest.enabled and an OpenAI API key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		suggestion, err := appInstance.SuggestionService.SuggestKeywords(cmd.Context(), args[0], suggestBios)
		if err != nil {
			return fmt.Errorf("keyword suggestion failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(suggestion.Keywords) == 0 {
			fmt.Fprintln(out, "No new keywords suggested.")
		} else {
			fmt.Fprintf(out, "Suggested keywords: %s\n", color.GreenString(strings.Join(suggestion.Keywords, ", ")))
		}
		if len(suggestion.Rejected) > 0 {
			fmt.Fprintf(out, "Rejected (can never match): %s\n", color.RedString(strings.Join(suggestion.Rejected, ", ")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringArrayVar(&suggestBios, "bio", nil, "Sample bio (repeatable)")
}
