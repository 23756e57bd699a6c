package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"niche/pkg/categorizer"
)

// matchCmd is a diagnostic for the word matcher.
var matchCmd = &cobra.Command{
	Use:   "match <text> <word>",
	Short: "Check whether a word occurs in text as a whole word",
	Long: `Normalizes text and word the way the scorer does (lower case, accents removed)
and reports whether the word is one of the text's tokens. The tokens are printed too.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, word := args[0], args[1]
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Tokens: [%s]\n", strings.Join(categorizer.Tokenize(text), " "))
		if categorizer.ContainsWord(text, word) {
			fmt.Fprintf(out, "%s: %q is a whole word of the text\n", color.GreenString("match"), categorizer.Normalize(word))
		} else {
			fmt.Fprintf(out, "%s: %q is not a whole word of the text\n", color.RedString("no match"), categorizer.Normalize(word))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
