package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bookwise-labs/bookwise-cli/internal/core/services"
)

var (
	summarizeBook   string
	summarizeAuthor string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Produce a whole-book summary",
	Long: `Feeds every indexed passage of the book to the chat model in a
single pass and prints the resulting summary.

Defaults to the last indexed book when --book and --author are omitted.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeBook, "book", "", "book title (defaults to the last indexed book)")
	summarizeCmd.Flags().StringVar(&summarizeAuthor, "author", "", "book author (defaults to the last indexed book)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := ensureStores(); err != nil {
		return err
	}

	if summaryService == nil {
		if err := ensureLLM(settings); err != nil {
			return err
		}
		summaryService = services.NewSummaryService(llm)
	}

	identity, err := resolveIdentity(summarizeBook, summarizeAuthor)
	if err != nil {
		return err
	}

	index, err := openIndex(identity)
	if err != nil {
		return err
	}
	defer index.Close()

	summary, err := summaryService.Summarise(context.Background(), index)
	if err != nil {
		return err
	}

	cmd.Println(summary)
	return nil
}
