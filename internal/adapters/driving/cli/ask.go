package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/services"
)

var (
	askBook   string
	askAuthor string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask questions grounded in an indexed book",
	Long: `Answers questions using only passages retrieved from the book's
index. With a question argument, answers once and exits. Without one,
starts an interactive session; enter q to quit.

Defaults to the last indexed book when --book and --author are omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askBook, "book", "", "book title (defaults to the last indexed book)")
	askCmd.Flags().StringVar(&askAuthor, "author", "", "book author (defaults to the last indexed book)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := ensureStores(); err != nil {
		return err
	}

	if askService == nil {
		if err := ensureEmbedder(settings); err != nil {
			return err
		}
		if err := ensureLLM(settings); err != nil {
			return err
		}
		askService = services.NewQAService(
			services.NewRetriever(embedder),
			services.NewAugmenter(promptStore),
			llm,
			promptStore,
			settings.Retriever,
		)
	}

	identity, err := resolveIdentity(askBook, askAuthor)
	if err != nil {
		return err
	}

	index, err := openIndex(identity)
	if err != nil {
		return err
	}
	defer index.Close()

	ctx := context.Background()
	session := domain.NewSessionState(identity)
	session.Indexed = true

	if len(args) == 1 {
		answer, err := askService.Ask(ctx, session, index, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Answer: %s\n", answer)
		return nil
	}

	// Interactive session: one question per line, q quits.
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		cmd.Print("Ask your question (q to quit): ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "q" {
			return nil
		}
		if question == "" {
			continue
		}

		answer, err := askService.Ask(ctx, session, index, question)
		if err != nil {
			return err
		}
		cmd.Printf("Answer: %s\n\n", answer)
	}
}
