package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookwise-labs/bookwise-cli/internal/chunker"
	"github.com/bookwise-labs/bookwise-cli/internal/core/services"
)

var (
	indexBook   string
	indexAuthor string
	indexFile   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index for a book",
	Long: `Reads a plain-text book, splits it into overlapping passages,
embeds each passage and stores the result as a per-book index. A book
is indexed at most once; re-running the command reuses the existing
index.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexBook, "book", "", "book title (required)")
	indexCmd.Flags().StringVar(&indexAuthor, "author", "", "book author (required)")
	indexCmd.Flags().StringVar(&indexFile, "file", "", "path to the plain-text book (required)")
	_ = indexCmd.MarkFlagRequired("book")
	_ = indexCmd.MarkFlagRequired("author")
	_ = indexCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := ensureStores(); err != nil {
		return err
	}

	if ingestService == nil {
		if err := ensureEmbedder(settings); err != nil {
			return err
		}
		splitter, err := chunker.New(settings.Chunking.Size, settings.Chunking.Overlap)
		if err != nil {
			return err
		}
		ingestService = services.NewIngestService(indexStore, embedder, splitter, libraryStore)
	}

	text, err := os.ReadFile(indexFile)
	if err != nil {
		return fmt.Errorf("read book file: %w", err)
	}

	result, err := ingestService.Ingest(context.Background(), indexBook, indexAuthor, string(text))
	if err != nil {
		return err
	}
	defer result.Index.Close()

	if result.Reused {
		cmd.Printf("Index for %q by %s already exists (%d passages), reusing it.\n",
			indexBook, indexAuthor, result.PassageCount)
		return nil
	}

	cmd.Printf("Indexed %q by %s: %d passages.\n", indexBook, indexAuthor, result.PassageCount)
	return nil
}
