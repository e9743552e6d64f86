package cli

import (
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage configuration",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := loadSettings(); err != nil {
			return err
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Printf("Embedding provider:  %s\n", settings.EmbeddingProvider)
	cmd.Printf("Embedding model:     %s\n", settings.EmbeddingModel)
	if settings.EmbeddingBaseURL != "" {
		cmd.Printf("Embedding base URL:  %s\n", settings.EmbeddingBaseURL)
	}
	cmd.Printf("Chat provider:       %s\n", settings.ChatProvider)
	cmd.Printf("Chat model:          %s\n", settings.ChatModel)
	if settings.ChatBaseURL != "" {
		cmd.Printf("Chat base URL:       %s\n", settings.ChatBaseURL)
	}
	cmd.Printf("Env file:            %s\n", settings.EnvPath)
	cmd.Printf("Chunk size:          %d\n", settings.Chunking.Size)
	cmd.Printf("Chunk overlap:       %d\n", settings.Chunking.Overlap)
	cmd.Printf("Retriever k:         %d\n", settings.Retriever.K)
	cmd.Printf("Score threshold:     %.2f\n", settings.Retriever.ScoreThreshold)
	return nil
}
