package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/scholar/internal/config"
)

var seedOutput string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the built-in conversation library as YAML",
	Long: `Print the built-in conversation library as YAML.

Edit the output and point seed_file (or --seed) at it to start Scholar
with your own conversations.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := config.MarshalSeed(config.DefaultSeed(time.Now()))
	if err != nil {
		return fmt.Errorf("error encoding library: %w", err)
	}

	if seedOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(seedOutput, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", seedOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", seedOutput)
	return nil
}
