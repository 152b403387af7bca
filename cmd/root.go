package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhubert/scholar/internal/app"
	"github.com/zhubert/scholar/internal/assistant"
	"github.com/zhubert/scholar/internal/config"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Chat with a scientific literature assistant",
	Long: `Scholar is a terminal chat client for a scientific literature assistant.
Questions get answers backed by references; past conversations live in a
library you can filter, pin, rename and delete.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.scholar/config.yaml)")

	rootCmd.Flags().String("theme", "", "Color theme for this run")
	rootCmd.Flags().String("seed", "", "YAML conversation library to start from")
	rootCmd.Flags().String("assistant", "", `Reply mode: "placeholder" or "catalog"`)
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("scholar %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("scholar %s\n", version)
}

// newViper returns the config viper with this command's flags bound over
// the file and environment values.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := config.NewViper(configPath)
	for key, flag := range map[string]string{
		"theme":          "theme",
		"seed_file":      "seed",
		"assistant.mode": "assistant",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return v, nil
}

// loadConfig loads and validates the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(ui.ThemeNameStrings()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newResponder builds the assistant selected by cfg. Catalog mode draws its
// references from the seeded conversations.
func newResponder(cfg *config.Config, seed []conversation.Conversation) conversation.Responder {
	ref := cfg.Assistant.Reference
	placeholder := &assistant.Placeholder{
		Content: cfg.Assistant.Reply,
		Reference: conversation.Reference{
			Title:  ref.Title,
			Author: ref.Author,
			Year:   ref.Year,
			URL:    ref.URL,
		},
	}
	if cfg.Assistant.Mode == config.AssistantCatalog {
		catalog := assistant.CatalogFromConversations(seed, placeholder)
		logger.ComponentLogger("cmd").Info("using catalog assistant", "references", catalog.Len())
		return catalog
	}
	return placeholder
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	seed, err := config.LoadSeed(cfg.SeedFile, time.Now())
	if err != nil {
		return fmt.Errorf("error loading conversations: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	logger.ComponentLogger("cmd").Info("starting", "version", version,
		"config", cfg.Path(), "conversations", len(seed), "assistant", cfg.Assistant.Mode)

	store := conversation.NewStore(seed, newResponder(cfg, seed))

	// Create and run the app
	m := app.New(cfg, store, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
