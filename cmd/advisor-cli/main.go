// Package main provides the advising CLI entrypoint.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/config"
	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "advisor-cli",
	Short: "Advising CLI for drafting replies and managing the knowledge base",
	Long: `Advisor CLI runs the email advising engine locally, without the API server.

Use this tool to:
- Draft a reply for a single student email
- Process a batch of emails from a JSONL file
- Inspect and validate the knowledge base

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logLevel := cfg.Observability.LogLevel
		if !verbose {
			logLevel = "warn"
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       logLevel,
			Format:      logFormat,
			ServiceName: "advisor-cli",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRespondCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newKBCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.Encode(map[string]string{"version": "0.1.0"})
				return
			}
			fmt.Println("advisor-cli v0.1.0")
		},
	}
}

// loadBase reads the knowledge base from the configured path, or the
// built-in one when no path is set.
func loadBase() (*knowledge.Base, error) {
	if cfg.Knowledge.BasePath == "" {
		return knowledge.DefaultBase(), nil
	}
	return knowledge.LoadFile(cfg.Knowledge.BasePath)
}

// buildEngine assembles the local advising engine from the configuration.
func buildEngine() (*advising.Engine, error) {
	base, err := loadBase()
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	references := knowledge.DefaultReferences()
	if cfg.Knowledge.ReferencesPath != "" {
		references, err = knowledge.LoadReferences(cfg.Knowledge.ReferencesPath)
		if err != nil {
			return nil, fmt.Errorf("load reference corpus: %w", err)
		}
	}

	return advising.New(base,
		advisor.ConfidenceSettings{
			ReviewThreshold:   cfg.Confidence.ReviewThreshold,
			AutoSendThreshold: cfg.Confidence.AutoSendThreshold,
			AmbiguityGap:      cfg.Confidence.AmbiguityGap,
		},
		advisor.WithRetriever(advisor.NewCorpusRetriever(references)),
		advisor.WithReferenceLimit(cfg.Knowledge.ReferenceLimit),
		advisor.WithLogger(logger.WithComponent("advisor")),
	), nil
}
