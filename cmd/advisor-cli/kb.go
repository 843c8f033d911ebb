package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campusdesk/email-advisor/internal/knowledge"
)

// newKBCmd creates the kb subcommand group.
func newKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect and validate the knowledge base",
	}
	cmd.AddCommand(newKBListCmd())
	cmd.AddCommand(newKBValidateCmd())
	return cmd
}

// newKBListCmd creates the kb list subcommand.
func newKBListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge base articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBase()
			if err != nil {
				return err
			}

			articles := base.Articles()
			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{"articles": articles})
			}

			headerColor.Printf("Knowledge base: %d articles\n\n", len(articles))
			for _, a := range articles {
				fmt.Printf("  %s", a.Subject)
				dimColor.Printf("  (%s)\n", a.ID)
				fmt.Printf("    utterances: %d", len(a.Utterances))
				if len(a.Categories) > 0 {
					fmt.Printf(" | categories: %s", strings.Join(a.Categories, ", "))
				}
				if keys := a.TemplateKeys(); len(keys) > 0 {
					fmt.Printf(" | placeholders: %s", strings.Join(keys, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// newKBValidateCmd creates the kb validate subcommand.
func newKBValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a knowledge base file",
		Long: `Validate loads a knowledge base YAML file and reports structural problems:
duplicate or empty article ids, articles without utterances, and malformed
template placeholders. Without an argument the configured path is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Knowledge.BasePath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no knowledge base path given or configured")
			}

			base, err := knowledge.LoadFile(path)
			if err != nil {
				if outputJSON {
					enc := json.NewEncoder(os.Stdout)
					return enc.Encode(map[string]interface{}{"valid": false, "error": err.Error()})
				}
				errorColor.Printf("✗ %s: %v\n", path, err)
				os.Exit(1)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				return enc.Encode(map[string]interface{}{"valid": true, "articles": base.Len()})
			}
			successColor.Printf("✓ %s is valid (%d articles)\n", path, base.Len())
			return nil
		},
	}
}
