package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newRespondCmd creates the respond subcommand.
func newRespondCmd() *cobra.Command {
	var (
		metadataPairs []string
		studentName   string
		fromStdin     bool
	)

	cmd := &cobra.Command{
		Use:   "respond [query]",
		Short: "Draft a reply for a single student email",
		Long: `Respond runs one email through the advising engine and prints the drafted
reply together with the decision, the confidence score, and the reasoning
trail.

The email text is taken from the argument, or from stdin with --stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			switch {
			case fromStdin:
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				query = string(data)
			case len(args) == 1:
				query = args[0]
			default:
				return fmt.Errorf("either a query argument or --stdin is required")
			}
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("query is empty")
			}

			metadata, err := parseMetadata(metadataPairs)
			if err != nil {
				return err
			}
			if studentName != "" {
				metadata["student_name"] = studentName
			}

			spin := newSpinner("Matching against knowledge base...")
			if !outputJSON {
				spin.Start()
			}

			engine, err := buildEngine()
			if err != nil {
				spin.Stop()
				return err
			}
			resp := engine.Process(query, metadata)
			spin.Stop()

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			printResponse(resp)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&metadataPairs, "metadata", "m", nil, "metadata values as key=value (repeatable)")
	cmd.Flags().StringVar(&studentName, "student", "", "student name for the greeting")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the email text from stdin")

	return cmd
}

// parseMetadata converts key=value flag pairs to a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	metadata := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
