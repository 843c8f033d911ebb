package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/campusdesk/email-advisor/internal/advisor"
)

// batchInput is one line of the input JSONL file.
type batchInput struct {
	Query    string            `json:"query"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// batchOutput is one line of the output JSONL file.
type batchOutput struct {
	Query    string            `json:"query"`
	Response *advisor.Response `json:"response"`
}

// newBatchCmd creates the batch subcommand.
func newBatchCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process a batch of emails from a JSONL file",
		Long: `Batch reads one email per line from a JSONL file
({"query": "...", "metadata": {...}}), runs each through the engine, and
writes one response per line to the output file. A summary of decisions is
printed at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer input.Close()

			output, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer output.Close()

			engine, err := buildEngine()
			if err != nil {
				return err
			}

			// Count lines first so the progress bar has a total.
			total := 0
			counter := bufio.NewScanner(input)
			counter.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
			for counter.Scan() {
				if len(counter.Bytes()) > 0 {
					total++
				}
			}
			if err := counter.Err(); err != nil {
				return fmt.Errorf("scan input file: %w", err)
			}
			if _, err := input.Seek(0, 0); err != nil {
				return fmt.Errorf("rewind input file: %w", err)
			}

			var bar *progressbar.ProgressBar
			if !outputJSON {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("processing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprint(os.Stderr, "\n")
					}),
				)
			}

			enc := json.NewEncoder(output)
			var processed, autoSend, review, failed int

			scanner := bufio.NewScanner(input)
			scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
			line := 0
			for scanner.Scan() {
				if len(scanner.Bytes()) == 0 {
					continue
				}
				line++

				var in batchInput
				if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
					logger.Warn().Err(err).Int("line", line).Msg("Skipping malformed line")
					failed++
					continue
				}

				resp := engine.Process(in.Query, in.Metadata)
				if err := enc.Encode(batchOutput{Query: in.Query, Response: resp}); err != nil {
					return fmt.Errorf("write output: %w", err)
				}

				processed++
				if resp.AutoSend {
					autoSend++
				} else {
					review++
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("scan input file: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]int{
					"processed": processed,
					"auto_send": autoSend,
					"review":    review,
					"failed":    failed,
				})
			}

			successColor.Printf("✓ Processed %d emails\n", processed)
			fmt.Printf("  Auto-send: %d | Needs review: %d", autoSend, review)
			if failed > 0 {
				fmt.Printf(" | Skipped: %d", failed)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input JSONL file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output JSONL file (required)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
