package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/importer"
	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import bank transactions from OFX or QFX files. Re-importing the same
statement is a no-op: rows are deduplicated by content hash.

Examples:
  paperclip import ~/Downloads/statement_2025_03.ofx
  paperclip import ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	ctx := cmd.Context()
	parser := importer.NewParser()

	var allTransactions []model.Transaction
	seen := make(map[string]bool)

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		for _, tx := range transactions {
			if !seen[tx.Hash] {
				seen[tx.Hash] = true
				allTransactions = append(allTransactions, tx)
			}
		}
	}

	if len(allTransactions) == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(allFiles))
	}

	if dryRun {
		fmt.Println(cli.SubtleStyle.Render(
			fmt.Sprintf("dry run: %d transaction(s) would be imported", len(allTransactions))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(allTransactions),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	const batchSize = 100
	for start := 0; start < len(allTransactions); start += batchSize {
		end := start + batchSize
		if end > len(allTransactions) {
			end = len(allTransactions)
		}
		batch := allTransactions[start:end]

		err := common.WithRetry(ctx, func() error {
			return store.SaveTransactions(ctx, batch)
		}, service.RetryOptions{MaxAttempts: 3})
		if err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}

		_ = bar.Add(len(batch))
	}

	fmt.Println(cli.SuccessStyle.Render(
		fmt.Sprintf("✓ Imported %d transaction(s) from %d file(s)", len(allTransactions), len(allFiles))))
	return nil
}
