package main

import (
	"fmt"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/relation"
	"github.com/spf13/cobra"
)

func propagateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "propagate <type/id>",
		Short: "Re-propagate an entity's context into its neighbors",
		Long: `Recompute the context of a financial entity and write the resolved
fields into every directly linked lower-priority neighbor. Useful after
an out-of-band edit, e.g. a corrected OCR extraction.`,
		Args: cobra.ExactArgs(1),
		RunE: runPropagate,
	}
}

func runPropagate(cmd *cobra.Command, args []string) error {
	source, err := parseEntityRef(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := relation.New(store).PropagateFromSource(ctx, source); err != nil {
		return fmt.Errorf("failed to propagate from %s: %w", source, err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Propagated context from %s", source)))
	return nil
}
