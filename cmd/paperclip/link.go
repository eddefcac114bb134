package main

import (
	"errors"
	"fmt"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/relation"
	"github.com/spf13/cobra"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <type/id> <type/id>",
		Short: "Link two entities and propagate financial context",
		Long: `Create a bidirectional relationship between two entities.

When a financial entity (receipt, reimbursement, transaction) is linked,
its resolved context is propagated into lower-priority neighbors.

Examples:
  paperclip link receipt/r-1 transaction/tx-1
  paperclip link reimbursement/rb-9 transaction/tx-4 --metadata "March sitsit"`,
		Args: cobra.ExactArgs(2),
		RunE: runLink,
	}

	cmd.Flags().String("metadata", "", "free-form annotation stored on the relationship")
	cmd.Flags().String("created-by", "", "user id recorded as the link creator")

	return cmd
}

func runLink(cmd *cobra.Command, args []string) error {
	a, err := parseEntityRef(args[0])
	if err != nil {
		return err
	}
	b, err := parseEntityRef(args[1])
	if err != nil {
		return err
	}

	metadata, _ := cmd.Flags().GetString("metadata")
	createdBy, _ := cmd.Flags().GetString("created-by")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := relation.New(store)

	rel, err := svc.Link(ctx, a, b, metadata, createdBy)
	if errors.Is(err, common.ErrDuplicateLink) {
		// Already linked is success for an idempotent caller.
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%s and %s are already linked", a, b)))
		return nil
	}
	if err != nil {
		return common.NewUserError("could not link", err)
	}

	// One hop from each endpoint; the edge itself is the only change.
	if err := svc.PropagateFromSource(ctx, a); err != nil {
		return fmt.Errorf("failed to propagate from %s: %w", a, err)
	}
	if err := svc.PropagateFromSource(ctx, b); err != nil {
		return fmt.Errorf("failed to propagate from %s: %w", b, err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Linked %s ↔ %s (%s)", a, b, rel.ID)))
	return nil
}
