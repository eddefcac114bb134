package main

import (
	"errors"
	"fmt"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/relation"
	"github.com/spf13/cobra"
)

func unlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <relationship-id>",
		Short: "Delete a relationship by id",
		Long: `Delete a relationship. Affected entities are not rewritten: the next
context resolution recomputes without the removed edge.`,
		Args: cobra.ExactArgs(1),
		RunE: runUnlink,
	}
}

func runUnlink(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := relation.New(store)

	err = svc.Unlink(ctx, args[0])
	if errors.Is(err, common.ErrNotFound) {
		// Already deleted is success for an idempotent caller.
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("relationship %s does not exist", args[0])))
		return nil
	}
	if err != nil {
		return common.NewUserError("could not unlink", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Unlinked %s", args[0])))
	return nil
}
