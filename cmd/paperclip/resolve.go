package main

import (
	"fmt"
	"time"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/relation"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <type/id>",
		Short: "Resolve the financial context of an entity",
		Long: `Compute the authoritative financial context for an entity by merging
its directly linked financial contributors in priority order
(manual > receipt > reimbursement > transaction).

Override flags supply manual values; any override forces the value
source to "manual" even when nothing is linked.`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().String("date", "", "manual date override (YYYY-MM-DD)")
	cmd.Flags().Float64("amount", 0, "manual amount override")
	cmd.Flags().String("description", "", "manual description override")
	cmd.Flags().String("category", "", "manual category override")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	focal, err := parseEntityRef(args[0])
	if err != nil {
		return err
	}

	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	resolved, err := relation.New(store).ResolveContext(ctx, focal, overrides)
	if err != nil {
		return fmt.Errorf("failed to resolve context: %w", err)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Context of %s", focal)))
	fmt.Print(cli.RenderContext(resolved))
	return nil
}

func overridesFromFlags(cmd *cobra.Command) (*model.ContextOverride, error) {
	overrides := &model.ContextOverride{}

	if cmd.Flags().Changed("date") {
		raw, _ := cmd.Flags().GetString("date")
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		overrides.Date = &date
	}
	if cmd.Flags().Changed("amount") {
		amount, _ := cmd.Flags().GetFloat64("amount")
		overrides.TotalAmount = &amount
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		overrides.Description = &description
	}
	if cmd.Flags().Changed("category") {
		category, _ := cmd.Flags().GetString("category")
		overrides.Category = &category
	}

	return overrides, nil
}
