package main

import (
	"fmt"

	"github.com/kiltahuone/paperclip/internal/cli"
	"github.com/spf13/cobra"
)

func linksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <type/id>",
		Short: "List every relationship touching an entity",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinks,
	}
}

func runLinks(cmd *cobra.Command, args []string) error {
	focal, err := parseEntityRef(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	relationships, err := store.GetRelationshipsFor(ctx, focal)
	if err != nil {
		return fmt.Errorf("failed to list relationships: %w", err)
	}

	if len(relationships) == 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%s has no relationships", focal)))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Relationships of %s", focal)))
	for i := range relationships {
		fmt.Println(cli.RenderRelationship(&relationships[i], focal))
	}

	return nil
}
