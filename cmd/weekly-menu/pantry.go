package main

import (
	"fmt"
	"strings"

	"weekly-menu/internal/pantry"
	"weekly-menu/internal/shopping"

	"github.com/spf13/cobra"
)

func pantryCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Track which ingredients are already at home",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List ingredients marked at home",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items := s.app().Pantry()
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), MutedStyle.Render("Nothing marked at home."))
				}
				for _, item := range items {
					fmt.Fprintln(cmd.OutOrStdout(), "  "+item)
				}
				return nil
			},
		},
		pantrySetCmd(s, "have", true),
		pantrySetCmd(s, "need", false),
	)
	return cmd
}

func pantrySetCmd(s *session, use string, available bool) *cobra.Command {
	short := "Mark ingredients as at home"
	if !available {
		short = "Mark ingredients as needed again"
	}
	return &cobra.Command{
		Use:   use + " INGREDIENT...",
		Short: short,
		Long:  short + ". Separate several ingredients with commas.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range strings.Split(strings.Join(args, " "), ",") {
				if err := s.app().SetAvailable(cmd.Context(), name, available); err != nil {
					return fmt.Errorf("cannot mark %q: %w", strings.TrimSpace(name), err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ %s: %s", use, pantry.Key(name))))
			}
			return nil
		},
	}
}

func shoppingCmd(s *session) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Show what to buy for the planned week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := s.app().ToBuy()
			title := "To buy"
			if all {
				items, title = s.app().ShoppingList(), "Shopping list"
			}
			fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render(title))
			fmt.Fprint(cmd.OutOrStdout(), renderItems(items))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include ingredients already at home")
	return cmd
}

func renderItems(items []shopping.Item) string {
	if len(items) == 0 {
		return MutedStyle.Render("  Nothing to buy.") + "\n"
	}
	var sb strings.Builder
	for _, item := range items {
		if item.Count > 1 {
			sb.WriteString(fmt.Sprintf("  %s ×%d\n", item.Name, item.Count))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s\n", item.Name))
	}
	return sb.String()
}
