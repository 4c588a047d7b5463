package main

import (
	"fmt"
	"strings"

	"weekly-menu/internal/dish"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func dishesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dishes",
		Short: "Manage the dish catalog",
	}
	cmd.AddCommand(
		dishesListCmd(s),
		dishesAddCmd(s),
		dishesEditCmd(s),
		dishesRemoveCmd(s),
		dishesIncludeCmd(s, "include", true),
		dishesIncludeCmd(s, "exclude", false),
		dishesSpecialCmd(s),
	)
	return cmd
}

func dishesListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every dish",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dishes := s.app().Dishes()
			if len(dishes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MutedStyle.Render("No dishes yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDishes(dishes))
			return nil
		},
	}
}

func renderDishes(dishes []dish.Dish) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers("ID", "NAME", "INGREDIENTS", "FLAGS")
	for _, d := range dishes {
		var flags []string
		if d.Special {
			flags = append(flags, "special")
		}
		if d.IsDefault {
			flags = append(flags, "default")
		}
		if !d.IncludeInPlanner {
			flags = append(flags, "hidden")
		}
		t.Row(d.ID, d.Name, strings.Join(d.Ingredients, ", "), strings.Join(flags, " "))
	}
	return t.Render()
}

func dishesAddCmd(s *session) *cobra.Command {
	var (
		ingredients string
		special     bool
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a dish",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.app().AddDish(cmd.Context(), strings.Join(args, " "), dish.SplitIngredients(ingredients), special)
			if err != nil {
				return fmt.Errorf("cannot add dish: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Added %s (%s)", d.Name, d.ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "Comma-separated ingredients")
	cmd.Flags().BoolVar(&special, "special", false, "Mark the dish special (at most one per week)")
	return cmd
}

func dishesEditCmd(s *session) *cobra.Command {
	var (
		name        string
		ingredients string
		special     bool
	)
	cmd := &cobra.Command{
		Use:   "edit DISH",
		Short: "Change a dish's name, ingredients or special flag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.findDish(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				d.Name = name
			}
			if cmd.Flags().Changed("ingredients") {
				d.Ingredients = dish.SplitIngredients(ingredients)
			}
			if cmd.Flags().Changed("special") {
				d.Special = special
			}
			d, err = s.app().EditDish(cmd.Context(), d.ID, d.Name, d.Ingredients, d.Special)
			if err != nil {
				return fmt.Errorf("cannot edit dish: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Updated "+d.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "Comma-separated ingredients, replacing the current ones")
	cmd.Flags().BoolVar(&special, "special", false, "Special flag")
	return cmd
}

func dishesRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove DISH",
		Aliases: []string{"rm"},
		Short:   "Remove a user dish and clear it from the plan",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.findDish(args)
			if err != nil {
				return err
			}
			if err := s.app().RemoveDish(cmd.Context(), d.ID); err != nil {
				return fmt.Errorf("cannot remove %s: %w", d.Name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Removed "+d.Name))
			return nil
		},
	}
}

func dishesIncludeCmd(s *session, use string, include bool) *cobra.Command {
	short, done := "Show a dish in the planner again", "Included"
	if !include {
		short, done = "Hide a dish from the planner and clear it from the plan", "Excluded"
	}
	return &cobra.Command{
		Use:   use + " DISH",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.findDish(args)
			if err != nil {
				return err
			}
			if err := s.app().SetIncludeInPlanner(cmd.Context(), d.ID, include); err != nil {
				return fmt.Errorf("cannot %s %s: %w", use, d.Name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ %s %s", done, d.Name)))
			return nil
		},
	}
}

func dishesSpecialCmd(s *session) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "special DISH",
		Short: "Mark a dish special, or everyday with --off",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.findDish(args)
			if err != nil {
				return err
			}
			if err := s.app().SetSpecial(cmd.Context(), d.ID, !off); err != nil {
				return fmt.Errorf("cannot change %s: %w", d.Name, err)
			}
			if off {
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ "+d.Name+" is an everyday dish"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), SpecialStyle.Render("★ "+d.Name+" is special"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Clear the special flag")
	return cmd
}

// findDish resolves the words of args as a dish id or name.
func (s *session) findDish(args []string) (dish.Dish, error) {
	ref := strings.Join(args, " ")
	d, ok := s.app().FindDish(ref)
	if !ok {
		return dish.Dish{}, fmt.Errorf("no dish %q: %w", ref, dish.ErrUnknownDish)
	}
	return d, nil
}
