package main

import (
	"fmt"

	"weekly-menu/internal/app"
	"weekly-menu/internal/planner"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func planCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and edit the weekly plan",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the week",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), renderWeek(s.app().Week()))
				return nil
			},
		},
		planAssignCmd(s),
		planChoicesCmd(s),
		&cobra.Command{
			Use:   "clear DAY SLOT",
			Short: "Empty one slot",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, slot, err := parseDaySlot(args[0], args[1])
				if err != nil {
					return err
				}
				if err := s.app().ClearSlot(cmd.Context(), day, slot); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Cleared %s %s", day, slot)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Empty the whole week",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s.app().ResetPlan(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ The week is empty"))
				return nil
			},
		},
	)
	return cmd
}

func planAssignCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "assign DAY SLOT DISH",
		Short: "Put a dish into a slot",
		Long: `Put a dish into a slot. DAY is a weekday name or its three-letter
abbreviation, SLOT is primary (p) or secondary (s), DISH is an id or name.
Only one special dish may be planned per week.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, slot, err := parseDaySlot(args[0], args[1])
			if err != nil {
				return err
			}
			d, err := s.findDish(args[2:])
			if err != nil {
				return err
			}
			if err := s.app().Assign(cmd.Context(), day, slot, d.ID); err != nil {
				return fmt.Errorf("cannot plan %s on %s %s: %w", d.Name, day, slot, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ %s %s: %s", day, slot, d.Name)))
			return nil
		},
	}
}

func planChoicesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "choices DAY SLOT",
		Short: "List the dishes that can go into a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, slot, err := parseDaySlot(args[0], args[1])
			if err != nil {
				return err
			}
			for _, c := range s.app().Choices(day, slot) {
				line := "  " + c.Dish.Name
				switch {
				case c.Disabled:
					line = MutedStyle.Render(line + " (another special dish is planned)")
				case c.Dish.Special:
					line = SpecialStyle.Render(line + " ★")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func parseDaySlot(dayArg, slotArg string) (planner.Day, planner.Slot, error) {
	day, ok := planner.ParseDay(dayArg)
	if !ok {
		return "", "", fmt.Errorf("unknown day %q: %w", dayArg, planner.ErrUnknownSlot)
	}
	slot, ok := planner.ParseSlot(slotArg)
	if !ok {
		return "", "", fmt.Errorf("unknown slot %q: %w", slotArg, planner.ErrUnknownSlot)
	}
	return day, slot, nil
}

func renderWeek(week []app.DayView) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers("DAY", "PRIMARY", "SECONDARY")
	for _, d := range week {
		t.Row(string(d.Day), slotLabel(d.Primary), slotLabel(d.Secondary))
	}
	return t.Render()
}

func slotLabel(v app.SlotView) string {
	if v.DishName == "" {
		return MutedStyle.Render("-")
	}
	if v.Special {
		return v.DishName + " ★"
	}
	return v.DishName
}
