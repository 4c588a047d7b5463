package main

import (
	"fmt"
	"strings"

	"weekly-menu/internal/config"
	"weekly-menu/internal/metrics"
	"weekly-menu/internal/planner"

	"github.com/spf13/cobra"
)

func statusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the stored state and process health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := s.app()
			dishes := a.Dishes()
			var special, hidden, planned int
			for _, d := range dishes {
				if d.Special {
					special++
				}
				if !d.IncludeInPlanner {
					hidden++
				}
			}
			for _, day := range a.Week() {
				if day.Primary.DishName != "" {
					planned++
				}
				if day.Secondary.DishName != "" {
					planned++
				}
			}

			location := s.cfg.DataDir
			if s.cfg.StoreBackend != config.BackendFile {
				location = s.cfg.DatabasePath
			}
			health := metrics.ReadHealth(s.cfg.DataDir)

			var sb strings.Builder
			sb.WriteString(TitleStyle.Render("Weekly menu") + "\n")
			sb.WriteString(fmt.Sprintf("  Store:     %s (%s)\n", s.cfg.StoreBackend, location))
			sb.WriteString(fmt.Sprintf("  Dishes:    %d (%d special, %d hidden)\n", len(dishes), special, hidden))
			sb.WriteString(fmt.Sprintf("  Planned:   %d of %d slots\n", planned, len(planner.Days)*len(planner.Slots)))
			sb.WriteString(fmt.Sprintf("  To buy:    %d ingredients\n", len(a.ToBuy())))
			sb.WriteString(fmt.Sprintf("  At home:   %d ingredients\n", len(a.Pantry())))
			sb.WriteString(fmt.Sprintf("  Data disk: %s in %d files\n", health.DataSize(), health.DataFiles))
			sb.WriteString(fmt.Sprintf("  Memory:    %dMB alloc / %dMB sys\n", health.AllocMB, health.SysMB))
			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		},
	}
}
