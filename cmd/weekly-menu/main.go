// Package main provides the weekly-menu command line, a terminal front end
// to the household dinner planner.
package main

import (
	"fmt"
	"os"

	"weekly-menu/internal/app"
	"weekly-menu/internal/clipper"
	"weekly-menu/internal/config"
	"weekly-menu/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// session is the state shared by the subcommands of one invocation.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	rt      *app.Runtime
	clipper app.Clipper
}

func (s *session) app() *app.App {
	return s.rt.App
}

func rootCmd() *cobra.Command {
	s := &session{clipper: clipper.NewClipper(nil)}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "weekly-menu",
		Short:         "Plan the week's dinners and the shopping that goes with them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewFromEnv()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			s.cfg = cfg
			s.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, "weekly-menu")

			rt, err := app.Open(cmd.Context(), cfg, s.logger)
			if err != nil {
				return err
			}
			s.rt = rt
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if s.rt == nil {
				return nil
			}
			return s.rt.Close()
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		dishesCmd(s),
		planCmd(s),
		pantryCmd(s),
		shoppingCmd(s),
		importCmd(s),
		statusCmd(s),
	)
	return cmd
}
