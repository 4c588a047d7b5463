package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import URL",
		Short: "Add a dish from a recipe web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.app().Import(cmd.Context(), s.clipper, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("✓ Imported %s (%s)", d.Name, d.ID)))
			for _, ing := range d.Ingredients {
				fmt.Fprintln(out, "  "+ing)
			}
			return nil
		},
	}
}
