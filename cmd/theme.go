package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [name]",
	Short:     "Show or set the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: themeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			active := s.Theme()
			for _, n := range theme.Names {
				marker := "  "
				if n == active {
					marker = "* "
				}
				fmt.Fprintln(out, marker+theme.Get(n).Title.Render(string(n)))
			}
			return nil
		}

		name, err := theme.Parse(args[0])
		if err != nil {
			return err
		}
		if err := s.SetTheme(name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme set to %s.\n", name)
		return nil
	},
}

func themeNames() []string {
	out := make([]string, len(theme.Names))
	for i, n := range theme.Names {
		out[i] = string(n)
	}
	return out
}
