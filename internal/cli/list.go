package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/shelltab/shelltab/internal/scripts"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all visible scripts",
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listScripts()
	},
}

// listScripts prints the visible-scripts table, also reachable via the
// root command's --list flag.
func listScripts() error {
	cfg, err := loadConfig(configFlag, nil)
	if err != nil {
		return err
	}
	finder := scripts.NewFinder(cfg)
	visible, err := finder.GetAllVisibleScripts()
	if err != nil {
		return err
	}
	if len(visible) == 0 {
		fmt.Println("no scripts found — check your config's paths/environments")
		return nil
	}

	maxName := len("NAME")
	for _, s := range visible {
		if len(s.Name()) > maxName {
			maxName = len(s.Name())
		}
	}

	nameHeader := color.New(color.Bold).Sprintf("%-*s", maxName, "NAME")
	fmt.Printf("%s  DESCRIPTION\n", nameHeader)
	for _, s := range visible {
		name := color.New(color.FgCyan).Sprintf("%-*s", maxName, s.Name())
		fmt.Printf("%s  %s\n", name, s.Description)
	}
	return nil
}
