package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/shelltab/shelltab/internal/scripts"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <name>",
	Short:   "Remove a script file",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := loadConfig(configFlag, nil)
		if err != nil {
			return err
		}

		finder := scripts.NewFinder(cfg)
		script, err := finder.FindScriptByName(name)
		if err != nil {
			return err
		}

		if err := os.Remove(script.Path()); err != nil {
			return fmt.Errorf("%s", friendlyError(err))
		}
		log.Info("removed script", "name", name, "path", script.Path())
		return nil
	},
}
