package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/shelltab/shelltab/internal/lint"
	"github.com/shelltab/shelltab/internal/scripts"
	"github.com/shelltab/shelltab/internal/scriptparser"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:     "lint <name>",
	Aliases: []string{"validate"},
	Short:   "Lint a script for errors and warnings",
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

		content, err := os.ReadFile(script.Path())
		if err != nil {
			return fmt.Errorf("reading script %q: %w", script.Path(), err)
		}

		parser := scriptparser.NewParser(finderLoader{finder: finder})
		commands, err := parser.Parse(*script, string(content))
		if err != nil {
			return fmt.Errorf("invalid script %q: %w", name, err)
		}

		var warns []string
		warns = append(warns, lint.SecretWarnings(commands)...)

		env := owningEnvironment(cfg, *script)
		if env != nil {
			for _, path := range env.DotenvPaths {
				if _, err := os.Stat(path); err != nil {
					warns = append(warns, fmt.Sprintf("dotenv %q: %s", path, friendlyError(err)))
				}
			}
		}

		for _, w := range warns {
			log.Warn(w)
		}
		if len(warns) > 0 {
			fmt.Printf("script %q is valid with %d warning(s)\n", name, len(warns))
		} else {
			fmt.Printf("script %q is valid\n", name)
		}
		return nil
	},
}
