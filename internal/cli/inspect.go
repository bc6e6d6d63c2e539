package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/shelltab/shelltab/internal/scripts"
	"github.com/shelltab/shelltab/internal/scriptparser"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Show detailed info about a script",
	Args:  cobra.ExactArgs(1),
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
		log.Debug("resolved script", "name", script.Name(), "path", script.Path())

		content, err := os.ReadFile(script.Path())
		if err != nil {
			return fmt.Errorf("reading script %q: %w", script.Path(), err)
		}

		parser := scriptparser.NewParser(finderLoader{finder: finder})
		commands, err := parser.Parse(*script, string(content))
		if err != nil {
			return fmt.Errorf("parsing script %q: %w", name, err)
		}
		log.Debug("parsed script", "commands", len(commands))

		fmt.Printf("Name:        %s\n", script.Name())
		fmt.Printf("Path:        %s\n", script.Path())
		if script.Namespace != "" {
			fmt.Printf("Namespace:   %s\n", script.Namespace)
		}
		if script.Hidden {
			fmt.Println("Hidden:      true")
		}
		if script.Description != "" {
			fmt.Printf("Description: %s\n", script.Description)
		}
		fmt.Printf("Commands:    %d\n", len(commands))
		for i, c := range commands {
			fmt.Printf("  %2d. %-12s %s\n", i+1, c.Kind, c.Line)
		}

		env := owningEnvironment(cfg, *script)
		if env != nil {
			fmt.Printf("\nConstants:   %d\n", env.Constants.Len())
			fmt.Printf("Dynamic:     %d\n", env.DynamicVariables.Len())
			fmt.Printf("Templates:   %d\n", len(env.Templates))
			fmt.Printf("Dotenv:      %d\n", len(env.DotenvPaths))
		}

		return nil
	},
}
