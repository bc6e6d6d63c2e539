package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/shelltab/shelltab/internal/executor"
	"github.com/shelltab/shelltab/internal/logging"
	"github.com/shelltab/shelltab/internal/scripts"
	"github.com/shelltab/shelltab/internal/scriptparser"
)

func runScript(name string, params []string) error {
	if !validScriptName(name) {
		return fmt.Errorf("invalid script name %q", name)
	}

	configPath, err := discoverConfig(configFlag)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configFlag, params)
	if err != nil {
		return err
	}
	if cfg.Header != "" {
		fmt.Println(cfg.Header)
	}

	finder := scripts.NewFinder(cfg)
	script, err := finder.FindScriptByName(name)
	if err != nil {
		var nf *scripts.NotFoundError
		if errors.As(err, &nf) {
			matches, suggestErr := finder.FindScriptsByPartialName(name)
			if suggestErr == nil {
				return fmt.Errorf("script %q not found%s", name, suggestNames(matches))
			}
		}
		return err
	}

	content, err := os.ReadFile(script.Path())
	if err != nil {
		return fmt.Errorf("reading script %q: %w", script.Path(), err)
	}

	parser := scriptparser.NewParser(finderLoader{finder: finder})
	commands, err := parser.Parse(*script, string(content))
	if err != nil {
		return fmt.Errorf("parsing script %q: %w", name, err)
	}

	env := owningEnvironment(cfg, *script)
	if env == nil {
		return fmt.Errorf("script %q: owning environment %q not found", name, script.Namespace)
	}

	procEnv, err := buildEnvironment(env, filepath.Dir(configPath), params)
	if err != nil {
		return fmt.Errorf("resolving environment: %w", err)
	}

	fileLogger, err := logging.New(script.Name(), logging.FileOnly())
	if err != nil {
		return fmt.Errorf("%s", friendlyError(err))
	}
	defer fileLogger.Close() //nolint:errcheck

	scriptLogger := logging.NewMulti(
		logging.NewFileScriptLogger(fileLogger),
		logging.NewCharm(os.Stderr),
	)

	exec := executor.New(procEnv, scriptLogger)
	if err := exec.Execute(*script, commands); err != nil {
		log.Error("script failed", "name", name, "err", err)
		return err
	}
	return nil
}

func showScriptHelp(name string) error {
	cfg, err := loadConfig(configFlag, nil)
	if err != nil {
		return err
	}
	finder := scripts.NewFinder(cfg)
	script, err := finder.FindScriptByName(name)
	if err != nil {
		return err
	}

	fmt.Printf("Script: %s\n", script.Name())
	if script.Description != "" {
		fmt.Printf("        %s\n", script.Description)
	}
	fmt.Println()
	fmt.Printf("Usage:\n  shelltab %s [params...]\n", script.Name())

	env := owningEnvironment(cfg, *script)
	if env != nil {
		if env.Constants.Len() > 0 {
			fmt.Println("\nConstants:")
			env.Constants.Range(func(k, v string) {
				fmt.Printf("  %s = %q\n", k, v)
			})
		}
		if env.DynamicVariables.Len() > 0 {
			fmt.Println("\nDynamic Variables:")
			env.DynamicVariables.Range(func(k, v string) {
				fmt.Printf("  %s := %s\n", k, v)
			})
		}
	}
	return nil
}
