package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new script in the default environment's first scripts path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !validScriptName(name) || name == "help" {
			return fmt.Errorf("invalid script name %q — use only letters, digits, hyphens, and underscores", name)
		}

		cfg, err := loadConfig(configFlag, nil)
		if err != nil {
			return err
		}

		env := cfg.Environments[cfg.DefaultEnvironment]
		if len(env.ScriptsPaths) == 0 {
			return fmt.Errorf("default environment %q declares no scripts paths — add one to the config first", cfg.DefaultEnvironment)
		}
		dir := env.ScriptsPaths[0].Path

		log.Debug("creating script directory", "dir", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%s", friendlyError(err))
		}

		path := filepath.Join(dir, name+".sh")
		log.Debug("checking for existing script", "path", path)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("script %q already exists at %s", name, path)
		}

		template := fmt.Sprintf("# %s\necho Hello from %s\n", name, name)
		if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
			return fmt.Errorf("%s", friendlyError(err))
		}
		log.Info("created script", "path", path)
		return nil
	},
}
