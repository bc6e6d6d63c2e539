package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configFlag string
	listFlag   bool
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "shelltab <script-name> [params...]",
	Short: "A shell-script orchestrator",
	Long:  "shelltab runs declaratively-configured shell scripts across named environments.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFlag {
			return listScripts()
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		name := args[0]
		params := args[1:]

		if len(params) == 1 && params[0] == "help" {
			return showScriptHelp(name)
		}
		return runScript(name, params)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	log.SetReportTimestamp(true)
	log.SetTimeFormat("15:04:05 01/02/2006")
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].SetString("ERROR").MaxWidth(5)
	log.SetStyles(styles)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the config file (default: ./shelltab.yaml or ./shelltab.yml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output verbosity (-v verbose, -vv debug)")
	rootCmd.Flags().BoolVar(&listFlag, "list", false, "print the visible-scripts table and exit")
	rootCmd.SetVersionTemplate("shelltab-{{.Version}}\n")

	cobra.EnableCommandSorting = false
	cobra.OnInitialize(initVerbosity)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(rmCmd)

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if cmd == rootCmd {
			if err := listScripts(); err != nil {
				log.Error(err)
			}
		}
	})
}

func initVerbosity() {
	switch {
	case verbosity >= 2:
		log.SetLevel(log.DebugLevel)
		log.Debug("debug logging enabled")
	case verbosity == 1:
		// InfoLevel (default) — verbose mode
	default:
		// InfoLevel: show user-facing messages
	}
}

// SetVersion sets the version string displayed by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
