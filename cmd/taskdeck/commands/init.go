package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acolombo/taskdeck/internal/cli/prompt"
	"github.com/acolombo/taskdeck/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Create a configuration file with default values.

By default the file is written to $XDG_CONFIG_HOME/taskdeck/config.yaml.
Use --config to choose a different location and --force to overwrite an
existing file.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		overwrite, err := prompt.ConfirmWithForce(
			fmt.Sprintf("Config file already exists at %s. Overwrite?", path), initForce)
		if err != nil {
			if prompt.IsAborted(err) {
				return fmt.Errorf("aborted")
			}
			return err
		}
		if !overwrite {
			return nil
		}
	}

	if err := config.SaveConfig(config.GetDefaultConfig(), path); err != nil {
		return err
	}

	fmt.Printf("Configuration file created at: %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Printf("  2. Set a signing secret: export %s=<random 32+ character string>\n", "TASKDECK_SECRET")
	fmt.Println("  3. Start the server: taskdeck serve")
	return nil
}
