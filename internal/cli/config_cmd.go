package cli

import (
	"fmt"
	"path/filepath"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and inspect the check configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the check configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadCheckConfig()
		if err != nil {
			return err
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			cmd.Println("Validation errors:")
			for _, e := range errs {
				cmd.Printf("  - %s\n", e)
			}
			return fmt.Errorf("%s has %d validation error(s)", path, len(errs))
		}
		enabled := 0
		for _, c := range cfg.Checks {
			if c.IsEnabled() {
				enabled++
			}
		}
		cmd.Printf("Configuration is valid. %d check(s), %d enabled.\n", len(cfg.Checks), enabled)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the parsed configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadCheckConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		cmd.Printf("# %s\n", path)
		cmd.Print(string(out))
		return nil
	},
}

// loadCheckConfig resolves the config these commands operate on: the --file
// override when given, otherwise the project config.
func loadCheckConfig() (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		return cfg, configFile, err
	}
	cfg, projectDir, err := loadProjectConfig()
	return cfg, filepath.Join(projectDir, config.FileName), err
}

func init() {
	configCmd.PersistentFlags().StringVarP(&configFile, "file", "f", "", "path to check config file")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}
