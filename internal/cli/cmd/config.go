package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/flexpane/internal/cli"
	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Inspect the flexpane configuration.

The config file is created with defaults on first run. Every key can also
be set from the environment with the FLEXPANE_ prefix, for example
FLEXPANE_RESIZE_MOVEMENT_MODE=bulldozer.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config, database and log locations",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configSchemaWrite bool

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file.

With --write the schema is saved as config.schema.json next to the config
file, where editors with TOML schema support pick it up.`,
	RunE: runConfigSchema,
}

func init() {
	configSchemaCmd.Flags().BoolVar(&configSchemaWrite, "write", false, "write config.schema.json next to the config file")
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)
	rootCmd.AddCommand(configCmd)
}

func configFilePath(a *cli.App) string {
	if a.ConfigManager != nil {
		return a.ConfigManager.GetConfigFile()
	}
	if configFile != "" {
		return configFile
	}
	path, err := config.GetConfigFile()
	if err != nil {
		return "config.toml"
	}
	return path
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	r := styles.NewConfigRenderer(a.Theme)
	fmt.Println(r.RenderPath("config  ", configFilePath(a)))
	fmt.Println(r.RenderPath("database", a.Config.SizeHints.DatabasePath))
	fmt.Println(r.RenderPath("logs    ", filepath.Join(a.Config.Logging.LogDir, cli.LogFileName)))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(a.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if !configSchemaWrite {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	r := styles.NewConfigRenderer(a.Theme)
	path := filepath.Join(filepath.Dir(configFilePath(a)), "config.schema.json")
	if err := config.WriteSchemaFile(path); err != nil {
		fmt.Println(r.RenderError(err))
		return err
	}
	fmt.Println(r.RenderSchemaWritten(path))
	return nil
}
