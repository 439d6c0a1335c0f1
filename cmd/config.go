package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/pkg/config"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the b64pack configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (file values merged with flags)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}

	fmt.Println(ui.FormatSuccess("Created " + configPath))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	source := configPath
	if _, err := os.Stat(configPath); err != nil {
		source = configPath + " (not found, using defaults)"
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println(ui.RenderKeyValue("File", source))
	fmt.Println(ui.RenderKeyValue("Input", cfg.InputDir))
	fmt.Println(ui.RenderKeyValue("Output", orDefault(cfg.OutputPath, "(current directory)")))
	fmt.Println(ui.RenderKeyValue("Name", cfg.OutputName))
	fmt.Println(ui.RenderKeyValue("Extension", cfg.Extension))
	fmt.Println(ui.RenderKeyValue("Header", strconv.FormatBool(cfg.IncludeHeader)))
	fmt.Println(ui.RenderKeyValue("Header tool", cfg.HeaderTool))
	fmt.Println(ui.RenderKeyValue("Key prefix", orDefault(cfg.KeyPrefix, "(none)")))
	fmt.Println(ui.RenderKeyValue("Watch debounce", fmt.Sprintf("%dms", cfg.WatchDebounceMS)))
	fmt.Println(ui.RenderKeyValue("Theme", cfg.ColorTheme))

	if len(cfg.MimeTypes) > 0 {
		exts := make([]string, 0, len(cfg.MimeTypes))
		for ext := range cfg.MimeTypes {
			exts = append(exts, ext)
		}
		sort.Strings(exts)

		lines := make([]string, 0, len(exts))
		for _, ext := range exts {
			lines = append(lines, ext+" → "+cfg.MimeTypes[ext])
		}
		fmt.Println()
		fmt.Println(ui.StyleHeader.Render("MIME overrides"))
		fmt.Print(ui.RenderSimpleList(lines))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println()
		fmt.Println(ui.FormatWarning(err.Error()))
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
