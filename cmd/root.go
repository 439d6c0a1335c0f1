package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/adapters/mimetype"
	"github.com/kamal-hamza/b64pack/internal/adapters/output"
	"github.com/kamal-hamza/b64pack/internal/adapters/repository"
	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/config"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var (
	// Global configuration, file values merged with flags
	appConfig  *config.Config
	configPath string

	// Services
	bundleService    *services.BundleService
	inventoryService *services.InventoryService

	// Flag values
	flagInput     string
	flagOutput    string
	flagName      string
	flagExt       string
	flagHeader    bool
	flagTool      string
	flagKeyPrefix string
	flagQuiet     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "b64pack",
	Short: "Bundle asset files into a script of base64 data URIs",
	Long: ui.StyleTitle.Render("b64pack") + " - Asset Bundler\n\n" +
		"Walks an asset directory, base64-encodes every file and writes a script\n" +
		"declaring one object that maps each relative path to a data URI.\n\n" +
		"Running b64pack without a subcommand is the same as 'b64pack pack'.",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeApp,
	RunE:              runPack,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(describeError(err)))
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the config file")
	pf.StringVarP(&flagInput, "input", "i", "", "Directory to scan recursively (default \"data/\")")
	pf.StringVarP(&flagOutput, "output", "o", "", "Directory for the generated file (default: current directory)")
	pf.StringVarP(&flagName, "name", "n", "", "Output file base name and variable name (default \"_DATA_\")")
	pf.StringVar(&flagExt, "ext", "", "Output file extension (default \".js\")")
	pf.BoolVar(&flagHeader, "header", false, "Prepend a '/* Generated by <tool> */' comment")
	pf.StringVar(&flagTool, "tool", "", "Tool name used in the header comment (default \"b64pack\")")
	pf.StringVar(&flagKeyPrefix, "key-prefix", "", "Prefix prepended to every manifest key (e.g. \"data/\")")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress confirmation output")
}

// initializeApp loads configuration and wires services
func initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	// version and config subcommands must work with a broken config
	if cmd.Name() == "version" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
		appConfig = cfg
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	wireServices(cfg)
	return nil
}

// applyFlagOverrides copies explicitly set flags over file values
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputDir = flagInput
	}
	if flags.Changed("output") {
		cfg.OutputPath = flagOutput
	}
	if flags.Changed("name") {
		cfg.OutputName = flagName
	}
	if flags.Changed("ext") {
		cfg.Extension = flagExt
	}
	if flags.Changed("header") {
		cfg.IncludeHeader = flagHeader
	}
	if flags.Changed("tool") {
		cfg.HeaderTool = flagTool
	}
	if flags.Changed("key-prefix") {
		cfg.KeyPrefix = flagKeyPrefix
	}
}

// wireServices builds repositories and services from cfg
func wireServices(cfg *config.Config) {
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	assetRepo := repository.NewFileAssetRepository(cfg.InputDir)
	resolver := mimetype.NewResolver(cfg.MimeTypes)

	bundleService = services.NewBundleService(assetRepo, resolver, output.NewAtomicFileWriter(0644))
	inventoryService = services.NewInventoryService(assetRepo, resolver)
}

// bundleRequest converts the active configuration into a service request
func bundleRequest(cfg *config.Config) services.BundleRequest {
	return services.BundleRequest{
		OutputPath:    cfg.OutputPath,
		OutputName:    cfg.OutputName,
		Extension:     cfg.Extension,
		IncludeHeader: cfg.IncludeHeader,
		HeaderTool:    cfg.HeaderTool,
		KeyPrefix:     cfg.KeyPrefix,
	}
}

// describeError prefixes typed failures with their kind
func describeError(err error) string {
	kind := domain.ErrorKind(err)
	if kind == "Error" {
		return err.Error()
	}
	return kind + ": " + err.Error()
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
