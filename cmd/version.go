package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/pkg/ui"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display version information",
	Aliases: []string{"v"},
	Long: `Display the b64pack version, build details and the manifest format it writes.

Binaries installed with 'go install' report their module version when no
ldflags were set. (alias: v)`,
	Run: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Println(ui.StyleTitle.Render("b64pack") + " - Asset Bundler")
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Version", resolveVersion()))
	fmt.Println(ui.RenderKeyValue("Commit", GitCommit))
	fmt.Println(ui.RenderKeyValue("Build Date", BuildDate))
	fmt.Println(ui.RenderKeyValue("Go", runtime.Version()))
	fmt.Println(ui.RenderKeyValue("Platform", runtime.GOOS+"/"+runtime.GOARCH))
	fmt.Println(ui.RenderKeyValue("Output", "var <name> = { \"<path>\": \"data:<mime>;base64,...\", };"))
}

// resolveVersion prefers the ldflags value and falls back to module info
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
