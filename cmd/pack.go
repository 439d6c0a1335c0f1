package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Generate the data URI manifest",
	Long: `Scan the input directory recursively and write one script that maps
every file's relative path to a base64 data URI.

The output file is <output>/<name><ext>. It is replaced atomically:
if any file cannot be read, the previous output is left untouched.

Examples:
  b64pack                                  # data/ -> ./_DATA_.js
  b64pack pack -n Data --header            # data/ -> ./Data.js with header comment
  b64pack pack -i assets -o www/js -n Data # assets/ -> www/js/Data.js`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func runPack(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := bundleService.Execute(ctx, bundleRequest(appConfig))
	if err != nil {
		return err
	}

	if !flagQuiet {
		printPackResult(resp)
	}
	return nil
}

func printPackResult(resp *services.BundleResponse) {
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Packed %d assets from %s into %s (%s)",
		resp.Entries, resp.InputDir, resp.OutputPath, ui.FormatSize(resp.OutputBytes))))

	if len(resp.UnknownTypes) > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d assets have no known MIME type:", len(resp.UnknownTypes))))
		shown := resp.UnknownTypes
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fmt.Print(ui.RenderSimpleList(shown))
		if len(resp.UnknownTypes) > len(shown) {
			fmt.Println(ui.FormatMuted(fmt.Sprintf("  ... and %d more", len(resp.UnknownTypes)-len(shown))))
		}
		fmt.Println(ui.FormatMuted("  Add them under mime_types in " + configPath))
	}
}
