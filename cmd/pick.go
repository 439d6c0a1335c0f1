package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var pickPrint bool

var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Fuzzy-find an asset and copy its data URI",
	Long: `Open an interactive fuzzy finder over the assets and copy the
selected asset's data URI to the clipboard.

With a query, the first matching asset is used without opening the finder.
Use --print to write the data URI to stdout instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVarP(&pickPrint, "print", "p", false, "Print the data URI instead of copying it")
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := services.InventoryRequest{KeyPrefix: appConfig.KeyPrefix}
	if len(args) > 0 {
		req.Query = args[0]
	}

	resp, err := inventoryService.Execute(ctx, req)
	if err != nil {
		return err
	}
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No matching assets found."))
		return nil
	}

	var selected services.InventoryItem
	if len(args) > 0 {
		selected = resp.Items[0]
	} else {
		idx, err := fuzzyfinder.Find(
			resp.Items,
			func(i int) string { return resp.Items[i].Key },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return pickPreview(resp.Items[i])
			}),
		)
		if err != nil {
			fmt.Println(ui.FormatInfo("Selection cancelled."))
			return nil
		}
		selected = resp.Items[idx]
	}

	uri, err := inventoryService.DataURI(ctx, selected.Asset)
	if err != nil {
		return err
	}

	if pickPrint {
		fmt.Println(uri)
		return nil
	}

	fmt.Println(ui.FormatSuccess("Selected: " + selected.Key))
	if err := clipboard.WriteAll(uri); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed, use --print)"))
		return nil
	}
	fmt.Println(ui.FormatInfo(fmt.Sprintf("Data URI copied (%s)", ui.FormatSize(int64(len(uri))))))
	return nil
}

func pickPreview(item services.InventoryItem) string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Key:     %s\n", item.Key))
	s.WriteString(fmt.Sprintf("Type:    %s\n", displayType(item.MimeType)))
	s.WriteString(fmt.Sprintf("Size:    %s\n", ui.FormatSize(item.Size)))
	s.WriteString(fmt.Sprintf("Encoded: %s\n", ui.FormatSize(int64(item.EncodedSize))))
	s.WriteString("\n")
	s.WriteString(item.SourcePath)
	return s.String()
}
