package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var (
	listSortBy  string
	listReverse bool
	listByType  bool
)

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List the assets a pack run would embed",
	Long: `List every asset under the input directory with its manifest key,
MIME type, file size and the size of its data URI.

Nothing is read or written; sizes come from the filesystem.

Examples:
  b64pack list                 # All assets, sorted by key
  b64pack list png --sort size # Keys containing "png", smallest first
  b64pack list --by-type       # Totals per MIME type`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSortBy, "sort", "s", "path", "Sort by: path, size, type")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "Reverse sort order")
	listCmd.Flags().BoolVarP(&listByType, "by-type", "t", false, "Show totals per MIME type instead of assets")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := services.InventoryRequest{
		KeyPrefix: appConfig.KeyPrefix,
		SortBy:    listSortBy,
		Reverse:   listReverse,
	}
	if len(args) > 0 {
		req.Query = args[0]
	}

	resp, err := inventoryService.Execute(ctx, req)
	if err != nil {
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No assets found in " + resp.InputDir))
		return nil
	}

	if listByType {
		fmt.Print(renderTypeTable(resp))
	} else {
		fmt.Print(renderAssetTable(resp))
	}
	return nil
}

func renderAssetTable(resp *services.InventoryResponse) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Key"},
		{Header: "Type"},
		{Header: "Size", Align: "right"},
		{Header: "Encoded", Align: "right"},
	})
	for _, item := range resp.Items {
		table.AddRow([]string{
			item.Key,
			ui.FormatMimeType(item.MimeType),
			ui.FormatSize(item.Size),
			ui.FormatSize(int64(item.EncodedSize)),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d assets", resp.Total),
		"",
		ui.FormatSize(resp.TotalSize),
		ui.FormatSize(resp.TotalEncoded),
	})
	return table.Render()
}

func renderTypeTable(resp *services.InventoryResponse) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Type"},
		{Header: "Count", Align: "right"},
		{Header: "Size", Align: "right"},
		{Header: "Encoded", Align: "right"},
	})
	for _, s := range resp.ByType {
		table.AddRow([]string{
			ui.FormatMimeType(s.MimeType),
			strconv.Itoa(s.Count),
			ui.FormatSize(s.Size),
			ui.FormatSize(s.EncodedSize),
		})
	}
	table.SetFooter([]string{
		"Total",
		strconv.Itoa(resp.Total),
		ui.FormatSize(resp.TotalSize),
		ui.FormatSize(resp.TotalEncoded),
	})
	return table.Render()
}

// displayType shows unknown MIME types explicitly
func displayType(mimeType string) string {
	if mimeType == "" {
		return ui.UnknownTypeLabel
	}
	return mimeType
}
