package cmd

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/adapters/output"
	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var (
	reportOut  string
	reportTop  int
	reportOpen bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an HTML chart of bundle size by type and asset",
	Long: `Render an HTML page with two bar charts:
  - source and encoded bytes per MIME type
  - the largest assets by encoded size

Base64 grows every payload by a third; the report shows where that
growth lands before the bundle ships.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "b64pack-report.html", "Path of the HTML report")
	reportCmd.Flags().IntVar(&reportTop, "top", 15, "Number of largest assets to chart")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "Open the report when done")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := inventoryService.Execute(ctx, services.InventoryRequest{
		KeyPrefix: appConfig.KeyPrefix,
		SortBy:    "size",
		Reverse:   true,
	})
	if err != nil {
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No assets found in " + resp.InputDir))
		return nil
	}

	page := buildReportPage(resp, reportTop)

	writer := output.NewAtomicFileWriter(0644)
	if err := writer.Write(ctx, reportOut, func(w io.Writer) error {
		return page.Render(w)
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Println(ui.FormatSuccess("Report written to " + reportOut))
	fmt.Println(ui.RenderKeyValue("Assets", fmt.Sprintf("%d", resp.Total)))
	fmt.Println(ui.RenderKeyValue("Source", ui.FormatSize(resp.TotalSize)))
	fmt.Println(ui.RenderKeyValue("Encoded", ui.FormatSize(resp.TotalEncoded)))

	if reportOpen {
		return OpenFile(reportOut, "")
	}
	return nil
}

// buildReportPage assembles the charts for an inventory whose items are
// sorted largest first
func buildReportPage(resp *services.InventoryResponse, top int) *components.Page {
	page := components.NewPage()
	page.PageTitle = "b64pack report"
	page.AddCharts(typeChart(resp), largestChart(resp, top))
	return page
}

func typeChart(resp *services.InventoryResponse) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Bytes per MIME type",
			Subtitle: fmt.Sprintf("%s source, %s encoded", ui.FormatSize(resp.TotalSize), ui.FormatSize(resp.TotalEncoded)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(resp.ByType))
	source := make([]opts.BarData, 0, len(resp.ByType))
	encoded := make([]opts.BarData, 0, len(resp.ByType))
	for _, s := range resp.ByType {
		labels = append(labels, displayType(s.MimeType))
		source = append(source, opts.BarData{Value: s.Size})
		encoded = append(encoded, opts.BarData{Value: s.EncodedSize})
	}

	bar.SetXAxis(labels).
		AddSeries("Source", source).
		AddSeries("Encoded", encoded)
	return bar
}

func largestChart(resp *services.InventoryResponse, top int) *charts.Bar {
	items := resp.Items
	if top > 0 && len(items) > top {
		items = items[:top]
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Largest assets",
			Subtitle: fmt.Sprintf("top %d of %d", len(items), resp.Total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	keys := make([]string, 0, len(items))
	encoded := make([]opts.BarData, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
		encoded = append(encoded, opts.BarData{Name: item.Key, Value: item.EncodedSize})
	}

	bar.SetXAxis(keys).AddSeries("Encoded", encoded)
	bar.XYReversal()
	return bar
}
