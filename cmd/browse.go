package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/b64pack/internal/core/services"
	"github.com/kamal-hamza/b64pack/pkg/datauri"
	"github.com/kamal-hamza/b64pack/pkg/manifest"
	"github.com/kamal-hamza/b64pack/pkg/ui"
)

var browseFile string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse assets or a generated manifest interactively",
	Long: `Show assets in an interactive table.

By default the input directory is scanned. With --file, an existing
generated manifest is parsed and its entries are shown instead.

Controls:
  ↑/↓ or k/j : Navigate
  Enter / c  : Copy data URI
  q          : Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseFile, "file", "f", "", "Browse an existing manifest file")
}

// browseRow is one line of the browse table
type browseRow struct {
	Key      string
	MimeType string
	Size     int64
	Encoded  int
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var (
		title   string
		rows    []browseRow
		resolve func(i int) (string, error)
	)

	if browseFile != "" {
		doc, err := loadManifest(browseFile)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("%s (var %s)", browseFile, doc.Name)
		for _, e := range doc.Entries {
			mimeType, data, err := datauri.Decode(e.Value)
			if err != nil {
				return fmt.Errorf("entry %q: %w", e.Key, err)
			}
			rows = append(rows, browseRow{Key: e.Key, MimeType: mimeType, Size: int64(len(data)), Encoded: len(e.Value)})
		}
		resolve = func(i int) (string, error) { return doc.Entries[i].Value, nil }
	} else {
		ctx := getContext()
		resp, err := inventoryService.Execute(ctx, services.InventoryRequest{KeyPrefix: appConfig.KeyPrefix})
		if err != nil {
			return err
		}
		title = resp.InputDir
		for _, item := range resp.Items {
			rows = append(rows, browseRow{Key: item.Key, MimeType: item.MimeType, Size: item.Size, Encoded: item.EncodedSize})
		}
		resolve = func(i int) (string, error) { return inventoryService.DataURI(ctx, resp.Items[i].Asset) }
	}

	if len(rows) == 0 {
		fmt.Println(ui.FormatWarning("Nothing to browse."))
		return nil
	}

	p := tea.NewProgram(newBrowseModel(title, rows, resolve, clipboard.WriteAll))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func loadManifest(path string) (*manifest.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	doc, err := manifest.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// --- TUI Model ---

type browseKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Copy key.Binding
	Quit key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("enter", "c"),
		key.WithHelp("enter/c", "copy data URI"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type browseModel struct {
	title   string
	table   table.Model
	rows    []browseRow
	keys    browseKeyMap
	help    help.Model
	status  string
	resolve func(i int) (string, error)
	copy    func(string) error
}

func newBrowseModel(title string, rows []browseRow, resolve func(i int) (string, error), copyFn func(string) error) browseModel {
	columns := []table.Column{
		{Title: "Key", Width: 40},
		{Title: "Type", Width: 24},
		{Title: "Size", Width: 10},
		{Title: "Encoded", Width: 10},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			safeTruncate(r.Key, 40),
			displayType(r.MimeType),
			ui.FormatSize(r.Size),
			ui.FormatSize(int64(r.Encoded)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	return browseModel{
		title:   title,
		table:   t,
		rows:    rows,
		keys:    browseKeys,
		help:    help.New(),
		resolve: resolve,
		copy:    copyFn,
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 8
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			m.status = m.copySelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) copySelected() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return ""
	}

	uri, err := m.resolve(idx)
	if err != nil {
		return ui.FormatError(err.Error())
	}
	if err := m.copy(uri); err != nil {
		return ui.FormatError("Clipboard access failed")
	}
	return ui.FormatSuccess("Copied " + m.rows[idx].Key)
}

func (m browseModel) View() string {
	view := "\n" +
		ui.StyleTitle.Render(" "+m.title+" ") + "\n\n" +
		m.table.View() + "\n\n"

	if m.status != "" {
		view += " " + m.status + "\n"
	}
	return view + " " + m.help.View(m.keys) + "\n"
}

// safeTruncate shortens s to maxLen terminal cells without splitting runes
func safeTruncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
