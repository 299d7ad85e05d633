package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/pkg/gradle"
	gtio "github.com/matzehuels/gradletree/pkg/io"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// browseCommand creates the interactive configuration picker.
func (c *CLI) browseCommand() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Pick a configuration interactively and print its tree",
		Long: `List the configurations of a saved report with their dependency counts.
Selecting one prints its tree to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "also accept configurations with a single dependency")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, path string, opts *outputOpts) error {
	ctx := cmd.Context()

	in, source, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(cmd, c.Config, source)
	popts.Format = pipeline.FormatText
	result, err := runner.ExecuteReader(ctx, in, popts)
	if err != nil {
		return err
	}
	confs := result.Tree.Configurations()
	if len(confs) == 0 {
		warnIfEmpty(result, source, popts.Lenient)
		return nil
	}

	final, err := tea.NewProgram(NewConfigurationListModel(confs),
		tea.WithContext(ctx), tea.WithOutput(uiOut)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(ConfigurationListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	return gtio.WriteText(m.Selected, cmd.OutOrStdout())
}

// =============================================================================
// ConfigurationListModel - Interactive configuration selection
// =============================================================================

// List styles
var (
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ConfigurationListModel is the bubbletea model for picking a configuration.
type ConfigurationListModel struct {
	Configurations []*gradle.Node
	Cursor         int
	Selected       *gradle.Node
	Height         int
	Offset         int
}

// NewConfigurationListModel creates a list over confs.
func NewConfigurationListModel(confs []*gradle.Node) ConfigurationListModel {
	return ConfigurationListModel{Configurations: confs, Height: 15}
}

func (m ConfigurationListModel) Init() tea.Cmd {
	return nil
}

func (m ConfigurationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Configurations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Configurations) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		case "enter":
			if len(m.Configurations) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Configurations[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m ConfigurationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Configuration"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ print tree  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Configurations))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		conf := m.Configurations[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := conf.ConfigurationName()
		if name == "" {
			name = "(unlabeled)"
		}
		rows = append(rows, []string{
			cursor,
			name,
			strconv.Itoa(len(conf.Children)),
			strconv.Itoa(conf.Count()),
			conf.Description(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Configuration", "Direct", "Total", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Configurations) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case len(m.Configurations[idx].Children) == 0:
				return listEmptyStyle
			case col == 4:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Configurations))))

	return b.String()
}
