package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
	"github.com/matzehuels/mosaicflow/pkg/masonry/measure"
	"github.com/matzehuels/mosaicflow/pkg/pipeline"
	"github.com/matzehuels/mosaicflow/pkg/render"
)

// eventLogSize is how many engine events the preview status shows.
const eventLogSize = 4

var (
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// previewFlags holds the preview command's flags.
type previewFlags struct {
	width float64
	step  float64
	seed  uint64
}

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags previewFlags

	cmd := &cobra.Command{
		Use:   "preview [items.json|items.toml]",
		Short: "Explore a layout interactively in the terminal",
		Long: `Explore a layout interactively in the terminal.

Keys:
  ←/→   shrink or grow the container (refill)
  a     add an item with a random height
  d     remove the most recently added item
  e     remove every item
  r     refill at the current width
  q     quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := mfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}
			model, err := newPreviewModel(m, m.Options.Apply(c.Config.Options()), flags)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&flags.width, "width", 0, "initial container width (default: manifest width, then 960)")
	cmd.Flags().Float64Var(&flags.step, "step", 80, "width change per arrow key")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 1, "seed for the heights of added items")

	return cmd
}

// =============================================================================
// previewModel - Interactive layout exploration
// =============================================================================

// eventLog collects engine notifications. It is shared by pointer because
// bubbletea copies the model on every update.
type eventLog struct {
	lines []string
}

func (l *eventLog) observe(ev masonry.Event) {
	line := string(ev.Kind)
	if ev.Item != nil {
		line += " " + ev.Item.ID
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > eventLogSize {
		l.lines = l.lines[len(l.lines)-eventLogSize:]
	}
}

// previewModel is the bubbletea model driving one engine.
type previewModel struct {
	engine   *masonry.Engine
	measurer *measure.Fixed
	labels   map[string]string
	events   *eventLog
	rng      *rand.Rand

	width     float64
	step      float64
	textWidth int
	added     []*masonry.Item
	next      int
	err       error
}

// newPreviewModel lays out the manifest items at the flag or manifest width.
func newPreviewModel(m *mfio.Manifest, opts masonry.Options, flags previewFlags) (previewModel, error) {
	width := flags.width
	if width <= 0 {
		width = m.Width
	}
	if width <= 0 {
		width = defaultWidth
	}

	events := &eventLog{}
	opts.Observers = append(opts.Observers, events.observe)

	f, items := m.Build(width)
	engine, err := masonry.New(f, items, opts)
	if err != nil {
		return previewModel{}, fmt.Errorf("layout: %w", err)
	}

	labels := make(map[string]string)
	for _, it := range items {
		if mi, ok := it.Value.(mfio.ManifestItem); ok && mi.Label != "" {
			labels[it.ID] = mi.Label
		}
	}

	return previewModel{
		engine:    engine,
		measurer:  f,
		labels:    labels,
		events:    events,
		rng:       rand.New(rand.NewPCG(flags.seed, flags.seed)),
		width:     width,
		step:      max(1, flags.step),
		textWidth: pipeline.DefaultTextWidth,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m = m.resize(m.width - m.step)
		case "right", "l":
			m = m.resize(m.width + m.step)
		case "r":
			m.err = m.engine.Refill()
		case "a":
			m = m.add()
		case "d":
			m = m.removeLast()
		case "e":
			m.err = m.engine.Empty()
			m.added = nil
		}
	case tea.WindowSizeMsg:
		m.textWidth = max(20, msg.Width)
	}
	return m, nil
}

func (m previewModel) resize(width float64) previewModel {
	m.width = max(m.step, width)
	m.measurer.SetWidth(m.width)
	m.err = m.engine.Refill()
	return m
}

func (m previewModel) add() previewModel {
	m.next++
	it := m.measurer.Item(fmt.Sprintf("new-%d", m.next), float64(40+m.rng.IntN(200)))
	if m.err = m.engine.Add(it); m.err != nil {
		m.measurer.Forget(it)
		return m
	}
	m.added = append(m.added, it)
	return m
}

func (m previewModel) removeLast() previewModel {
	if len(m.added) == 0 {
		m.err = nil
		return m
	}
	it := m.added[len(m.added)-1]
	m.added = m.added[:len(m.added)-1]
	if m.err = m.engine.Remove(it); m.err == nil {
		m.measurer.Forget(it)
	}
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Mosaicflow Preview"))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("←/→ width  a add  d remove  e empty  r refill  q quit"))
	b.WriteString("\n\n")

	snap, err := m.engine.Snapshot()
	if err != nil {
		b.WriteString(previewErrorStyle.Render(err.Error()))
		return b.String()
	}
	b.WriteString(render.Text(snap, m.textWidth, render.WithLabels(m.labels)))
	b.WriteString("\n\n")

	status := fmt.Sprintf("width %.0f · %d columns · %d items", m.width, snap.ColumnCount(), len(snap.Items))
	b.WriteString(previewStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(strings.Join(m.events.lines, " → ")))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
	}
	return b.String()
}
