package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/observability"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/colors"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
)

var (
	exploreColumnStyle = lipgloss.NewStyle().PaddingRight(3)
	exploreHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	explorePanelStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// selectionLog receives selection changes from the engine. It is shared
// by every copy of the model.
type selectionLog struct {
	last string
}

// ExploreModel is the bubbletea model of the terminal explorer. The cursor
// drives hover; enter toggles the selection of the node under the cursor.
type ExploreModel struct {
	eng    *flow.Engine
	layers [][]int // non-empty layers, node ids in input order
	layer  int
	row    int
	log    *selectionLog
}

// NewExploreModel wraps eng. The cursor starts on the hovered node of the
// engine's state when there is one.
func NewExploreModel(eng *flow.Engine) ExploreModel {
	m := ExploreModel{eng: eng, log: &selectionLog{}}
	ds := eng.Dataset()
	for i := range ds.LayerCount() {
		if ids := ds.Layer(i); len(ids) > 0 {
			m.layers = append(m.layers, ids)
		}
	}
	log := m.log
	eng.OnSelect(func(id int, ok bool) {
		observability.Interaction().OnSelect(context.Background(), ok)
		if !ok {
			log.last = "selection cleared"
			return
		}
		n, _ := ds.Node(id)
		log.last = "selected " + n.Name
	})
	if id, ok := eng.State().HoveredID(); ok {
		m.moveTo(id)
	}
	return m
}

func (m *ExploreModel) moveTo(id int) {
	for l, ids := range m.layers {
		for r, v := range ids {
			if v == id {
				m.layer, m.row = l, r
				return
			}
		}
	}
}

// cursor returns the node id under the cursor.
func (m ExploreModel) cursor() (int, bool) {
	if len(m.layers) == 0 {
		return 0, false
	}
	return m.layers[m.layer][m.row], true
}

// State returns the interaction state, for saving on exit.
func (m ExploreModel) State() interact.State { return m.eng.State() }

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
			m.hoverCursor()
		case "down", "j":
			if len(m.layers) > 0 && m.row < len(m.layers[m.layer])-1 {
				m.row++
			}
			m.hoverCursor()
		case "left", "h":
			if m.layer > 0 {
				m.layer--
				m.row = min(m.row, len(m.layers[m.layer])-1)
			}
			m.hoverCursor()
		case "right", "l":
			if m.layer < len(m.layers)-1 {
				m.layer++
				m.row = min(m.row, len(m.layers[m.layer])-1)
			}
			m.hoverCursor()
		case "enter", " ":
			if id, ok := m.cursor(); ok {
				m.dispatch(interact.Click(id))
			}
		case "esc":
			m.dispatch(interact.LeaveNode())
		case "r":
			m.dispatch(interact.Reset())
		}
	}
	return m, nil
}

func (m *ExploreModel) hoverCursor() {
	if id, ok := m.cursor(); ok {
		m.dispatch(interact.EnterNode(id))
	}
}

func (m *ExploreModel) dispatch(ev interact.Event) {
	err := m.eng.Dispatch(ev)
	observability.Interaction().OnEvent(context.Background(), string(ev.Type), err)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("riskflow explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ layer  ↑/↓ node  ⏎ select  esc leave  r reset  q quit"))
	b.WriteString("\n\n")

	if len(m.layers) == 0 {
		b.WriteString(StyleDim.Render("empty dataset"))
		b.WriteString("\n")
		return b.String()
	}

	scene := m.eng.Scene()
	cols := make([]string, len(m.layers))
	for l, ids := range m.layers {
		cols[l] = exploreColumnStyle.Render(m.renderColumn(scene, l, ids))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n\n")

	if scene.Selected != nil {
		b.WriteString(explorePanelStyle.Render(m.renderDetail(*scene.Selected)))
		b.WriteString("\n")
	}
	if m.log.last != "" {
		b.WriteString(StyleDim.Render("  " + m.log.last))
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(colors.Bands()))
	for _, band := range colors.Bands() {
		legend = append(legend, bandSwatch(band))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(legend, "   "))
	b.WriteString("\n")
	return b.String()
}

func (m ExploreModel) renderColumn(scene flow.Scene, layer int, ids []int) string {
	var b strings.Builder
	first, _ := scene.Node(ids[0])
	header := fmt.Sprintf("Layer %d", first.Layer)
	if first.Category != "" {
		header = string(first.Category)
	}
	b.WriteString(exploreHeaderStyle.Render(header))
	b.WriteString("\n")

	for row, id := range ids {
		n, ok := scene.Node(id)
		if !ok {
			continue
		}
		prefix := "  "
		if layer == m.layer && row == m.row {
			prefix = StyleHighlight.Render("▸") + " "
		}
		style := bandStyle(n.Band)
		if n.Opacity < interact.NodeDefaultOpacity {
			style = style.Faint(true)
		}
		if n.Hovered {
			style = style.Bold(true)
		}
		if n.Selected {
			style = style.Inherit(StyleSelected)
		}
		label := n.Name
		if n.Count != nil {
			label += fmt.Sprintf(" (n=%d)", *n.Count)
		}
		b.WriteString(prefix + style.Render(label))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail is the selection panel: the node's risk and the flows
// entering and leaving it.
func (m ExploreModel) renderDetail(id int) string {
	ds := m.eng.Dataset()
	n, ok := ds.Node(id)
	if !ok {
		return ""
	}
	band := colors.BandFor(n.RiskScore)

	var b strings.Builder
	b.WriteString(StyleValue.Bold(true).Render(n.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %.2f  %s\n", StyleDim.Render("risk"), n.RiskScore, bandSwatch(band))
	if n.Count != nil {
		fmt.Fprintf(&b, "%s %d animals\n", StyleDim.Render("count"), *n.Count)
	}
	writeFlows(&b, ds, "from", ds.Incoming(id), func(l dataset.Link) int { return l.Source })
	writeFlows(&b, ds, "to", ds.Outgoing(id), func(l dataset.Link) int { return l.Target })
	return strings.TrimRight(b.String(), "\n")
}

func writeFlows(b *strings.Builder, ds *dataset.Dataset, label string, links []dataset.Link, other func(dataset.Link) int) {
	if len(links) == 0 {
		return
	}
	b.WriteString(StyleDim.Render(label))
	b.WriteString("\n")
	for _, l := range links {
		n, _ := ds.Node(other(l))
		fmt.Fprintf(b, "  %-24s %s\n", n.Name, StyleNumber.Render(fmt.Sprintf("%g", l.Value)))
	}
}
