package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/relmap/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listMarkedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	paneActiveStyle = paneStyle.BorderForeground(colorCyan)
)

// =============================================================================
// LinkModel - Interactive entity linking
// =============================================================================

// linkPane is one column of the linking UI: an entity list for a vertex
// type, or the stored-edge list when vt is nil. Marks and filter are
// per-pane.
type linkPane struct {
	list   graph.ItemList
	vt     *graph.VertexType
	cursor int
	offset int
	marked map[string]bool
	filter string
}

// LinkModel is the bubbletea model for interactive linking. One pane per
// vertex type shows its entities; a final pane lists the stored edges.
// Marked entities across panes are linked with the graph's bulk
// operations, central-biased when a central type exists.
type LinkModel struct {
	Graph    *graph.Graph
	Central  *graph.VertexType
	EdgeType string

	panes      []linkPane
	active     int
	height     int
	hideLinked bool
	filtering  bool
	status     string
	dirty      bool

	// save persists the current graph; wired by the link command.
	save func(*graph.Graph) error
}

// NewLinkModel builds the linking model for a loaded graph. central may be
// nil; edgeType labels every edge created in the session; save is invoked
// on the "s" key and may be nil to disable saving.
func NewLinkModel(g *graph.Graph, central *graph.VertexType, edgeType string, save func(*graph.Graph) error) LinkModel {
	m := LinkModel{
		Graph:    g,
		Central:  central,
		EdgeType: edgeType,
		height:   15,
		save:     save,
	}
	for _, vt := range g.Types() {
		m.panes = append(m.panes, linkPane{
			list:   vt,
			vt:     vt,
			marked: map[string]bool{},
		})
	}
	m.panes = append(m.panes, linkPane{
		list: graph.EdgeItems(g.Collection(), "Edges"),
	})
	return m
}

func (m LinkModel) Init() tea.Cmd {
	return nil
}

func (m LinkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// updateFilter handles keys while the active pane's filter is being typed.
func (m LinkModel) updateFilter(msg tea.KeyMsg) LinkModel {
	p := &m.panes[m.active]
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
	case "backspace":
		if p.filter != "" {
			p.filter = p.filter[:len(p.filter)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			p.filter += string(msg.Runes)
		}
	}
	p.cursor, p.offset = 0, 0
	return m
}

func (m LinkModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.panes[m.active]
	items := m.visibleItems(m.active)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "right":
		m.active = (m.active + 1) % len(m.panes)
	case "shift+tab", "left":
		m.active = (m.active - 1 + len(m.panes)) % len(m.panes)

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
			if p.cursor < p.offset {
				p.offset = p.cursor
			}
		}
	case "down", "j":
		if p.cursor < len(items)-1 {
			p.cursor++
			if p.cursor >= p.offset+m.height {
				p.offset = p.cursor - m.height + 1
			}
		}

	case " ", "space":
		if p.vt != nil && p.cursor < len(items) {
			value := items[p.cursor]
			p.marked[value] = !p.marked[value]
			if !p.marked[value] {
				delete(p.marked, value)
			}
		}

	case "l":
		m = m.linkMarked()

	case "d":
		if p.vt == nil && p.cursor < len(items) {
			m = m.deleteEdgeAt(p.cursor)
		}

	case "/":
		m.filtering = true
		p.filter = ""
		p.cursor, p.offset = 0, 0

	case "h":
		m.hideLinked = !m.hideLinked
		for i := range m.panes {
			m.panes[i].cursor, m.panes[i].offset = 0, 0
		}

	case "s":
		if m.save != nil {
			if err := m.save(m.Graph); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "saved"
				m.dirty = false
			}
		}
	}
	return m, nil
}

// linkMarked turns the marked entities of every pane into edges and clears
// the marks. With a central type the link is central-biased; otherwise all
// group pairs are linked.
func (m LinkModel) linkMarked() LinkModel {
	var groups [][]graph.Entity
	for i := range m.panes {
		p := &m.panes[i]
		if p.vt == nil || len(p.marked) == 0 {
			continue
		}
		var group []graph.Entity
		for _, e := range p.vt.Entities() {
			if p.marked[e.Value] {
				group = append(group, e)
			}
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		m.status = "nothing marked"
		return m
	}

	before := m.Graph.Collection().Len()
	var err error
	if m.Central != nil {
		err = m.Graph.AddEdgesCentral(groups, m.Central, m.EdgeType)
	} else {
		err = m.Graph.AddEdges(groups, m.EdgeType)
	}
	if err != nil {
		m.status = "link failed: " + err.Error()
		return m
	}

	added := m.Graph.Collection().Len() - before
	m.status = fmt.Sprintf("linked %d edge(s)", added)
	if added > 0 {
		m.dirty = true
	}
	for i := range m.panes {
		if m.panes[i].vt != nil {
			m.panes[i].marked = map[string]bool{}
		}
	}
	return m
}

// deleteEdgeAt removes the edge behind visible row idx of the edge pane.
func (m LinkModel) deleteEdgeAt(idx int) LinkModel {
	base := m.visibleEdgeIndices()
	if idx >= len(base) {
		return m
	}
	edges := m.Graph.Collection().Edges()
	e := edges[base[idx]]
	m.Graph.RemoveEdge(e.ID)
	m.status = fmt.Sprintf("deleted edge %d", e.ID)
	m.dirty = true

	p := &m.panes[len(m.panes)-1]
	if p.cursor >= m.Graph.Collection().Len() && p.cursor > 0 {
		p.cursor--
	}
	return m
}

// visibleItems returns the rows of pane i after the filter and the
// hide-linked toggle are applied.
func (m LinkModel) visibleItems(i int) []string {
	p := m.panes[i]
	items := p.list.Items()

	var linked map[string]bool
	if m.hideLinked && p.vt != nil {
		linked = map[string]bool{}
		for vt, entities := range m.Graph.Collection().EdgesByVertex() {
			if vt != p.vt {
				continue
			}
			for _, e := range entities {
				linked[e.Value] = true
			}
		}
	}

	var out []string
	for _, item := range items {
		if p.filter != "" && !strings.Contains(strings.ToLower(item), strings.ToLower(p.filter)) {
			continue
		}
		if linked != nil && linked[item] {
			continue
		}
		out = append(out, item)
	}
	return out
}

// visibleEdgeIndices maps visible edge-pane rows back to positions in the
// collection's edge list.
func (m LinkModel) visibleEdgeIndices() []int {
	p := m.panes[len(m.panes)-1]
	var out []int
	for i, e := range m.Graph.Collection().Edges() {
		if p.filter != "" && !strings.Contains(strings.ToLower(e.String()), strings.ToLower(p.filter)) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (m LinkModel) View() string {
	var cols []string
	for i := range m.panes {
		cols = append(cols, m.renderPane(i))
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("relmap link"))
	if m.dirty {
		b.WriteString(" " + StyleWarning.Render("*"))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	help := "tab panes  ↑/↓ move  space mark  l link  d delete  / filter  h hide linked  s save  q quit"
	if m.filtering {
		help = "type to filter  ⏎ done  esc cancel"
	}
	b.WriteString(listDimStyle.Render(help))
	if m.status != "" {
		b.WriteString("\n" + StyleHighlight.Render(m.status))
	}
	return b.String()
}

func (m LinkModel) renderPane(i int) string {
	p := m.panes[i]
	items := m.visibleItems(i)

	var b strings.Builder
	title := p.list.Title()
	if p.vt != nil && p.vt.Central() {
		title += " ◉"
	}
	b.WriteString(StyleValue.Bold(true).Render(title))
	if p.filter != "" || (m.filtering && i == m.active) {
		b.WriteString(listDimStyle.Render(" /" + p.filter))
	}
	b.WriteString("\n")

	end := p.offset + m.height
	if end > len(items) {
		end = len(items)
	}
	for j := p.offset; j < end; j++ {
		cursor := "  "
		if i == m.active && j == p.cursor {
			cursor = "▸ "
		}
		mark := "  "
		if p.vt != nil && p.marked[items[j]] {
			mark = iconSuccess + " "
		}
		line := cursor + mark + items[j]
		switch {
		case i == m.active && j == p.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case p.vt != nil && p.marked[items[j]]:
			b.WriteString(listMarkedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)") + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d]", len(items))))

	style := paneStyle
	if i == m.active {
		style = paneActiveStyle
	}
	return style.Render(b.String())
}
