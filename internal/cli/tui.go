package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/phase"
	"github.com/mindweave/mindweave/pkg/phase/document"
	"github.com/mindweave/mindweave/pkg/phase/editor"
	"github.com/mindweave/mindweave/pkg/phase/outline"
	"github.com/mindweave/mindweave/pkg/store"
	"github.com/mindweave/mindweave/pkg/suggest"
)

// suggestionMsg delivers the delayed suggestion into the update loop.
type suggestionMsg struct {
	parent string
	s      suggest.Suggestion
}

// EditorModel is the bubbletea model for the interactive tree editor.
// All graph mutations go through the store; the model owns only cursor
// and input state. Store notifications re-render the active phase
// engine synchronously, and the focused title survives those re-renders
// by the reconciliation contract.
type EditorModel struct {
	st       *store.Store
	registry *phase.Registry
	surface  *phase.TextSurface
	edEngine *editor.Engine
	sug      *suggest.Suggester

	cursor  int
	editing bool
	editID  string
	input   string
	status  string
	height  int
}

// NewEditorModel wires the store, the three phase engines and the
// shared surface, renders once and subscribes for re-renders.
func NewEditorModel(st *store.Store) *EditorModel {
	surface := phase.NewTextSurface()
	prio := st.Blueprints().Priority
	edEngine := editor.New(st)
	registry := phase.NewRegistry(surface, editor.EngineID,
		edEngine,
		outline.New(prio),
		document.New(prio),
	)

	m := &EditorModel{
		st:       st,
		registry: registry,
		surface:  surface,
		edEngine: edEngine,
		sug:      suggest.New(0),
		height:   20,
	}

	st.Subscribe(func(store.Mutation) {
		registry.Render(st.Document())
	})
	registry.Render(st.Document())
	return m
}

func (m *EditorModel) Init() tea.Cmd { return nil }

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	case suggestionMsg:
		id := m.st.AddNode(store.NodeConfig{Title: msg.s.Title, Type: msg.s.Type})
		if msg.parent != "" {
			m.st.AddEdge(msg.parent, id, "", nil)
		}
		m.st.AutoLayout()
		m.status = fmt.Sprintf("Suggested: %s", msg.s.Title)
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *EditorModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.surface.IDs()

	switch msg.String() {
	case "q", "ctrl+c":
		m.st.Flush()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(ids)-1 {
			m.cursor++
		}
	case "enter":
		if m.registry.Active() != editor.EngineID || len(ids) == 0 {
			break
		}
		id := ids[m.cursor]
		m.edEngine.BeginEdit(m.surface, id)
		if rep, ok := m.surface.Rep(id); ok {
			m.input = rep.Get(editor.FieldTitle)
		}
		m.editing = true
		m.editID = id
	case "a":
		parent := ""
		if len(ids) > 0 {
			parent = ids[m.cursor]
		}
		m.edEngine.AddChild(parent, graph.TypeTopic)
		m.st.AutoLayout()
		m.status = "Added node"
	case "r":
		m.edEngine.AddChild("", graph.TypeRoot)
		m.st.AutoLayout()
		m.status = "Added root"
	case "x", "delete":
		if len(ids) == 0 {
			break
		}
		m.edEngine.Delete(ids[m.cursor])
		if m.cursor >= m.surface.Len() && m.cursor > 0 {
			m.cursor--
		}
		m.status = "Deleted node"
	case "u":
		before := m.st.HistoryLen()
		m.st.Undo()
		if m.st.HistoryLen() < before {
			m.status = styleSuccess.Render("Undone")
		} else {
			m.status = styleError.Render("Nothing to undo")
		}
		if m.cursor >= m.surface.Len() && m.cursor > 0 {
			m.cursor = m.surface.Len() - 1
		}
	case "L":
		m.st.AutoLayout()
		m.status = "Layout recomputed"
	case "tab":
		m.cycleEngine()
	case "g":
		if len(ids) == 0 {
			break
		}
		id := ids[m.cursor]
		node, ok := m.st.Node(id)
		if !ok {
			break
		}
		m.status = "Thinking..."
		return m, m.suggestCmd(id, node)
	}
	return m, nil
}

func (m *EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.edEngine.Commit(m.surface, m.editID)
		m.editing = false
		m.editID = ""
		m.status = "Saved"
	case "esc":
		m.edEngine.Cancel(m.surface, m.editID)
		m.editing = false
		m.editID = ""
		m.status = "Cancelled"
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
			m.edEngine.Type(m.surface, m.editID, m.input)
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.input += string(msg.Runes)
			m.edEngine.Type(m.surface, m.editID, m.input)
		}
	}
	return m, nil
}

func (m *EditorModel) cycleEngine() {
	engines := m.registry.Engines()
	for i, id := range engines {
		if id == m.registry.Active() {
			next := engines[(i+1)%len(engines)]
			// Engine switch is the one permitted full teardown.
			m.registry.SetActive(next)
			m.registry.Render(m.st.Document())
			m.cursor = 0
			m.editing = false
			m.status = fmt.Sprintf("Engine: %s", next)
			return
		}
	}
}

// suggestCmd blocks in a command goroutine until the stub resolves,
// then feeds the suggestion back into the update loop.
func (m *EditorModel) suggestCmd(parent string, node graph.Node) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan suggest.Suggestion, 1)
		m.sug.NextStep(node, func(s suggest.Suggestion) { ch <- s })
		return suggestionMsg{parent: parent, s: <-ch}
	}
}

func (m *EditorModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Mindweave — %s", m.titleOrDefault())))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(m.helpLine()))
	b.WriteString("\n\n")

	switch m.registry.Active() {
	case outline.EngineID:
		b.WriteString(outline.View(m.surface, m.st.Selected()))
	case document.EngineID:
		b.WriteString(m.viewDocument())
	default:
		b.WriteString(m.viewEditor())
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("[%s] %d nodes · %d snapshots  %s",
		m.registry.Active(), len(m.surface.IDs()), m.st.HistoryLen(), m.status)))
	return b.String()
}

func (m *EditorModel) titleOrDefault() string {
	if t := m.st.Title(); t != "" {
		return t
	}
	return "untitled"
}

func (m *EditorModel) helpLine() string {
	if m.editing {
		return "type to edit  ⏎ save  esc cancel"
	}
	return "↑/↓ move  ⏎ edit  a add  r root  x delete  u undo  L layout  g suggest  tab engine  q quit"
}

func (m *EditorModel) viewEditor() string {
	var b strings.Builder
	ids := m.surface.IDs()
	for i, id := range ids {
		rep, ok := m.surface.Rep(id)
		if !ok {
			continue
		}
		depth, _ := strconv.Atoi(rep.Get(editor.FieldDepth))
		indent := strings.Repeat("  ", depth)

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		title := rep.Get(editor.FieldTitle)
		line := fmt.Sprintf("%s%s%s %s", cursor, indent, title,
			styleDim.Render("("+rep.Get(editor.FieldType)+")"))

		switch {
		case m.editing && id == m.editID:
			b.WriteString(styleEditing.Render(fmt.Sprintf("%s%s%s▏", cursor, indent, title)))
		case i == m.cursor:
			b.WriteString(styleSelected.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if len(ids) == 0 {
		b.WriteString(styleDim.Render("  empty — press r to add a root node\n"))
	}
	return b.String()
}

func (m *EditorModel) viewDocument() string {
	var b strings.Builder
	for _, id := range m.surface.IDs() {
		rep, ok := m.surface.Rep(id)
		if !ok {
			continue
		}
		b.WriteString(styleTitle.Render(rep.Get(document.FieldHeading)))
		b.WriteString("\n")
		if body := rep.Get(document.FieldBody); body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
