package graph

// Blueprint is a named template of default field values and layout
// hints for a node type. The store applies blueprint defaults to
// unspecified fields when a node is created, and the layout engine uses
// Priority to order siblings deterministically (lower sorts first).
type Blueprint struct {
	Type            string            // blueprint key, referenced by Node.Type
	DefaultTitle    string            // title when none is given
	DefaultContent  string            // content when none is given
	Priority        int               // sibling ordering rank, lower first
	AllowedChildren []string          // child types this node may link to; empty = any
	Style           map[string]string // style hints copied onto new nodes
}

// Built-in blueprint keys.
const (
	TypeRoot  = "root"
	TypeTopic = "topic"
	TypeNote  = "note"
	TypeTask  = "task"
)

// Blueprints is a registry mapping type keys to blueprints. The zero
// value is not usable - use NewBlueprints, which seeds the built-in set.
type Blueprints struct {
	byType map[string]Blueprint
}

// NewBlueprints returns a registry seeded with the built-in node types.
func NewBlueprints() *Blueprints {
	b := &Blueprints{byType: make(map[string]Blueprint)}
	for _, bp := range builtins {
		b.byType[bp.Type] = bp
	}
	return b
}

var builtins = []Blueprint{
	{Type: TypeRoot, DefaultTitle: "Central Idea", Priority: 0},
	{Type: TypeTopic, DefaultTitle: "New Topic", Priority: 10},
	{Type: TypeNote, DefaultTitle: "Note", DefaultContent: "...", Priority: 20},
	{Type: TypeTask, DefaultTitle: "Task", Priority: 30},
}

// Register adds or replaces a blueprint. Blueprints with an empty type
// key are ignored.
func (b *Blueprints) Register(bp Blueprint) {
	if bp.Type == "" {
		return
	}
	b.byType[bp.Type] = bp
}

// Get returns the blueprint for a type key and whether it exists.
func (b *Blueprints) Get(typ string) (Blueprint, bool) {
	bp, ok := b.byType[typ]
	return bp, ok
}

// Priority returns the sibling-ordering rank for a type key. Unknown
// types rank after every registered blueprint.
func (b *Blueprints) Priority(typ string) int {
	if bp, ok := b.byType[typ]; ok {
		return bp.Priority
	}
	return 1 << 20
}

// ChildType resolves the type for a new child under a parent of
// parentType. The requested type is kept when the parent's blueprint
// allows it (an empty AllowedChildren list allows any); otherwise the
// first allowed type is substituted, so child creation degrades to a
// valid type instead of failing.
func (b *Blueprints) ChildType(parentType, typ string) string {
	bp, ok := b.byType[parentType]
	if !ok || len(bp.AllowedChildren) == 0 {
		return typ
	}
	for _, allowed := range bp.AllowedChildren {
		if allowed == typ {
			return typ
		}
	}
	return bp.AllowedChildren[0]
}

// Apply fills unset fields of n from the blueprint for n.Type. Unknown
// types fall back to the topic blueprint so node creation always
// succeeds.
func (b *Blueprints) Apply(n *Node) {
	bp, ok := b.byType[n.Type]
	if !ok {
		if n.Type == "" {
			n.Type = TypeTopic
		}
		bp = b.byType[TypeTopic]
	}
	if n.Title == "" {
		n.Title = bp.DefaultTitle
	}
	if n.Content == "" && bp.DefaultContent != "" {
		n.Content = bp.DefaultContent
	}
	if len(bp.Style) > 0 && n.Style == nil {
		n.Style = make(map[string]string, len(bp.Style))
		for k, v := range bp.Style {
			n.Style[k] = v
		}
	}
}
