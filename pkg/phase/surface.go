package phase

// TextSurface is the reference Surface implementation: an ordered list
// of field-map representations with focus tracking. The TUI editor
// renders it to the terminal; tests inspect it directly.
//
// TextSurface is not safe for concurrent use, matching the engine's
// single-threaded model.
type TextSurface struct {
	order []string
	reps  map[string]*textRep
}

// NewTextSurface creates an empty surface.
func NewTextSurface() *TextSurface {
	return &TextSurface{reps: make(map[string]*textRep)}
}

type textRep struct {
	fields  map[string]string
	pending map[string]string // upstream values deferred while focused
	focused string            // field holding input focus, "" if none
}

// Set implements Rep. Writes to the focused field are deferred and
// applied on Blur; the in-progress edit stays visible.
func (r *textRep) Set(field, value string) {
	if r.focused == field {
		r.pending[field] = value
		return
	}
	r.fields[field] = value
}

// Get implements Rep.
func (r *textRep) Get(field string) string { return r.fields[field] }

// Focused implements Rep.
func (r *textRep) Focused(field string) bool { return r.focused == field }

// Rep implements Surface.
func (s *TextSurface) Rep(id string) (Rep, bool) {
	r, ok := s.reps[id]
	return r, ok
}

// Create implements Surface.
func (s *TextSurface) Create(id string) Rep {
	if r, ok := s.reps[id]; ok {
		return r
	}
	r := &textRep{fields: make(map[string]string), pending: make(map[string]string)}
	s.reps[id] = r
	s.order = append(s.order, id)
	return r
}

// Destroy implements Surface.
func (s *TextSurface) Destroy(id string) {
	if _, ok := s.reps[id]; !ok {
		return
	}
	delete(s.reps, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Order implements Surface. Representations named in ids come first in
// the given order; any others keep their relative order at the end.
func (s *TextSurface) Order(ids []string) {
	next := make([]string, 0, len(s.order))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.reps[id]; ok && !seen[id] {
			next = append(next, id)
			seen[id] = true
		}
	}
	for _, id := range s.order {
		if !seen[id] {
			next = append(next, id)
		}
	}
	s.order = next
}

// Clear implements Surface.
func (s *TextSurface) Clear() {
	s.order = nil
	s.reps = make(map[string]*textRep)
}

// IDs implements Lister: representation ids in display order.
func (s *TextSurface) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of representations.
func (s *TextSurface) Len() int { return len(s.reps) }

// Focus gives a field of an entity interactive input focus. Focusing an
// unknown id is a no-op. Any previously focused field of the same
// representation is blurred first.
func (s *TextSurface) Focus(id, field string) {
	r, ok := s.reps[id]
	if !ok {
		return
	}
	if r.focused != "" && r.focused != field {
		s.Blur(id)
	}
	r.focused = field
}

// Input replaces the displayed value of the focused field, representing
// the user's in-progress edit. No-op unless the field is focused.
func (s *TextSurface) Input(id, field, value string) {
	r, ok := s.reps[id]
	if !ok || r.focused != field {
		return
	}
	r.fields[field] = value
}

// Blur releases input focus on an entity. A deferred upstream value for
// the previously focused field is applied now.
func (s *TextSurface) Blur(id string) {
	r, ok := s.reps[id]
	if !ok || r.focused == "" {
		return
	}
	field := r.focused
	r.focused = ""
	if v, ok := r.pending[field]; ok {
		r.fields[field] = v
		delete(r.pending, field)
	}
}

var _ Surface = (*TextSurface)(nil)
var _ Lister = (*TextSurface)(nil)
