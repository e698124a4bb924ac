package model

// View is the screen a frontend currently shows.
type View string

const (
	ViewGenerator View = "generator"
	ViewGallery   View = "gallery"
	ViewHistory   View = "history"
)

// Views returns all views in tab order
func Views() []View {
	return []View{ViewGenerator, ViewGallery, ViewHistory}
}

// SessionState is a point-in-time copy of the session. Frontends render from
// it; mutating a snapshot has no effect on the session.
type SessionState struct {
	PromptText   string
	Busy         bool
	RequestState RequestState
	Items        []GeneratedItem
	ActiveView   View
	ActiveKind   MediaKind
}

// Len returns the number of generated items
func (s SessionState) Len() int {
	return len(s.Items)
}

// ItemsOfKind returns the items of the given kind, most recent first
func (s SessionState) ItemsOfKind(kind MediaKind) []GeneratedItem {
	var out []GeneratedItem
	for _, it := range s.Items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}
