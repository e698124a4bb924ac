// Package session owns the state of one generation session: the prompt
// editor, the busy flag guarding the single outstanding request and the list
// of generated items. Frontends drive it through Manager and re-render from
// the snapshots passed to the update callback.
package session
