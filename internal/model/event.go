package model

// EventType identifies a user-facing notification raised by the session.
type EventType string

const (
	EventPromptMissing       EventType = "prompt_missing"
	EventGenerated           EventType = "generated"
	EventGenerationFailed    EventType = "generation_failed"
	EventGenerationCancelled EventType = "generation_cancelled"
	EventTemplateApplied     EventType = "template_applied"
	EventDownloaded          EventType = "downloaded"
	EventDownloadFailed      EventType = "download_failed"
)

// IsError reports whether the event should be shown as a failure
func (t EventType) IsError() bool {
	return t == EventPromptMissing || t == EventGenerationFailed || t == EventDownloadFailed
}

// Event is delivered to frontends, which turn it into localized text.
type Event struct {
	Type   EventType
	Kind   MediaKind
	ItemID string
	Path   string // saved file, for EventDownloaded
	Err    error
}
