package model

import (
	"fmt"
	"time"
)

// MediaKind selects which generation endpoint a prompt is sent to.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// String returns the string representation of MediaKind
func (k MediaKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds
func (k MediaKind) Valid() bool {
	return k == KindImage || k == KindVideo
}

// Extension returns the file extension used when saving assets of this kind
func (k MediaKind) Extension() string {
	if k == KindVideo {
		return "mp4"
	}
	return "png"
}

// MediaKinds returns all supported kinds in display order
func MediaKinds() []MediaKind {
	return []MediaKind{KindImage, KindVideo}
}

// ParseMediaKind converts user input into a MediaKind
func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(s)
	if !k.Valid() {
		return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("unsupported media kind %q", s)}
	}
	return k, nil
}

// GeneratedItem is a completed image or video plus the prompt that produced it.
// Items are created only after a successful response and never mutated.
type GeneratedItem struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Kind      MediaKind `json:"kind"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Filename returns the default local file name, e.g. "image-<id>.png"
func (it GeneratedItem) Filename() string {
	return fmt.Sprintf("%s-%s.%s", it.Kind, it.ID, it.Kind.Extension())
}

// GetDisplayDate returns the creation date formatted as dd.mm.yyyy
func (it GeneratedItem) GetDisplayDate() string {
	if it.CreatedAt.IsZero() {
		return "—"
	}
	return it.CreatedAt.Local().Format("02.01.2006")
}

// GetDisplayTime returns the creation time formatted as hh:mm
func (it GeneratedItem) GetDisplayTime() string {
	if it.CreatedAt.IsZero() {
		return "—"
	}
	return it.CreatedAt.Local().Format("15:04")
}
