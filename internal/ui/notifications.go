package ui

import (
	"errors"

	"github.com/ytget/ai-generator/internal/model"
)

// EventText returns the localized title and description for a session event
func (l *Localization) EventText(e model.Event) (title, description string) {
	switch e.Type {
	case model.EventPromptMissing:
		return l.GetText(KeyPromptMissingTitle), l.byKind(e.Kind, KeyPromptMissingImage, KeyPromptMissingVideo)
	case model.EventGenerated:
		return l.GetText(KeyDoneTitle), l.byKind(e.Kind, KeyImageCreated, KeyVideoCreated)
	case model.EventGenerationFailed:
		var ge *model.GenerationError
		if errors.As(e.Err, &ge) && ge.Timeout {
			return l.GetText(KeyErrorTitle), l.GetText(KeyTimedOut)
		}
		return l.GetText(KeyErrorTitle), l.byKind(e.Kind, KeyImageFailed, KeyVideoFailed)
	case model.EventGenerationCancelled:
		return l.GetText(KeyCancelledTitle), l.GetText(KeyCancelledDescription)
	case model.EventTemplateApplied:
		return l.GetText(KeyTemplateTitle), l.GetText(KeyTemplateDescription)
	case model.EventDownloaded:
		return l.GetText(KeyDownloadedTitle), l.GetText(KeyDownloadedDesc)
	case model.EventDownloadFailed:
		return l.GetText(KeyErrorTitle), l.GetText(KeyDownloadFailedDesc)
	default:
		return string(e.Type), ""
	}
}

// KindLabel returns the localized name of a media kind
func (l *Localization) KindLabel(kind model.MediaKind) string {
	return l.byKind(kind, KeyKindImage, KeyKindVideo)
}

func (l *Localization) byKind(kind model.MediaKind, imageKey, videoKey string) string {
	if kind == model.KindVideo {
		return l.GetText(videoKey)
	}
	return l.GetText(imageKey)
}
