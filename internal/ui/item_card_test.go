package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ai-generator/internal/model"
)

func TestItemCard_Status(t *testing.T) {
	test.NewApp()

	card := NewItemCard(NewLocalization(), false, nil)
	item := model.GeneratedItem{ID: "v", Kind: model.KindVideo, URL: "https://x/v.mp4", Prompt: "waves"}

	card.SetItem(item, nil)
	if card.SavedPath() != "" {
		t.Error("No saved path without a task")
	}
	if !card.revealBtn.Disabled() {
		t.Error("Reveal should be disabled before download")
	}

	start := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	task := &model.DownloadTask{
		Filename:   item.Filename(),
		OutputPath: "/tmp/" + item.Filename(),
		Status:     model.TaskStatusCompleted,
		BytesDone:  2048,
		BytesTotal: 2048,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
	card.SetItem(item, task)

	if card.SavedPath() != task.OutputPath {
		t.Errorf("SavedPath() = %q, want %q", card.SavedPath(), task.OutputPath)
	}
	if got, want := card.statusLabel.Text, "2.0 KB / 2.0 KB · 1.5s"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if card.revealBtn.Disabled() {
		t.Error("Reveal should be enabled after download")
	}
}
