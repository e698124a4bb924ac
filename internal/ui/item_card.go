package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ai-generator/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent = 100
)

// ItemCard renders one generated item with its actions. In compact mode the
// thumbnail is hidden and only the prompt, timestamp and reuse action remain,
// which is how the history view lists requests.
type ItemCard struct {
	widget.BaseWidget

	item         model.GeneratedItem
	task         *model.DownloadTask
	compact      bool
	localization *Localization
	thumbs       *ThumbnailLoader // nil keeps the static kind icon

	// UI components
	thumbnail   *canvas.Image
	kindIcon    *widget.Icon
	promptLabel *widget.Label
	metaLabel   *widget.Label
	statusLabel *widget.Label

	// Action buttons
	downloadBtn *widget.Button
	openBtn     *widget.Button // saved file with default app, or the URL in a browser
	revealBtn   *widget.Button // saved file in file manager
	reuseBtn    *widget.Button
	copyBtn     *widget.Button

	// Callbacks
	onDownload func(itemID string)
	onOpen     func(item model.GeneratedItem, savedPath string)
	onReveal   func(filePath string)
	onReuse    func(itemID string)
	onCopyURL  func(url string)
}

// NewItemCard creates a new item card widget. Image previews are fetched
// through thumbs when it is not nil.
func NewItemCard(localization *Localization, compact bool, thumbs *ThumbnailLoader) *ItemCard {
	c := &ItemCard{
		localization: localization,
		compact:      compact,
		thumbs:       thumbs,
	}
	c.ExtendBaseWidget(c)
	c.createUI()
	return c
}

// SetCallbacks sets the action callbacks
func (c *ItemCard) SetCallbacks(
	onDownload func(itemID string),
	onOpen func(item model.GeneratedItem, savedPath string),
	onReveal func(filePath string),
	onReuse func(itemID string),
	onCopyURL func(url string),
) {
	c.onDownload = onDownload
	c.onOpen = onOpen
	c.onReveal = onReveal
	c.onReuse = onReuse
	c.onCopyURL = onCopyURL
}

// SetItem binds the card to item and the download task for it, if any
func (c *ItemCard) SetItem(item model.GeneratedItem, task *model.DownloadTask) {
	reload := item.URL != c.item.URL
	c.item = item
	c.task = task
	if reload {
		c.loadThumbnail()
	}
	c.updateFromItem()
	c.Refresh()
}

// SavedPath returns the local file of a completed download, or ""
func (c *ItemCard) SavedPath() string {
	if c.task == nil || c.task.Status != model.TaskStatusCompleted {
		return ""
	}
	return c.task.OutputPath
}

// createUI creates the UI components
func (c *ItemCard) createUI() {
	c.thumbnail = canvas.NewImageFromResource(theme.MediaPhotoIcon())
	c.thumbnail.FillMode = canvas.ImageFillContain
	c.thumbnail.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))

	c.kindIcon = widget.NewIcon(theme.MediaPhotoIcon())

	c.promptLabel = widget.NewLabel("")
	c.promptLabel.Wrapping = fyne.TextWrapWord
	c.promptLabel.Truncation = fyne.TextTruncateEllipsis

	c.metaLabel = widget.NewLabel("")
	c.metaLabel.TextStyle = fyne.TextStyle{Italic: true}

	c.statusLabel = widget.NewLabel("")
	c.statusLabel.Alignment = fyne.TextAlignTrailing

	c.downloadBtn = widget.NewButton(IconDownload, func() {
		if c.onDownload != nil {
			c.onDownload(c.item.ID)
		}
	})
	c.downloadBtn.Importance = widget.HighImportance

	c.openBtn = widget.NewButton(c.localization.GetText(KeyOpen), func() {
		if c.onOpen != nil {
			c.onOpen(c.item, c.SavedPath())
		}
	})
	c.openBtn.Importance = widget.MediumImportance

	c.revealBtn = widget.NewButton(IconFolder, func() {
		path := c.SavedPath()
		if path == "" {
			slog.Debug("reveal requested before download completed", "item_id", c.item.ID)
			return
		}
		if c.onReveal != nil {
			c.onReveal(path)
		}
	})
	c.revealBtn.Importance = widget.MediumImportance

	c.reuseBtn = widget.NewButton(IconRepeat+" "+c.localization.GetText(KeyReuse), func() {
		if c.onReuse != nil {
			c.onReuse(c.item.ID)
		}
	})
	c.reuseBtn.Importance = widget.LowImportance

	c.copyBtn = widget.NewButton(IconCopy, func() {
		if c.onCopyURL != nil && c.item.URL != "" {
			c.onCopyURL(c.item.URL)
		}
	})
	c.copyBtn.Importance = widget.LowImportance
}

// loadThumbnail shows the cached preview of an image item, or a placeholder
// until the loader delivers one. Videos keep the static icon because
// canvas.Image cannot decode them.
func (c *ItemCard) loadThumbnail() {
	switch {
	case c.item.Kind != model.KindImage || c.item.URL == "":
		c.setThumbnail(theme.MediaVideoIcon())
		return
	case c.thumbs == nil:
		c.setThumbnail(theme.MediaPhotoIcon())
		return
	}

	if res, ok := c.thumbs.Cached(c.item.ID); ok {
		c.setThumbnail(res)
		return
	}

	c.setThumbnail(theme.MediaPhotoIcon())
	itemID := c.item.ID
	c.thumbs.Load(c.item, func(res fyne.Resource) {
		fyne.Do(func() {
			// rows are recycled; skip if the card shows another item now
			if c.item.ID == itemID {
				c.setThumbnail(res)
			}
		})
	})
}

func (c *ItemCard) setThumbnail(res fyne.Resource) {
	c.thumbnail.Resource = res
	c.thumbnail.Image = nil
	c.thumbnail.File = ""
	c.thumbnail.Refresh()
}

// updateFromItem updates UI components based on item and task state
func (c *ItemCard) updateFromItem() {
	prompt := strings.Join(strings.Fields(c.item.Prompt), " ")
	c.promptLabel.SetText(prompt)

	if c.item.Kind == model.KindVideo {
		c.kindIcon.SetResource(theme.MediaVideoIcon())
	} else {
		c.kindIcon.SetResource(theme.MediaPhotoIcon())
	}

	meta := c.localization.KindLabel(c.item.Kind) + MiddleDotSeparator +
		c.item.GetDisplayDate() + " " + c.item.GetDisplayTime()
	c.metaLabel.SetText(meta)

	c.updateStatus()
	c.updateButtons()
}

func (c *ItemCard) updateStatus() {
	if c.task == nil {
		c.statusLabel.SetText("")
		return
	}

	switch c.task.Status {
	case model.TaskStatusError:
		c.statusLabel.Importance = widget.DangerImportance
		c.statusLabel.SetText(IconError + " " + c.task.Status.String())
	case model.TaskStatusCompleted:
		c.statusLabel.Importance = widget.SuccessImportance
		text := c.task.GetSizeString()
		if d := c.task.Duration(); d > 0 {
			text += MiddleDotSeparator + d.Round(100*time.Millisecond).String()
		}
		c.statusLabel.SetText(text)
	case model.TaskStatusDownloading:
		c.statusLabel.Importance = widget.HighImportance
		percent := c.task.Percent
		if percent > MaxProgressPercent {
			percent = MaxProgressPercent
		}
		if percent > 0 {
			c.statusLabel.SetText(fmt.Sprintf("%d%%", percent))
		} else {
			c.statusLabel.SetText(c.task.GetSizeString())
		}
	default:
		c.statusLabel.Importance = widget.MediumImportance
		c.statusLabel.SetText(c.task.Status.String())
	}
}

// updateButtons updates button states based on the download state
func (c *ItemCard) updateButtons() {
	if c.compact {
		c.downloadBtn.Hide()
		c.openBtn.Hide()
		c.revealBtn.Hide()
		c.copyBtn.Hide()
		c.reuseBtn.Show()
		return
	}

	c.downloadBtn.Show()
	c.openBtn.Show()
	c.revealBtn.Show()
	c.copyBtn.Show()
	c.reuseBtn.Show()

	if c.task != nil && c.task.Status.IsActive() {
		c.downloadBtn.Disable()
	} else {
		c.downloadBtn.Enable()
	}

	if c.SavedPath() != "" {
		c.revealBtn.Enable()
	} else {
		c.revealBtn.Disable()
	}

	if c.item.URL != "" {
		c.openBtn.Enable()
		c.copyBtn.Enable()
	} else {
		c.openBtn.Disable()
		c.copyBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (c *ItemCard) CreateRenderer() fyne.WidgetRenderer {
	return &itemCardRenderer{card: c}
}

// itemCardRenderer renders the item card widget
type itemCardRenderer struct {
	card   *ItemCard
	layout *fyne.Container
}

// Layout arranges the components
func (r *itemCardRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < CardMinWidth {
		size.Width = CardMinWidth
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *itemCardRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	size := r.layout.MinSize()
	if !r.card.compact && size.Height < CardMinHeight {
		size.Height = CardMinHeight
	}
	return size
}

// Refresh refreshes the renderer
func (r *itemCardRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *itemCardRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *itemCardRenderer) Destroy() {}

// createLayout creates the main layout
func (r *itemCardRenderer) createLayout() {
	c := r.card

	text := container.NewVBox(c.promptLabel, c.metaLabel)

	if c.compact {
		row := container.NewBorder(nil, nil, c.kindIcon, c.reuseBtn, text)
		r.layout = container.NewVBox(row, widget.NewSeparator())
		return
	}

	// Fixed-size slot so the thumbnail does not stretch with the row
	slot := canvas.NewRectangle(color.Transparent)
	slot.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))
	thumb := container.NewStack(slot, c.thumbnail)

	actions := container.NewHBox(c.statusLabel, c.downloadBtn, c.openBtn, c.revealBtn, c.copyBtn, c.reuseBtn)
	body := container.NewBorder(nil, actions, nil, nil, text)

	r.layout = container.NewVBox(
		container.NewBorder(nil, nil, thumb, nil, body),
		widget.NewSeparator(),
	)
}
