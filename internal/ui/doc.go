// Package ui contains the Fyne-based desktop user interface. It drives a
// session.Manager: the prompt editor, kind selector and templates feed
// Submit, while gallery and history lists render the snapshots delivered to
// the session's update callback. Session events become localized messages in
// the notification panel.
package ui
