package download

// Package download saves generated assets to the local download directory.
// Every save is tracked as a task with status and byte progress that is
// propagated to the UI through an update callback.
