package model

// Package model defines domain data structures shared by the session core and
// both frontends: generated items, media kinds, session snapshots, prompt
// templates, asset download tasks, notification events and error kinds.
