package generate

// Package generate is the HTTP transport to the external generation service.
// Each media kind has its own endpoint; a call posts the prompt as JSON and
// expects the asset URL back.
