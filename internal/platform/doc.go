package platform

// Package platform contains OS integration: download directory discovery,
// safe local file names for saved assets, and revealing or opening files and
// URLs with the system applications.
