package ui

import (
	"errors"
	"net/url"
	"strings"
)

// validateEndpoint accepts an empty value (restores the configured default)
// or an absolute http(s) URL
func validateEndpoint(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return errors.New("URL must include a host")
	}

	return nil
}
