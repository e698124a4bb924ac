package ui

import "testing"

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"   ", false},
		{"https://functions.poehali.dev/call/generate_image", false},
		{"http://localhost:8080/image", false},
		{"ftp://example.com/image", true},
		{"functions.poehali.dev/call", true},
		{"https://", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		err := validateEndpoint(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateEndpoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
