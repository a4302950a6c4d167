package entity_test

import (
	"errors"
	"strings"
	"testing"

	"newstrust/internal/domain/entity"
)

func TestValidateArticleText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "empty text", text: "", wantErr: true},
		{name: "normal article", text: "Scientists discover water on distant exoplanet.", wantErr: false},
		{name: "oversized text", text: strings.Repeat("a", 100_001), wantErr: true},
		{name: "exactly at limit", text: strings.Repeat("a", 100_000), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateArticleText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArticleText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var valErr *entity.ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("want ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty url", url: "", wantErr: true},
		{name: "valid https", url: "https://example.com/article", wantErr: false},
		{name: "valid http", url: "http://example.com", wantErr: false},
		{name: "ftp scheme rejected", url: "ftp://example.com/file", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", 2048), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
