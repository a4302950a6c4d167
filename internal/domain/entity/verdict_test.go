package entity_test

import (
	"testing"

	"newstrust/internal/domain/entity"
)

func TestDeriveDomain(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "https with www prefix",
			url:  "https://www.reuters.com/world/some-story",
			want: "reuters.com",
		},
		{
			name: "http without www",
			url:  "http://apnews.com/article/xyz",
			want: "apnews.com",
		},
		{
			name: "no scheme",
			url:  "bbc.com/news/live",
			want: "bbc.com",
		},
		{
			name: "bare domain",
			url:  "npr.org",
			want: "npr.org",
		},
		{
			name: "subdomain preserved",
			url:  "https://edition.cnn.com/2024/politics",
			want: "edition.cnn.com",
		},
		{
			name: "empty input",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.DeriveDomain(tt.url); got != tt.want {
				t.Errorf("DeriveDomain(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDeriveDomain_deterministic(t *testing.T) {
	const url = "https://www.reuters.com/markets"
	first := entity.DeriveDomain(url)
	for i := 0; i < 3; i++ {
		if got := entity.DeriveDomain(url); got != first {
			t.Fatalf("DeriveDomain not deterministic: %q vs %q", got, first)
		}
	}
}
