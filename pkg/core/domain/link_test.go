package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinkHref(t *testing.T) {
	tests := []struct {
		name string
		link Link
		want string
	}{
		{name: "bare host", link: Link{URL: "example.com"}, want: "https://example.com"},
		{name: "https kept", link: Link{URL: "https://example.com/a"}, want: "https://example.com/a"},
		{name: "http kept", link: Link{URL: "http://example.com"}, want: "http://example.com"},
		{name: "empty", link: Link{}, want: ""},
		{
			name: "file wins",
			link: Link{URL: "example.com", FileURL: "https://bucket.s3.us-east-1.amazonaws.com/1_a.pdf"},
			want: "https://bucket.s3.us-east-1.amazonaws.com/1_a.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.link.Href())
		})
	}
}

func TestLinkIsFile(t *testing.T) {
	assert.True(t, Link{FileURL: "https://cdn.example.com/x"}.IsFile())
	assert.True(t, Link{URL: "https://bucket.s3.eu-west-1.amazonaws.com/1_x.png"}.IsFile())
	assert.True(t, Link{URL: "https://s3.amazonaws.com/bucket/x"}.IsFile())
	assert.False(t, Link{URL: "example.com"}.IsFile())
}

func TestLinkInputApply(t *testing.T) {
	posted := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	l := Link{ID: "abc", Title: "old", Description: "old", URL: "old.com", FileURL: "f", Domain: "math", PostedAt: posted}

	LinkInput{Title: "T", Description: "D", URL: "example.com", Domain: "physics"}.Apply(&l)

	assert.Equal(t, "abc", l.ID)
	assert.Equal(t, posted, l.PostedAt)
	assert.Equal(t, "T", l.Title)
	assert.Equal(t, "D", l.Description)
	assert.Equal(t, "example.com", l.URL)
	assert.Empty(t, l.FileURL)
	assert.Equal(t, "physics", l.Domain)
}
