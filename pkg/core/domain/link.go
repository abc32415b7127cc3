package domain

import (
	"strings"
	"time"
)

// Link is a posted resource on the board
type Link struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	FileURL     string    `json:"fileUrl,omitempty"`
	Domain      string    `json:"domain"` // Domain name as typed, not a reference
	PostedAt    time.Time `json:"postedAt"`
}

// LinkInput carries the editable fields of a Link
type LinkInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	FileURL     string `json:"fileUrl"`
	Domain      string `json:"domain"`
}

// Apply overwrites every editable field of l with the input values.
func (in LinkInput) Apply(l *Link) {
	l.Title = in.Title
	l.Description = in.Description
	l.URL = in.URL
	l.FileURL = in.FileURL
	l.Domain = in.Domain
}

// IsFile reports whether the link points at an uploaded object.
func (l Link) IsFile() bool {
	if l.FileURL != "" {
		return true
	}
	return strings.HasPrefix(l.URL, "https://s3") || strings.Contains(l.URL, ".amazonaws.com")
}

// Href is the address a reader follows. Stored URLs are raw user input,
// so a missing scheme is filled in with https.
func (l Link) Href() string {
	if l.FileURL != "" {
		return l.FileURL
	}
	if l.URL == "" || strings.HasPrefix(l.URL, "http") {
		return l.URL
	}
	return "https://" + l.URL
}
