package libpro

import (
	"errors"
)

var ErrNotFound = errors.New("No record with that id")
var ErrMissingField = errors.New("Name and email are required")
var ErrPasswordMismatch = errors.New("Passwords do not match")
var ErrDuplicateEmail = errors.New("Email already registered")
var ErrMemberNotFound = errors.New("Membership number not found")
var ErrWrongPassword = errors.New("Incorrect password")

// Stats is the headline counter block shown on the landing page.
type Stats struct {
	TotalBooks     int `json:"totalBooks"`
	TotalDownloads int `json:"totalDownloads"`
	ActiveReaders  int `json:"activeReaders"`
	DownloadsToday int `json:"downloadsToday"`
}

// Theme values accepted by SetTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UploadInput holds the raw form values for a user-submitted book. Empty
// fields are backfilled with the same defaults the upload form used.
type UploadInput struct {
	Title    string `json:"title" form:"title"`
	Author   string `json:"author" form:"author"`
	Category string `json:"category" form:"category"`
	Summary  string `json:"summary" form:"summary"`
	Pages    int    `json:"pages" form:"pages"`
	Size     string `json:"size" form:"size"`
	PDFURL   string `json:"pdfUrl" form:"pdfUrl"`
}
