package uploads

import (
	"io"
)

// Upload is a file submitted for storage. Key associates the file with a
// device; an empty key is replaced with a provisional identifier.
type Upload struct {
	Key      string    `json:"key,omitempty"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Content  io.Reader `json:"-"`
}

// Result locates a stored upload.
type Result struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
