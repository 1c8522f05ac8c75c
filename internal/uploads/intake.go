package uploads

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/docker/go-units"
)

// MaxFileSize is the largest accepted upload, inclusive.
const MaxFileSize int64 = 50 * units.MiB

// Extensions lists the accepted lower-cased file extensions.
var Extensions = []string{".zip", ".brs", ".bsfw"}

// Accept is the value for a file input's accept attribute.
var Accept = strings.Join(Extensions, ",")

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	keyPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// File describes a candidate upload before any bytes are read.
type File struct {
	Name string
	Size int64
}

// Validate checks f against the size ceiling and the extension allow-list.
// The size check runs first, so an oversized file is too large whatever its type.
func Validate(f File) error {
	if f.Size < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalidFile)
	}
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: %s > %s", ErrFileTooLarge,
			units.BytesSize(float64(f.Size)), units.BytesSize(float64(MaxFileSize)))
	}

	ext := strings.ToLower(path.Ext(f.Name))
	if ext == "" {
		return fmt.Errorf("%w: %q has no extension", ErrUnsupportedFileType, f.Name)
	}
	for _, allowed := range Extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
}

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// ValidateKey checks that key is a single path segment of [A-Za-z0-9_-].
// Device ids and provisional uuids both qualify.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// StoragePath joins the association key with the sanitized filename.
// The key is kept verbatim.
func StoragePath(key, filename string) string {
	return ReplaceFilename(key+"/"+filename, filename)
}

// ReplaceFilename rewrites the last occurrence of filename in p with its
// sanitized form. Paths that do not contain filename are returned unchanged.
func ReplaceFilename(p, filename string) string {
	i := strings.LastIndex(p, filename)
	if filename == "" || i < 0 {
		return p
	}
	return p[:i] + SanitizeFilename(filename) + p[i+len(filename):]
}

// Plan validates f and key and returns the storage path f should be written to.
func Plan(key string, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return StoragePath(key, f.Name), nil
}
