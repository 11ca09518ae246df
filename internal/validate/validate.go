// Package validate holds the upload admissibility rules. Everything here is
// pure: no I/O, no side effects, deterministic outcomes. The checks run in a
// fixed order and the first failure wins, so callers get one stable, specific
// rejection reason per bad upload.
package validate

import (
	"errors"
	"strings"
)

// MaxPayloadBytes is the ciphertext size ceiling (5 MiB).
const MaxPayloadBytes = 5 * 1024 * 1024

var (
	ErrEmptyPayload   = errors.New("payload is empty")
	ErrPayloadTooBig  = errors.New("payload exceeds 5 MiB")
	ErrMimeNotAllowed = errors.New("mime type not allowed")
	ErrNameRequired   = errors.New("filename is required")
	ErrNameIllegal    = errors.New("filename contains illegal characters")
	ErrExtNotAllowed  = errors.New("file extension not allowed")
)

var allowedMimes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

var allowedExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"pdf":  true,
}

// Upload is the accepted tuple for an admissible upload. Name is the trimmed
// declared filename; Ext is its lowercased extension.
type Upload struct {
	Mime string
	Name string
	Ext  string
}

// CheckUpload applies the admission rules to a payload and its declared
// MIME/filename, in order:
//
//  1. payload non-empty
//  2. payload within the size ceiling
//  3. MIME in the allow-list
//  4. filename non-empty after trimming
//  5. filename restricted to [A-Za-z0-9_.\- ] (space included)
//  6. extension in the allow-list (case-insensitive)
func CheckUpload(payload []byte, mime, filename string) (Upload, error) {
	if len(payload) == 0 {
		return Upload{}, ErrEmptyPayload
	}
	if len(payload) > MaxPayloadBytes {
		return Upload{}, ErrPayloadTooBig
	}
	if !allowedMimes[mime] {
		return Upload{}, ErrMimeNotAllowed
	}
	name := strings.TrimSpace(filename)
	if name == "" {
		return Upload{}, ErrNameRequired
	}
	if !legalName(name) {
		return Upload{}, ErrNameIllegal
	}
	ext := strings.ToLower(extension(name))
	if !allowedExts[ext] {
		return Upload{}, ErrExtNotAllowed
	}
	return Upload{Mime: mime, Name: name, Ext: ext}, nil
}

func legalName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return true
}

// extension returns the substring after the last dot, or "" if there is none.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}
