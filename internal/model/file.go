package model

import "time"

// File is the persisted record binding a one-time token to its stored object.
// The ID doubles as the external token and as the prefix of the object key.
// This is a pure domain model with no database-specific dependencies or tags;
// it can be used across layers (HTTP, service, storage) without coupling to
// persistence.
type File struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	Mime         string    `json:"mime"`
	Size         int64     `json:"size"`
	ExpiresAt    time.Time `json:"expires_at"`
	Used         bool      `json:"used"`
	CreatedAt    time.Time `json:"created_at"`
}

// ObjectKey returns the object storage key for a file record's ciphertext.
// The ".bin" suffix marks the blob as opaque; the real name and MIME live
// only in the record.
func ObjectKey(id string) string {
	return id + ".bin"
}
