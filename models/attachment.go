package models

import "time"

// Attachment is the metadata row for a binary file, typically a field photo,
// linked to a synchronized entity. The bytes themselves live in the blob
// store under StorageKey; only this metadata row is relational.
type Attachment struct {
	// ID is the server surrogate key.
	ID int64 `json:"-"`

	// UserID is the owning account. Server side only.
	UserID int64 `json:"-"`

	// AttachmentID is the client-generated UUID for the attachment.
	AttachmentID string `json:"attachment_id"`

	// EntityType and EntityID identify the record the file belongs to.
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	// FileName is the original upload name, kept for display and download.
	FileName string `json:"file_name"`

	// ContentType is the MIME type declared at upload time.
	ContentType string `json:"content_type"`

	// SizeBytes is the stored payload size.
	SizeBytes int64 `json:"size_bytes"`

	// Checksum is the hex SHA-256 of the stored bytes.
	Checksum string `json:"checksum,omitempty"`

	// StorageKey locates the bytes in the blob store. Never exposed.
	StorageKey string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Attachment model.
func (a Attachment) TableName() string {
	return "attachments"
}

// LocalAttachment is an Attachment as held in the client replica. Files
// captured offline keep Uploaded false until their bytes reach the server;
// StorageKey locates the bytes in the device-local blob store meanwhile.
type LocalAttachment struct {
	Attachment

	// Uploaded reports whether the server has acknowledged the bytes.
	Uploaded bool `json:"uploaded"`
}
