package models

// DefaultMaxUploadBytes is the thumbnail/image size limit when uploads.MaxBytes is unset.
const DefaultMaxUploadBytes = 1000000

const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

const (
	FolderElections  = "elections"
	FolderCandidates = "candidates"
)
