package model

import "time"

// PgSchema is the name of the Postgres schema.
type PgSchema string

// FilePath is a path within the local filesystem.
type FilePath string

// Config keeps the process-wide settings of the daemon.
type Config struct {
	ReposDir                FilePath
	Workers                 int
	AutoUpdate              string
	AlertThreshold          int
	LockTimeout             time.Duration
	ReaperGrace             time.Duration
	SuggestionRetentionDays int
	CommentRetentionDays    int
}
