package model

import "time"

const (
	// AlertRepositoryOutdated defines the alert raised when too many remote commits are missing locally.
	AlertRepositoryOutdated = "RepositoryOutdated"
	// AlertRepositoryChanges defines the alert raised when too many local commits are not pushed.
	AlertRepositoryChanges = "RepositoryChanges"
	// AlertParseError defines the alert raised when the translation files cannot be parsed.
	AlertParseError = "ParseError"
	// AlertPushFailure defines the alert raised when the component cannot be pushed.
	AlertPushFailure = "PushFailure"
	// AlertNoTranslationFiles defines the alert raised when the checkout contains no translation files.
	AlertNoTranslationFiles = "NoTranslationFiles"

	// DefaultAlertThreshold defines the default commit-count threshold for the repository alerts.
	DefaultAlertThreshold = 10
)

// Alert is a model that represents a named health indicator of a component.
type Alert struct {
	ComponentID uint64    `json:"componentId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}
