package parser

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the translation-file parser interface. Load returns an error
// matching model.ErrParse when any file of the checkout is malformed.
type Service interface {
	Load(ctx context.Context, c model.Component) ([]model.Unit, error)
}
