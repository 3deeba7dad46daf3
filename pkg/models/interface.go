package models

import (
	"context"
)

// Agent is the minimal language-model contract the orchestrator needs.
type Agent interface {
	Generate(context.Context, string) (any, error)
}
