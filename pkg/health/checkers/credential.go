package checkers

import (
	"context"
	"errors"
)

var ErrCredentialMissing = errors.New("llm credential is not configured")

// CredentialChecker reports not-ready while no API key was resolved at
// startup. It never touches the network.
type CredentialChecker struct {
	configured bool
}

func NewCredentialChecker(configured bool) *CredentialChecker {
	return &CredentialChecker{configured: configured}
}

func (c *CredentialChecker) Name() string { return "llm_credential" }

func (c *CredentialChecker) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.configured {
		return ErrCredentialMissing
	}
	return nil
}
