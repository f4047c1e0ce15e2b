package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/askexpert/pkg/answer"
)

// isBlank matches the form's empty-input rule: whitespace only (including
// full-width spaces) counts as empty.
func isBlank(text string) bool { return strings.TrimSpace(text) == "" }

// askWithin dispatches one ask and waits for it under timeout.
func askWithin(ctx context.Context, svc answer.UseCase, timeout time.Duration, req answer.Request) (answer.Answer, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return answer.Wait(ctx, svc.Go(ctx, req))
}

func statusFor(kind answer.Kind) int {
	switch kind {
	case answer.KindEmptyInput:
		return http.StatusBadRequest
	case answer.KindCredentialMissing:
		return http.StatusServiceUnavailable
	case answer.KindTimeout:
		return http.StatusGatewayTimeout
	case answer.KindNetwork, answer.KindProvider:
		return http.StatusBadGateway
	case answer.KindCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
