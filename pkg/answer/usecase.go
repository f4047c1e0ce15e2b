package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/askexpert/pkg/expert"
	"github.com/artem13815/askexpert/pkg/llm"
)

// Request is a single submission from the form or the API.
type Request struct {
	Text string
	Role string
}

// Answer is a completion returned verbatim by the model.
type Answer struct {
	ID    uuid.UUID `json:"id"`
	Role  string    `json:"role"`
	Model string    `json:"model"`
	Text  string    `json:"answer"`
}

// Result is delivered once on the channel returned by UseCase.Go.
type Result struct {
	Answer Answer
	Err    error
}

// UseCase describes the answer requester.
type UseCase interface {
	// Ask does not validate Text; callers reject empty input first.
	Ask(ctx context.Context, req Request) (Answer, error)
	// AskText always returns a string: the completion or a user-facing message.
	AskText(ctx context.Context, text, role string) string
	// Go runs Ask on its own goroutine.
	Go(ctx context.Context, req Request) <-chan Result
}

type Option func(*service)

func WithLogger(l *slog.Logger) Option {
	return func(s *service) { s.log = l }
}

type service struct {
	roles      *expert.Registry
	model      llm.ChatModel
	credential string
	log        *slog.Logger
}

// NewService wires the requester. credential is resolved once at startup;
// an empty value makes every Ask fail with KindCredentialMissing.
func NewService(roles *expert.Registry, model llm.ChatModel, credential string, opts ...Option) UseCase {
	s := &service{
		roles:      roles,
		model:      model,
		credential: credential,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Ask(ctx context.Context, req Request) (Answer, error) {
	start := time.Now()
	role := s.roles.Resolve(req.Role)
	log := s.log.With("role", role.String())

	if s.credential == "" {
		log.Warn("ask skipped", "kind", KindCredentialMissing.String())
		return Answer{}, &Error{Kind: KindCredentialMissing, Err: ErrCredentialMissing}
	}

	messages, err := BuildPrompt(s.roles.Instruction(role), req.Text)
	if err != nil {
		log.Error("ask failed", "kind", KindInternal.String(), "err", err)
		return Answer{}, &Error{Kind: KindInternal, Err: err}
	}

	text, err := s.model.Complete(ctx, messages)
	if err != nil {
		aerr := classify(ctx, err)
		log.Error("ask failed",
			"kind", aerr.Kind.String(),
			"latency", time.Since(start),
			"err", err,
		)
		return Answer{}, aerr
	}

	log.Info("ask completed",
		"model", s.model.ModelName(),
		"latency", time.Since(start),
		"answer_chars", len([]rune(text)),
	)
	return Answer{
		ID:    uuid.New(),
		Role:  req.Role,
		Model: s.model.ModelName(),
		Text:  text,
	}, nil
}

func (s *service) AskText(ctx context.Context, text, role string) string {
	ans, err := s.Ask(ctx, Request{Text: text, Role: role})
	if err != nil {
		return UserMessage(err)
	}
	return ans.Text
}

func (s *service) Go(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		ans, err := s.Ask(ctx, req)
		out <- Result{Answer: ans, Err: err}
	}()
	return out
}

// Wait blocks until the result arrives or ctx is done, whichever comes first.
// A done ctx is reported as KindTimeout or KindCanceled.
func Wait(ctx context.Context, results <-chan Result) (Answer, error) {
	select {
	case res, ok := <-results:
		if !ok {
			return Answer{}, &Error{Kind: KindInternal, Err: errors.New("result channel closed")}
		}
		return res.Answer, res.Err
	case <-ctx.Done():
		return Answer{}, contextError(ctx.Err())
	}
}

func classify(ctx context.Context, err error) *Error {
	var perr *llm.ProviderError
	switch {
	case errors.As(err, &perr):
		return &Error{Kind: KindProvider, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return contextError(err)
	case ctx.Err() != nil:
		return contextError(fmt.Errorf("%w: %w", ctx.Err(), err))
	default:
		return &Error{Kind: KindNetwork, Err: err}
	}
}

func contextError(err error) *Error {
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Err: err}
	}
	return &Error{Kind: KindTimeout, Err: err}
}
