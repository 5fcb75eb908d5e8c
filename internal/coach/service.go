package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
)

// Service generates walkthroughs, either synchronously or one at a time in
// the background for the practice screen.
type Service struct {
	provider   llm.Provider
	cfg        Config
	validators []Validator
	logger     *zap.Logger

	wg sync.WaitGroup

	mu      sync.Mutex
	cancel  context.CancelFunc
	gen     uint64
	pending Result
	ready   bool
	closed  bool
}

// Result is a finished background request.
type Result struct {
	// Input is the request the result answers, set for failures too.
	Input       Input
	Walkthrough *Walkthrough
	Err         error
}

// NewService creates a walkthrough service. A nil logger discards logs.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider:   provider,
		cfg:        cfg,
		validators: DefaultValidators(),
		logger:     logger,
	}
}

// Walkthrough generates and validates a walkthrough for in.
func (s *Service) Walkthrough(ctx context.Context, in Input) (*Walkthrough, error) {
	if in.Solution == nil || len(in.Solution.Steps) == 0 {
		return nil, fmt.Errorf("walkthrough for %d × %d: no derivation", in.A, in.B)
	}
	ctx = llm.WithPurpose(ctx, "walkthrough")

	msgs := llm.UserMessage(buildUserMessage(in))
	var lastErr error
	for attempt := range s.cfg.MaxAttempts {
		req := llm.Request{
			System:      systemPrompt,
			Messages:    msgs,
			Schema:      WalkthroughSchema,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
		}
		resp, err := s.provider.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("walkthrough generation: %w", err)
		}

		w, err := decode(resp, in)
		if err != nil {
			return nil, err
		}
		verr := s.validate(w, in)
		if verr == nil {
			return w, nil
		}

		s.logger.Debug("walkthrough rejected",
			zap.Int("attempt", attempt+1),
			zap.String("validator", verr.Validator),
			zap.String("reason", verr.Message),
		)
		lastErr = verr
		if !verr.Retryable {
			break
		}
		msgs = append(msgs,
			llm.Message{Role: llm.RoleAssistant, Content: string(resp.Content)},
			llm.Message{Role: llm.RoleUser, Content: feedbackMessage(verr)},
		)
	}
	return nil, lastErr
}

func decode(resp *llm.Response, in Input) (*Walkthrough, error) {
	var out walkthroughOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse walkthrough response: %w", err)
	}
	return &Walkthrough{
		A:           in.A,
		B:           in.B,
		Strategy:    in.Solution.Strategy,
		Intro:       out.Intro,
		Steps:       out.Steps,
		Tip:         out.Tip,
		FinalAnswer: out.FinalAnswer,
		Model:       resp.Model,
	}, nil
}

func (s *Service) validate(w *Walkthrough, in Input) *ValidationError {
	for _, v := range s.validators {
		if verr := v.Validate(w, in); verr != nil {
			return verr
		}
	}
	return nil
}

// Request starts a background walkthrough. A newer request cancels and
// replaces one still in flight.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.ready = false

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		w, err := s.Walkthrough(ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || errors.Is(err, context.Canceled) {
			return
		}
		s.pending = Result{Input: in, Walkthrough: w, Err: err}
		s.ready = true
	}()
}

// Consume returns the finished background result, if any, and clears it.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	r := s.pending
	s.pending = Result{}
	s.ready = false
	return r, true
}

// Close cancels any request in flight and waits for it to stop.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
