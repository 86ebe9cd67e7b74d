// Package assist is the simulated AI text generator: an opaque
// (instruction, currentText) -> producedText function with artificial
// latency. It stands in for a real model API and produces canned
// responses; the note store never depends on it.
package assist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultDelay is the simulated generation latency.
const DefaultDelay = 1500 * time.Millisecond

// Built-in instructions. Anything else is treated as a custom prompt.
const (
	ActionSummarize = "summarize"
	ActionContinue  = "continue"
	ActionImprove   = "improve"
)

// ErrEmptyContent is returned when a built-in action is asked to work
// on a note with no content.
var ErrEmptyContent = errors.New("note has no content to work with")

// Option defines a functional option for configuring a Generator.
type Option func(*Generator)

// WithDelay overrides the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// WithLogger sets the logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator produces simulated AI responses.
type Generator struct {
	delay  time.Duration
	logger *slog.Logger
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		delay:  DefaultDelay,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the instruction against the current note text after the
// simulated delay. It honors context cancellation during the wait.
func (g *Generator) Generate(ctx context.Context, instruction, current string) (string, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", errors.New("instruction is empty")
	}

	isBuiltin := instruction == ActionSummarize || instruction == ActionContinue || instruction == ActionImprove
	if isBuiltin && current == "" {
		return "", ErrEmptyContent
	}

	g.logger.Debug("generating", "instruction", instruction)

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	switch instruction {
	case ActionSummarize:
		return "## Summary\n\nThis note covers key points about project planning, " +
			"including timeline estimates, resource allocation, and stakeholder " +
			"communication strategies.", nil
	case ActionContinue:
		return current + "\n\nBuilding on these ideas, we could implement a phased " +
			"approach that allows for iterative testing and feedback. This would " +
			"mitigate risks and provide opportunities for course correction if needed.", nil
	case ActionImprove:
		improved := strings.ReplaceAll(current, "good", "excellent")
		return strings.ReplaceAll(improved, "nice", "outstanding"), nil
	default:
		return "Based on your request to \"" + instruction + "\", here's a suggested addition:\n\n" +
			"### " + capitalize(instruction) + "\n\n" +
			"This would be an AI-generated response to your specific request, " +
			"tailored to the content of your note and the guidance you've provided.", nil
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
