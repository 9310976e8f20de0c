package masking

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/contractmask/pkg/metrics"
)

// Report describes one regex-stage pass over a unit.
type Report struct {
	Matches map[string]int `json:"matches,omitempty"`
	Skipped []string       `json:"skipped,omitempty"`
}

// Total returns the number of replacements across all rules.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Matches {
		n += c
	}
	return n
}

// RegexEngine applies a registry's rules sequentially, each rule seeing the
// output of the previous one.
type RegexEngine struct {
	registry *Registry
	timeout  time.Duration

	ruleContext func(ctx context.Context, rule *Rule) (context.Context, context.CancelFunc)
}

// NewRegexEngine creates an engine bounding every rule application by timeout.
// A non-positive timeout disables the per-rule budget.
func NewRegexEngine(reg *Registry, timeout time.Duration) *RegexEngine {
	e := &RegexEngine{registry: reg, timeout: timeout}
	e.ruleContext = func(ctx context.Context, _ *Rule) (context.Context, context.CancelFunc) {
		if e.timeout <= 0 {
			return context.WithCancel(ctx)
		}
		return context.WithTimeout(ctx, e.timeout)
	}
	return e
}

// Apply runs every rule over text in registry order. A rule that exceeds its
// budget is skipped for this text only: the text it was given passes on to
// the next rule and the rule name is recorded in the report. An error is
// returned only when ctx itself is done.
func (e *RegexEngine) Apply(ctx context.Context, text string) (string, Report, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("regex").Observe(time.Since(start).Seconds())
	}()

	report := Report{Matches: make(map[string]int)}
	for _, rule := range e.registry.rules {
		rctx, cancel := e.ruleContext(ctx, rule)
		out, n, err := rule.Apply(rctx, text)
		cancel()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", report, ctxErr
			}
			slog.Warn("Masking rule exceeded its budget, skipping",
				"rule", rule.Name,
				"timeout", e.timeout,
				"text_bytes", len(text))
			metrics.RuleTimeouts.WithLabelValues(rule.Name).Inc()
			report.Skipped = append(report.Skipped, rule.Name)
			continue
		}
		if n > 0 {
			report.Matches[rule.Name] += n
			metrics.RuleMatches.WithLabelValues(rule.Name).Add(float64(n))
			text = out
		}
	}
	return text, report, nil
}

// Registry returns the engine's rule registry.
func (e *RegexEngine) Registry() *Registry {
	return e.registry
}
