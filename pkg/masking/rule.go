package masking

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

// Rule is a compiled masking rule. Rules are immutable after compilation and
// safe for concurrent use.
type Rule struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Token       string
	WordStart   bool
	WordEnd     bool
	Description string

	// anchored matches the whole pattern against a candidate substring;
	// used to shorten a match that does not end on a word boundary.
	anchored *regexp.Regexp
	exclude  map[string]bool
}

// CompileRules compiles the enabled rules of cfg in catalogue order.
// A rule that fails to compile is an error; rules are never skipped.
func CompileRules(cfg *config.MaskingConfig) ([]*Rule, error) {
	enabled := cfg.EnabledRules()
	rules := make([]*Rule, 0, len(enabled))
	for _, rc := range enabled {
		rule, err := NewRule(rc, cfg.GazetteerWords(rc.Gazetteer))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// NewRule compiles a single rule. words is only used by gazetteer rules.
func NewRule(rc config.RuleConfig, words []string) (*Rule, error) {
	pattern := rc.Pattern
	if rc.Gazetteer != "" {
		pattern = gazetteerPattern(words)
		if pattern == "" {
			return nil, fmt.Errorf("%w: %s: empty %s list", ErrInvalidRule, rc.Name, rc.Gazetteer)
		}
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: %s: empty pattern", ErrInvalidRule, rc.Name)
	}
	if rc.IgnoreCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRule, rc.Name, err)
	}
	anchored, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRule, rc.Name, err)
	}

	token := rc.MaskToken()
	if token == "" {
		return nil, fmt.Errorf("%w: %s: no mask token", ErrInvalidRule, rc.Name)
	}

	var exclude map[string]bool
	if len(rc.Exclude) > 0 {
		exclude = make(map[string]bool, len(rc.Exclude))
		for _, w := range rc.Exclude {
			exclude[w] = true
		}
	}

	return &Rule{
		Name:        rc.Name,
		Regex:       re,
		Replacement: rc.Replacement,
		Token:       token,
		WordStart:   rc.WordStart,
		WordEnd:     rc.WordEnd,
		Description: rc.Description,
		anchored:    anchored,
		exclude:     exclude,
	}, nil
}

// gazetteerPattern builds a case-preserving alternation from a word list.
// Longer entries come first so "Genel Müdür" wins over "Müdür". Inner
// whitespace matches any run of whitespace, and a trailing period is
// optional ("Prof. Dr." matches "Prof.Dr" and "Prof. Dr.").
func gazetteerPattern(words []string) string {
	entries := slices.Clone(words)
	slices.SortStableFunc(entries, func(a, b string) int {
		return cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a))
	})

	alts := make([]string, 0, len(entries))
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		var b strings.Builder
		for i, f := range fields {
			if i > 0 {
				if strings.HasSuffix(fields[i-1], ".") {
					b.WriteString(`\s*`)
				} else {
					b.WriteString(`\s+`)
				}
			}
			if word, ok := strings.CutSuffix(f, "."); ok {
				b.WriteString(regexp.QuoteMeta(word))
				b.WriteString(`\.?`)
			} else {
				b.WriteString(regexp.QuoteMeta(f))
			}
		}
		alts = append(alts, b.String())
	}
	if len(alts) == 0 {
		return ""
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

// Apply replaces every non-overlapping match in text, scanning left to right.
// It returns the rewritten text and the number of replacements. When ctx is
// done before the scan finishes the input is returned unchanged together with
// an error wrapping ErrRuleTimeout.
func (r *Rule) Apply(ctx context.Context, text string) (string, int, error) {
	var (
		b     strings.Builder
		count int
		last  int
		pos   int
	)
	for pos <= len(text) {
		loc, err := r.find(ctx, text, pos)
		if err != nil {
			return text, 0, fmt.Errorf("%w: %s: %v", ErrRuleTimeout, r.Name, err)
		}
		if loc == nil {
			break
		}
		if count == 0 {
			b.Grow(len(text))
		}
		b.WriteString(text[last:loc[0]])
		b.Write(r.Regex.ExpandString(nil, r.Replacement, text, loc))
		last = loc[1]
		count++
		if loc[1] > loc[0] {
			pos = loc[1]
		} else {
			pos = nextRune(text, loc[1])
		}
	}
	if count == 0 {
		return text, 0, nil
	}
	b.WriteString(text[last:])
	return b.String(), count, nil
}

// Matches reports whether the rule matches anywhere in text.
func (r *Rule) Matches(ctx context.Context, text string) bool {
	loc, err := r.find(ctx, text, 0)
	return err == nil && loc != nil
}

// find returns the submatch index (absolute offsets) of the first acceptable
// match at or after pos, or nil when there is none.
func (r *Rule) find(ctx context.Context, text string, pos int) ([]int, error) {
	for pos <= len(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loc := r.Regex.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return nil, nil
		}
		shift(loc, pos)
		start := loc[0]

		if r.WordStart && !isWordBoundary(text, start) {
			pos = nextRune(text, start)
			continue
		}
		if r.WordEnd && !isWordBoundary(text, loc[1]) {
			var err error
			if loc, err = r.shorten(ctx, text, start, loc[1]); err != nil {
				return nil, err
			}
		}
		if loc != nil && r.excluded(text[loc[0]:loc[1]]) {
			loc = nil
		}
		if loc != nil {
			return loc, nil
		}
		pos = nextRune(text, start)
	}
	return nil, nil
}

// shorten looks for the longest match starting at start that ends before end
// on a word boundary.
func (r *Rule) shorten(ctx context.Context, text string, start, end int) ([]int, error) {
	for k := end - 1; k > start; k-- {
		if !utf8.RuneStart(text[k]) || !isWordBoundary(text, k) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if loc := r.anchored.FindStringSubmatchIndex(text[start:k]); loc != nil {
			shift(loc, start)
			return loc, nil
		}
	}
	return nil, nil
}

func (r *Rule) excluded(match string) bool {
	if r.exclude == nil {
		return false
	}
	for _, w := range strings.Fields(match) {
		if r.exclude[w] {
			return true
		}
	}
	return false
}

func shift(loc []int, by int) {
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += by
		}
	}
}
