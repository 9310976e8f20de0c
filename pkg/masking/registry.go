package masking

import (
	"context"
	"fmt"
)

// Registry is an ordered, immutable list of rules identified by name.
type Registry struct {
	rules  []*Rule
	byName map[string]*Rule
}

// NewRegistry builds a registry from rules in application order.
//
// It rejects an empty list, duplicate names, and any ordering where a rule's
// mask token would be matched by a rule applied after it.
func NewRegistry(rules []*Rule) (*Registry, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRegistry
	}

	byName := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		if _, ok := byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name)
		}
		byName[r.Name] = r
	}

	ctx := context.Background()
	for i, r := range rules {
		for _, later := range rules[i+1:] {
			if later.Matches(ctx, r.Token) {
				return nil, fmt.Errorf("%w: token %s of %s matched by %s", ErrTokenRematched, r.Token, r.Name, later.Name)
			}
		}
	}

	return &Registry{
		rules:  append([]*Rule(nil), rules...),
		byName: byName,
	}, nil
}

// Rules returns the rules in application order.
func (r *Registry) Rules() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Get returns the rule with the given name.
func (r *Registry) Get(name string) (*Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// Names returns the rule names in application order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// CheckTokens verifies that no rule matches any of the given tokens. Tokens
// written by stages running before the regex stage must pass this check.
func (r *Registry) CheckTokens(tokens ...string) error {
	ctx := context.Background()
	for _, token := range tokens {
		for _, rule := range r.rules {
			if rule.Matches(ctx, token) {
				return fmt.Errorf("%w: token %s matched by %s", ErrTokenRematched, token, rule.Name)
			}
		}
	}
	return nil
}
