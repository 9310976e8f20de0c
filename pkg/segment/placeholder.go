package segment

import (
	"fmt"
	"strings"
)

// Placeholder keys are wrapped in private-use runes that normalized input
// never contains, so a key cannot be confused with document text.
const (
	openRune  = '\uE000'
	closeRune = '\uE001'
)

const reservedRunes = string(openRune) + string(closeRune)

// placeholders maps protected substrings to unique keys and back.
type placeholders struct {
	keys     map[string]string // original -> key
	pairs    []string          // key, original, ... for strings.NewReplacer
	counters map[string]int
}

func newPlaceholders() *placeholders {
	return &placeholders{
		keys:     make(map[string]string),
		counters: make(map[string]int),
	}
}

// key returns the placeholder for original, allocating one in category on
// first use.
func (p *placeholders) key(category, original string) string {
	if k, ok := p.keys[original]; ok {
		return k
	}
	k := fmt.Sprintf("%c__%s%d__%c", openRune, category, p.counters[category], closeRune)
	p.counters[category]++
	p.keys[original] = k
	p.pairs = append(p.pairs, k, original)
	return k
}

// restorer returns a replacer mapping every key back to its original.
func (p *placeholders) restorer() *strings.Replacer {
	return strings.NewReplacer(p.pairs...)
}
