package safety

import (
	"regexp"
	"strings"
)

// Match reports the first blocklist keyword found in a text.
type Match struct {
	Keyword string `json:"keyword"`
}

// QueryVerdict is the result of screening a free-form search query.
type QueryVerdict struct {
	Valid          bool   `json:"valid"`
	Message        string `json:"message,omitempty"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
}

type blockRule struct {
	keyword string
	re      *regexp.Regexp
}

// Filter is a deterministic lexical classifier for kid-facing text. It has no
// error channel: Classify and ValidateQuery always return a value.
//
// Whitelist precedence is global: if any whitelisted phrase appears anywhere
// in the text, the whole text passes, even when a blocklisted keyword is also
// present elsewhere in it. This reproduces the observed source behavior and is
// knowingly exploitable (padding a query with a whitelisted word smuggles a
// blocked term past the filter); do not narrow it without changing callers'
// expectations.
type Filter struct {
	rules     []blockRule
	whitelist []string
}

// New builds a filter from an ordered blocklist and a whitelist. Terms are
// trimmed and lower-cased; empty terms are dropped. Blocklist order is
// priority order: Classify reports the first keyword that matches.
func New(blocklist, whitelist []string) *Filter {
	f := &Filter{}
	for _, kw := range blocklist {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		// Word-boundary anchored, trailing word characters allowed so that
		// simple inflections match too ("kill" catches "killing").
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\w*`)
		f.rules = append(f.rules, blockRule{keyword: kw, re: re})
	}
	for _, w := range whitelist {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		f.whitelist = append(f.whitelist, w)
	}
	return f
}

// Classify returns the first matching blocklist keyword, or nil when the text
// is clean or contains any whitelisted phrase.
func (f *Filter) Classify(text string) *Match {
	lower := strings.ToLower(text)
	for _, w := range f.whitelist {
		if strings.Contains(lower, w) {
			return nil
		}
	}
	for _, r := range f.rules {
		if r.re.MatchString(lower) {
			return &Match{Keyword: r.keyword}
		}
	}
	return nil
}

// Screen classifies several text fields of one item and returns the first
// match across them, in field order.
func (f *Filter) Screen(fields ...string) *Match {
	for _, s := range fields {
		if m := f.Classify(s); m != nil {
			return m
		}
	}
	return nil
}

// ValidateQuery screens a search query before it is sent to the catalog.
func (f *Filter) ValidateQuery(query string) QueryVerdict {
	if strings.TrimSpace(query) == "" {
		return QueryVerdict{Valid: false, Message: "query is empty"}
	}
	if m := f.Classify(query); m != nil {
		return QueryVerdict{
			Valid:          false,
			Message:        "query contains blocked content",
			MatchedKeyword: m.Keyword,
		}
	}
	return QueryVerdict{Valid: true}
}

// DefaultBlocklist is the built-in priority-ordered blocklist. Overridable via
// config.
var DefaultBlocklist = []string{
	"xxx",
	"porn",
	"sex",
	"nude",
	"kill",
	"murder",
	"gun",
	"weapon",
	"drug",
	"blood",
	"gore",
	"violen",
	"suicid",
	"ass",
	"damn",
}

// DefaultWhitelist covers innocuous phrases that would otherwise trip the
// blocklist patterns (the word-boundary rule makes "assassin" match "ass").
var DefaultWhitelist = []string{
	"assassin",
	"assist",
	"sesame street",
	"water gun",
}
