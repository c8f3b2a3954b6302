// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches typed commands to intents using keywords and simple
// patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
	field  string // draft field set by IntentSetField rules
	arg    bool   // first capture group is the payload
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regex: regexp.MustCompile(`(?i)^(menu|list|presets|m)$`), intent: domain.IntentShowMenu},
		{regex: regexp.MustCompile(`(?i)^add\s+custom\s+(\d+)$`), intent: domain.IntentAddCustom, arg: true},
		{regex: regexp.MustCompile(`(?i)^(?:add|a)\s+(\d+)$`), intent: domain.IntentAddPreset, arg: true},
		{regex: regexp.MustCompile(`^(\d{1,3})$`), intent: domain.IntentAddPreset, arg: true},
		{regex: regexp.MustCompile(`(?i)^(?:unlist|86)\s+(\d+)$`), intent: domain.IntentUnlist, arg: true},

		// Draft fields keep the value as typed.
		{regex: regexp.MustCompile(`(?i)^(?:name|dish)\s+(.+)$`), intent: domain.IntentSetField, field: domain.FieldDishName},
		{regex: regexp.MustCompile(`(?i)^(?:desc|description)\s+(.+)$`), intent: domain.IntentSetField, field: domain.FieldDescription},
		{regex: regexp.MustCompile(`(?i)^course\s+(.+)$`), intent: domain.IntentSetField, field: domain.FieldCourse},
		{regex: regexp.MustCompile(`(?i)^price\s+(.+)$`), intent: domain.IntentSetField, field: domain.FieldPrice},
		{regex: regexp.MustCompile(`(?i)^(submit|save|commit)$`), intent: domain.IntentSubmitDraft},
		{regex: regexp.MustCompile(`(?i)^(customs|drafts)$`), intent: domain.IntentShowCustoms},

		{regex: regexp.MustCompile(`(?i)^(cart|selection|c)$`), intent: domain.IntentShowCart},
		{regex: regexp.MustCompile(`(?i)^(?:remove|rm|del)\s+(\d+)$`), intent: domain.IntentRemove, arg: true},
		{regex: regexp.MustCompile(`(?i)^(clear|empty)$`), intent: domain.IntentClear},
		{regex: regexp.MustCompile(`(?i)^(unfilter|show all)$`), intent: domain.IntentUnfilter},
		{regex: regexp.MustCompile(`(?i)^(?:filter|find|search)(?:\s+(.*))?$`), intent: domain.IntentFilter},
		{regex: regexp.MustCompile(`(?i)^(total|sum)$`), intent: domain.IntentTotal},

		{regex: regexp.MustCompile(`(?i)^(confirm|order|place order)$`), intent: domain.IntentConfirm},
		{regex: regexp.MustCompile(`(?i)^(purchase|pay|buy)$`), intent: domain.IntentPurchase},
		{regex: regexp.MustCompile(`(?i)^(new|new order|reset)$`), intent: domain.IntentNewOrder},

		{regex: regexp.MustCompile(`(?i)^(quit|exit|q)$`), intent: domain.IntentQuit},
		{regex: regexp.MustCompile(`(?i)^(help|h|\?)$`), intent: domain.IntentHelp},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)

		switch {
		case rule.intent == domain.IntentFilter:
			text, course := splitFilter(m[1])
			return &domain.Intent{Type: domain.IntentFilter, Payload: text, Field: course}, nil
		case rule.intent == domain.IntentSetField:
			return &domain.Intent{Type: rule.intent, Payload: strings.TrimSpace(m[1]), Field: rule.field}, nil
		case rule.arg:
			return &domain.Intent{Type: rule.intent, Payload: m[1]}, nil
		}
		return &domain.Intent{Type: rule.intent}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// splitFilter separates a "course=<c>" token from the free-text query.
func splitFilter(args string) (text, course string) {
	var words []string
	for _, w := range strings.Fields(args) {
		if v, ok := cutPrefixFold(w, "course="); ok {
			course = v
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), course
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
