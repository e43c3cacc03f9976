package analysis

import (
	"regexp"
)

// Redactor scrubs vendor and model names from generated text so the
// response never reveals which backend produced it. Patterns apply to
// every narrative, including the template fallback.
type Redactor struct {
	rules []redactRule
}

type redactRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewRedactor builds a redactor that rewrites the default vendor tokens to
// the given brand name.
func NewRedactor(brand string) *Redactor {
	patterns := []string{
		`(?i)chat\s?gpt`,
		`(?i)gpt-[\w.-]+`,
		`(?i)openai`,
		`(?i)claude(\s\d+(\.\d+)?)?(\s(haiku|sonnet|opus))?`,
		`(?i)anthropic`,
		`(?i)aws bedrock`,
		`(?i)bedrock`,
		`(?i)as an ai( language)? model,?\s*`,
	}

	r := &Redactor{rules: make([]redactRule, 0, len(patterns))}
	for _, p := range patterns {
		r.rules = append(r.rules, redactRule{
			pattern:     regexp.MustCompile(p),
			replacement: brand,
		})
	}
	// The disclaimer phrase is dropped entirely rather than branded.
	r.rules[len(r.rules)-1].replacement = ""
	return r
}

// AddRule appends a custom pattern → replacement pair. Invalid patterns are
// ignored.
func (r *Redactor) AddRule(pattern, replacement string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return
	}
	r.rules = append(r.rules, redactRule{pattern: re, replacement: replacement})
}

// Scrub applies every rule to the text.
func (r *Redactor) Scrub(text string) string {
	for _, rule := range r.rules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
