package logging

import "regexp"

const redacted = "[REDACTED]"

// rule pairs a pattern with its replacement. Key-value patterns capture the
// key so the log line stays diagnosable; only the secret itself is replaced.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// Sanitizer redacts credentials before they reach a log sink. Check
// parameters routinely carry service passwords, and daemon NDJSON logs may
// be shipped off-host, so redaction happens at the handler, not at call
// sites.
type Sanitizer struct {
	rules []rule
}

// NewSanitizer creates a sanitizer with the default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{rules: defaultRules()}
}

func defaultRules() []rule {
	keep := func(pattern string) rule {
		return rule{re: regexp.MustCompile(pattern), repl: "${1}" + redacted}
	}
	drop := func(pattern string) rule {
		return rule{re: regexp.MustCompile(pattern), repl: redacted}
	}

	return []rule{
		// Explicit password/secret/token material in key-value form
		keep(`(?i)(password["'\s:=]+)[^\s"']{4,}`),
		keep(`(?i)(passwd["'\s:=]+)[^\s"']{4,}`),
		keep(`(?i)(secret["'\s:=]+)[a-zA-Z0-9_-]{8,}`),
		keep(`(?i)(token["'\s:=]+)[a-zA-Z0-9._-]{16,}`),
		// Bearer headers captured from HTTP probes
		keep(`(?i)(bearer\s+)[a-zA-Z0-9._-]{16,}`),
		// Private key blocks captured from config files
		drop(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
		// Basic-auth URLs
		drop(`://[^/\s:]+:[^/\s@]+@`),
	}
}

// Sanitize redacts sensitive spans from input.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, r := range s.rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// AddPattern adds a custom redaction pattern. The whole match is replaced.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.rules = append(s.rules, rule{re: re, repl: redacted})
	return nil
}
