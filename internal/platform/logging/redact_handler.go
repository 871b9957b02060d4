package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists, in lowercase, the HTTP headers that carry
// credentials or session state. The HTTP middleware redacts the same set
// when it logs headers.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
	"set-cookie":    true,
	"x-csrf-token":  true,
}

// redactedFields are attribute keys and struct field names whose values are
// never logged. Email and Webhook cover a logged NotificationConfig.
var redactedFields = []string{
	"password", "secret", "token", "csrf_token",
	"email", "webhook", "Email", "Webhook",
}

var redactedPrefixes = []string{"secret_", "api_key"}

// redactedValues catch sensitive values under keys nobody anticipated, such
// as a backend error echoing a recipient list.
var redactedValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// JWT: three dot-separated segments of at least 10 characters.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
}

// newRedactAttr returns the masq ReplaceAttr used by every handler New builds.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	n := len(SensitiveHeaders) + len(redactedFields) + len(redactedPrefixes) + len(redactedValues)
	opts := make([]masq.Option, 0, n)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range redactedFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range redactedPrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range redactedValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
