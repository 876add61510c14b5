package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/pageza/recipe-discovery/backend/internal/llm"
)

// complete runs one model call and records its outcome.
func complete(ctx context.Context, provider llm.Provider, purpose, system, user string) (string, error) {
	start := time.Now()
	text, err := provider.Complete(ctx, system, user)
	llmCallDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	llmCallsTotal.WithLabelValues(purpose, outcome).Inc()
	return text, err
}

// stripCodeFence removes a surrounding Markdown code fence such as
// ```json ... ``` from model output.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")

	// Drop the info string (e.g., "json") before the payload, with or
	// without a newline after it
	if i := strings.IndexAny(s, "{["); i > 0 && isInfoString(s[:i]) {
		s = s[i:]
	}
	return strings.TrimSpace(s)
}

func isInfoString(s string) bool {
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
