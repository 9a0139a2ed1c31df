package openai

import (
	"fmt"
	"strings"
)

// Message is one chat message sent to the provider.
type Message struct {
	Role    string
	Content string
}

const reviewSystemPrompt = `You are a senior software engineer reviewing code. ` +
	`Report only concrete defects: bugs, security flaws, data races, resource leaks, crashes. ` +
	`Do not restate code, do not praise, do not give generic style or documentation advice. ` +
	`Respond with a JSON object with exactly these keys: "Critical", "High", "Medium", "Low". ` +
	`Each key maps to an array of strings. Each string is one finding: a short sentence naming ` +
	`the defect, followed by a sentence with the concrete fix. Order findings by importance. ` +
	`Use an empty array for buckets with no findings.`

const rewriteSystemPrompt = `You are a senior software engineer. Rewrite the given code to fix ` +
	`its defects while preserving behavior and public interfaces. Respond with the complete ` +
	`rewritten source only, inside a single fenced code block. No explanation before or after.`

// BuildReviewPrompt builds the chat messages for a review call.
func BuildReviewPrompt(language, code string) []Message {
	return []Message{
		{Role: "system", Content: reviewSystemPrompt},
		{Role: "user", Content: userContent(language, code)},
	}
}

// BuildRewritePrompt builds the chat messages for a rewrite call.
func BuildRewritePrompt(language, code string) []Message {
	return []Message{
		{Role: "system", Content: rewriteSystemPrompt},
		{Role: "user", Content: userContent(language, code)},
	}
}

func userContent(language, code string) string {
	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = "unknown language"
	}
	return fmt.Sprintf("Language: %s\n\nCode:\n%s", lang, code)
}
