package completion

import (
	"context"
	"strings"
)

// SummaryStyle selects the register a summary is written in.
type SummaryStyle string

const (
	StyleConcise      SummaryStyle = "concise"
	StyleDetailed     SummaryStyle = "detailed"
	StyleBulletPoints SummaryStyle = "bullet_points"
)

var stylePrompts = map[SummaryStyle]string{
	StyleConcise:      "Provide a brief, concise summary of the following text in 2-3 sentences:",
	StyleDetailed:     "Provide a comprehensive summary of the following text, covering all key points:",
	StyleBulletPoints: "Summarize the following text as bullet points highlighting the key information:",
}

// Audience selects who an explanation is written for.
type Audience string

const (
	AudienceGeneral   Audience = "general"
	AudienceTechnical Audience = "technical"
	AudienceBeginner  Audience = "beginner"
)

var audiencePrompts = map[Audience]string{
	AudienceGeneral:   "Explain the following in simple, everyday language:",
	AudienceTechnical: "Provide a technical explanation of the following:",
	AudienceBeginner:  "Explain the following as if teaching a complete beginner:",
}

const (
	summarySystemMessage = "You are an expert summarizer. Create clear and accurate summaries."
	explainSystemMessage = "You are a skilled teacher who explains complex topics clearly."
)

// Summarize generates a summary of text. Unknown styles fall back to
// the concise style.
func (c *Client) Summarize(ctx context.Context, text string, style SummaryStyle) (*Result, error) {
	return c.Complete(ctx, Request{
		Prompt: summaryPrompt(text, style),
		System: summarySystemMessage,
	})
}

// Explain rewrites text for the given audience. Unknown audiences fall
// back to the general audience.
func (c *Client) Explain(ctx context.Context, text string, audience Audience) (*Result, error) {
	return c.Complete(ctx, Request{
		Prompt: explainPrompt(text, audience),
		System: explainSystemMessage,
	})
}

func summaryPrompt(text string, style SummaryStyle) string {
	prefix, ok := stylePrompts[style]
	if !ok {
		prefix = stylePrompts[StyleConcise]
	}
	return prefix + "\n\n" + text
}

func explainPrompt(text string, audience Audience) string {
	prefix, ok := audiencePrompts[audience]
	if !ok {
		prefix = audiencePrompts[AudienceGeneral]
	}
	return prefix + "\n\n" + text
}

// AnalysisPrompt builds the prompt for free-form document analysis. A
// custom instruction is prepended to the document body; without one a
// generic analyze-and-summarize instruction is used.
func AnalysisPrompt(custom, text string) string {
	custom = strings.TrimSpace(custom)
	if custom != "" {
		return custom + "\n\nDocument content:\n" + text
	}
	return "Analyze and summarize the following document:\n\n" + text
}
