package model

import "strings"

// ContextSegment is one text segment in the assembled context.
type ContextSegment struct {
	SourceID   string `json:"source_id"`
	Text       string `json:"text"`
	Summarized bool   `json:"summarized"`
	Tokens     int    `json:"tokens"`
}

// AssembledContext is the ordered, token-bounded bundle of text handed to
// the generation step. TotalTokens never exceeds the configured budget.
type AssembledContext struct {
	Segments    []ContextSegment `json:"segments"`
	TotalTokens int              `json:"total_tokens"`
	SourceIDs   []string         `json:"source_ids"`
}

// Text renders the context as a single string, one segment per block.
func (c *AssembledContext) Text() string {
	var b strings.Builder
	for i, segment := range c.Segments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(segment.Text)
	}
	return b.String()
}

// Empty reports whether the context holds no segments.
func (c *AssembledContext) Empty() bool {
	return len(c.Segments) == 0
}
