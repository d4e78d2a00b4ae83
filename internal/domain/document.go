package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Document is a single hit returned by the search service. Every field is
// optional on the wire.
type Document struct {
	Title          *string  `json:"title,omitempty"`
	Snippet        *string  `json:"snippet,omitempty"`
	Text           *string  `json:"text,omitempty"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`

	// raw is the JSON the document was decoded from.
	raw json.RawMessage
}

// UnmarshalJSON keeps the original payload next to the decoded fields. A
// bare JSON string is accepted and becomes the document text.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = Document{Text: &s, raw: append(json.RawMessage(nil), trimmed...)}
		return nil
	}
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Document(p)
	d.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// Raw returns the payload the document was decoded from, or its
// re-encoded form for documents built in code.
func (d Document) Raw() json.RawMessage {
	if len(d.raw) > 0 {
		return d.raw
	}
	type plain Document
	data, err := json.Marshal(plain(d))
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// DisplayText prefers the snippet, then the full text.
func (d Document) DisplayText() string {
	if d.Snippet != nil && *d.Snippet != "" {
		return *d.Snippet
	}
	if d.Text != nil && *d.Text != "" {
		return *d.Text
	}
	return ""
}

// DisplayTitle returns the title or a "Document N" label, where position is
// 1-based within the result set.
func (d Document) DisplayTitle(position int) string {
	if d.Title != nil && *d.Title != "" {
		return *d.Title
	}
	return fmt.Sprintf("Document %d", position)
}

// MatchPercent is the relevance score as a rounded percentage, 0 when the
// service did not send one.
func (d Document) MatchPercent() int {
	if d.RelevanceScore == nil {
		return 0
	}
	return int(math.Round(*d.RelevanceScore * 100))
}

// SummaryInput is what gets sent to the summarizer for this document: its
// text, or the raw result when there is no text.
func (d Document) SummaryInput() any {
	if d.Text != nil && *d.Text != "" {
		return *d.Text
	}
	return d.Raw()
}
