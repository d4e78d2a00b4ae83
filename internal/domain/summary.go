package domain

import "fmt"

// SummaryLength is forwarded verbatim to the summarize endpoint.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

var summaryLengths = []SummaryLength{SummaryShort, SummaryMedium, SummaryLong}

// ParseSummaryLength validates s against the known lengths.
func ParseSummaryLength(s string) (SummaryLength, error) {
	for _, l := range summaryLengths {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown summary length %q (valid: short, medium, long)", s)
}

// Next cycles short -> medium -> long -> short. Unknown values go to medium.
func (l SummaryLength) Next() SummaryLength {
	for i, v := range summaryLengths {
		if v == l {
			return summaryLengths[(i+1)%len(summaryLengths)]
		}
	}
	return SummaryMedium
}
