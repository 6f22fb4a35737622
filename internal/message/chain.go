package message

import "strings"

// Chain is an ordered message chain as carried in the "messageChain" field.
type Chain []Segment

// NewChain builds a chain from the given segments.
func NewChain(segments ...Segment) Chain {
	return Chain(segments)
}

// Text builds a chain containing a single plain-text segment.
func Text(text string) Chain {
	return Chain{Plain(text)}
}

// String concatenates the readable form of every segment, skipping the
// metadata-only Source segment.
func (c Chain) String() string {
	var b strings.Builder
	for _, s := range c {
		if s.Type == TypeSource {
			continue
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Has reports whether the chain contains a segment of the given type.
func (c Chain) Has(segType string) bool {
	for _, s := range c {
		if s.Type == segType {
			return true
		}
	}
	return false
}

// First returns the first segment of the given type.
func (c Chain) First(segType string) (Segment, bool) {
	for _, s := range c {
		if s.Type == segType {
			return s, true
		}
	}
	return Segment{}, false
}

// Exclude returns a copy of the chain with all segments of the given types
// removed. The receiver is left untouched.
func (c Chain) Exclude(segTypes ...string) Chain {
	drop := make(map[string]struct{}, len(segTypes))
	for _, t := range segTypes {
		drop[t] = struct{}{}
	}
	out := make(Chain, 0, len(c))
	for _, s := range c {
		if _, ok := drop[s.Type]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// Append returns the chain with the segments added at the end.
func (c Chain) Append(segments ...Segment) Chain {
	return append(c, segments...)
}

// SourceID returns the message id recorded in the chain's Source segment,
// or 0 if the chain has none (outbound chains never do).
func (c Chain) SourceID() int64 {
	if s, ok := c.First(TypeSource); ok {
		return s.ID
	}
	return 0
}

// SourceTime returns the unix timestamp recorded in the chain's Source
// segment, or 0 if absent.
func (c Chain) SourceTime() int64 {
	if s, ok := c.First(TypeSource); ok {
		return s.Time
	}
	return 0
}

// Sendable returns the chain with Source and Quote metadata stripped, the
// form accepted by the send-message operations.
func (c Chain) Sendable() Chain {
	return c.Exclude(TypeSource, TypeQuote)
}
