package util

import (
	"fmt"
	"strings"
)

// Feature is a located span of a parent sequence, half-open [Start, End).
type Feature struct {
	Name  string
	Start int
	End   int
	Seq   string
}

func NewFeature(name, parent string, start, end int) *Feature {
	return &Feature{
		Name:  name,
		Start: start,
		End:   end,
		Seq:   parent[start:end],
	}
}

func (f *Feature) Len() int {
	return f.End - f.Start
}

func (f *Feature) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d", f.Name, f.Start, f.End, f.Len())
}

// Between returns the span strictly between the first occurrence of left and
// the first occurrence of right that follows it.
func Between(name, seq, left, right string) (*Feature, bool) {
	i := strings.Index(seq, left)
	if i < 0 {
		return nil, false
	}
	start := i + len(left)
	j := strings.Index(seq[start:], right)
	if j < 0 {
		return nil, false
	}
	return NewFeature(name, seq, start, start+j), true
}
