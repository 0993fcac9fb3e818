package motif

import (
	"errors"
	"strings"
	"testing"
)

func TestMotifFindExactGap(t *testing.T) {
	m, err := New("test", "AAC", 4, "GGT")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		seq        string
		start, end int
		ok         bool
	}{
		{"AACTTTTGGT", 0, 10, true},
		{"CCAACTTTTGGTCC", 2, 12, true},
		{"AACTTTGGT", 0, 0, false},   // gap 3
		{"AACTTTTTGGT", 0, 0, false}, // gap 5
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := m.Find(tt.seq)
		if ok != tt.ok || start != tt.start || end != tt.end {
			t.Errorf("Find(%q) = %d,%d,%v want %d,%d,%v", tt.seq, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
	if m.Len() != 10 {
		t.Errorf("Len = %d", m.Len())
	}
}

func TestMotifInvalid(t *testing.T) {
	for _, tt := range []struct {
		prefix string
		gap    int
		suffix string
	}{
		{"", 3, "A"},
		{"A", 3, ""},
		{"A", -1, "A"},
		{"A", 1001, "A"},
	} {
		if _, err := New("bad", tt.prefix, tt.gap, tt.suffix); !errors.Is(err, ErrInvalidMotif) {
			t.Errorf("New(%q,%d,%q) err = %v", tt.prefix, tt.gap, tt.suffix, err)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	r, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Promoters) != 2 || r.Promoters[0].Name != AOX1 || r.Promoters[1].Name != GAP {
		t.Fatalf("promoters = %+v", r.Promoters)
	}
	aox1, ok := r.Promoter(AOX1)
	if !ok || aox1.Signature.Gap != 916 {
		t.Fatalf("AOX1 = %+v", aox1)
	}
	seq := "AGATCTAACATC" + strings.Repeat("A", 916) + "TTATTCGAAACG"
	if !aox1.Signature.Match(seq) {
		t.Fatal("AOX1 signature does not match its own construct")
	}
	for _, s := range r.Signals {
		if s.Motif.Len()%3 != 0 {
			t.Errorf("%s signal length %d is not whole codons", s.Name, s.Motif.Len())
		}
	}
	if r.Signals[0].Motif.Len() != 89*3 || r.Signals[1].Motif.Len() != 92*3 {
		t.Errorf("signal lengths %d %d", r.Signals[0].Motif.Len(), r.Signals[1].Motif.Len())
	}
}

func TestRegistryValidate(t *testing.T) {
	var empty *Registry
	if err := empty.Validate(); !errors.Is(err, ErrInvalidMotif) {
		t.Fatalf("nil registry: %v", err)
	}
	if err := (&Registry{}).Validate(); !errors.Is(err, ErrInvalidMotif) {
		t.Fatalf("empty registry: %v", err)
	}
	r, _ := NewDefault()
	broken := &Registry{Promoters: []Promoter{{Name: AOX1, Signature: &Motif{Name: AOX1}}}}
	if err := broken.Validate(); !errors.Is(err, ErrInvalidMotif) {
		t.Fatalf("uncompiled motif: %v", err)
	}
	dup := &Registry{Promoters: []Promoter{r.Promoters[0], r.Promoters[0]}}
	if err := dup.Validate(); !errors.Is(err, ErrInvalidMotif) {
		t.Fatalf("duplicate promoter: %v", err)
	}
}
