package plasmid

import (
	"context"
	"errors"
	"fmt"

	"github.com/liserjrqlxue/pichia/pkg/protein"
	"github.com/liserjrqlxue/pichia/pkg/util"
)

var (
	ErrPromoterNotFound     = errors.New("could not find aox1 or gap promoter")
	ErrCodingRegionNotFound = errors.New("could not find coding sequence")
)

// error kinds as reported per failed source
const (
	KindPromoterNotFound     = "PromoterNotFound"
	KindCodingRegionNotFound = "CodingRegionNotFound"
	KindStartCodonNotFound   = "StartCodonNotFound"
	KindUnknownCodon         = "UnknownCodon"
	KindUnknownResidue       = "UnknownResidue"
	KindCanceled             = "Canceled"
	KindUnknown              = "Unknown"
)

// Error is a record construction failure at one pipeline stage.
type Error struct {
	Source string
	Stage  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind maps err to its kind name.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPromoterNotFound):
		return KindPromoterNotFound
	case errors.Is(err, ErrCodingRegionNotFound):
		return KindCodingRegionNotFound
	case errors.Is(err, util.ErrStartCodonNotFound):
		return KindStartCodonNotFound
	case errors.Is(err, util.ErrUnknownCodon):
		return KindUnknownCodon
	case errors.Is(err, protein.ErrUnknownResidue):
		return KindUnknownResidue
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return KindUnknown
}
