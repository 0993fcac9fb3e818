package batch

import (
	"context"
	"log/slog"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

// Searcher finds homologs of a protein sequence, best hit first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]plasmid.Homolog, error)
}

// Annotate attaches up to maxHits homologs to every record with a non-empty
// mature chain. Searches run one after another; a failed search is logged and
// kept on its record. Only context cancellation stops the loop.
func Annotate(ctx context.Context, s Searcher, b *Batch, maxHits int, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	for _, r := range b.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Mature == "" {
			continue
		}
		hits, err := s.Search(ctx, r.Mature)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("homology search", "source", r.Source, "err", err)
			r.HomologsError = err.Error()
			continue
		}
		if maxHits > 0 && len(hits) > maxHits {
			hits = hits[:maxHits]
		}
		r.Homologs = hits
		log.Debug("homology search", "source", r.Source, "hits", len(hits))
	}
	return nil
}
