package media

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"db3dgallery/internal/models"
)

// BatchResult holds the payloads of a batch decode, in input order with
// skipped files left out, plus the names of the skipped files.
type BatchResult struct {
	Payloads []string
	Skipped  []string
}

// DecodeBatch encodes every upload that is within the image threshold.
// Oversized files are skipped with a diagnostic. The remaining files are
// decoded concurrently (at most limit at a time, 0 = GOMAXPROCS) and the
// payloads come back in input order. If any decode fails the whole batch
// fails and no payloads are returned.
func DecodeBatch(ctx context.Context, uploads []Upload, limit int) (*BatchResult, error) {
	res := &BatchResult{}

	accepted := make([]Upload, 0, len(uploads))
	for _, u := range uploads {
		if models.MediaImage.Oversize(u.Size) {
			slog.Warn("batch file too large, skipping",
				"file", u.Name,
				"size", models.HumanSize(u.Size),
				"threshold", models.HumanSize(models.MediaImage.Threshold()),
			)
			res.Skipped = append(res.Skipped, u.Name)
			continue
		}
		accepted = append(accepted, u)
	}

	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	payloads := make([]string, len(accepted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range accepted {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := Encode(u, models.MediaImage)
			if err != nil {
				return err
			}
			payloads[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Payloads = payloads
	return res, nil
}
