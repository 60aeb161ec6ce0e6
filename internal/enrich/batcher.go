package enrich

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

// DelayRange bounds the randomized pause between batches.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

type Options struct {
	BatchSize int
	Delay     DelayRange

	// Sleep is swappable in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// Run classifies items in consecutive groups of BatchSize (the final group may
// be smaller), pausing for a uniform random duration in Delay after every
// group except the last. The pause is the sole throttling mechanism and is
// taken unconditionally, not only on rate-limit responses.
//
// Per record: whitespace-only text skips the capability entirely and takes
// fallback(nil); a capability error takes fallback(err) and never aborts the
// batch. Results are index-aligned with items and always carry the full
// schema.
func Run[T, R any](
	ctx context.Context,
	items []T,
	opts Options,
	text func(T) string,
	classify func(context.Context, string) (R, error),
	fallback func(error) R,
) []R {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	results := make([]R, len(items))
	for start := 0; start < len(items); start += opts.BatchSize {
		end := min(start+opts.BatchSize, len(items))

		for i := start; i < end; i++ {
			msg := text(items[i])
			if strings.TrimSpace(msg) == "" {
				results[i] = fallback(nil)
				continue
			}

			r, err := classify(ctx, msg)
			if err != nil {
				slog.WarnContext(ctx, "enrichment failed, substituting defaults", "index", i, "error", err)
				results[i] = fallback(err)
				continue
			}
			results[i] = r
		}

		if end < len(items) {
			sleep(jitter(opts.Delay))
		}
	}
	return results
}

func jitter(d DelayRange) time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.N(d.Max-d.Min)
}
