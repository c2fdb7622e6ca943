package feeds

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RunRound fetches every URL once, in random order, under the
// concurrency gate, and blocks until all fetches (and their cooldowns)
// complete. An empty list returns immediately. The round itself never
// fails: per-URL outcomes are logged by the fetcher and discarded.
func (f *Fetcher) RunRound(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	shuffled := make([]string, len(urls))
	copy(shuffled, urls)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var wg sync.WaitGroup
	for _, url := range shuffled {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			f.Fetch(ctx, u)
		}(url)
	}
	wg.Wait()
}

// Run executes fetch rounds until ctx is cancelled. With loop=false a
// single round runs; with loop=true the next round starts immediately
// after the previous one, with a fresh shuffle each time. No state is
// carried between rounds.
func (f *Fetcher) Run(ctx context.Context, urls []string, loop bool) {
	for {
		start := time.Now()
		f.logger.Info("starting fetch round",
			"feeds", len(urls),
			"max_concurrent", cap(f.slots),
		)

		f.RunRound(ctx, urls)

		f.logger.Info("fetch round complete",
			"feeds", len(urls),
			"elapsed", time.Since(start).Truncate(time.Millisecond),
		)

		if !loop || ctx.Err() != nil {
			return
		}
	}
}
