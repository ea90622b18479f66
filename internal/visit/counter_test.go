package visit_test

import (
	"sync"
	"testing"

	"github.com/mbellotti/go-visit-counter/internal/visit"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry/implementation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_IncrementTotal(t *testing.T) {
	t.Run("returns the post-increment value", func(t *testing.T) {
		c := visit.NewCounter(implementation.NewRegistryMeter())

		assert.Equal(t, int64(1), c.IncrementTotal())
		assert.Equal(t, int64(2), c.IncrementTotal())
		assert.Equal(t, int64(2), c.Total())
	})

	t.Run("K concurrent increments land at exactly K", func(t *testing.T) {
		c := visit.NewCounter(implementation.NewRegistryMeter())

		const (
			goroutines = 16
			perG       = 250
		)

		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perG; i++ {
					c.IncrementTotal()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(goroutines*perG), c.Total())
	})
}

func TestCounter_IncrementPath(t *testing.T) {
	t.Run("snapshot reflects per-path counts", func(t *testing.T) {
		c := visit.NewCounter(implementation.NewRegistryMeter())

		c.IncrementPath("/")
		c.IncrementPath("/")
		c.IncrementPath("/stats")

		assert.Equal(t, map[string]int64{"/": 2, "/stats": 1}, c.Snapshot())
	})

	t.Run("snapshot is a copy, not a view", func(t *testing.T) {
		c := visit.NewCounter(implementation.NewRegistryMeter())

		c.IncrementPath("/")
		snap := c.Snapshot()
		c.IncrementPath("/")

		assert.Equal(t, int64(1), snap["/"])
	})

	t.Run("total and path counts converge once all requests finish", func(t *testing.T) {
		c := visit.NewCounter(implementation.NewRegistryMeter())

		paths := []string{"/", "/stats", "/metrics", "/traces"}

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					// One logical request: two independently synchronized
					// increments, same as the request handlers issue.
					c.IncrementTotal()
					c.IncrementPath(paths[(g+i)%len(paths)])
				}
			}(g)
		}
		wg.Wait()

		var sum int64
		for _, n := range c.Snapshot() {
			sum += n
		}
		assert.Equal(t, c.Total(), sum)
		assert.Equal(t, int64(8*200), sum)
	})
}

func TestCounter_ExpositionText(t *testing.T) {
	c := visit.NewCounter(implementation.NewRegistryMeter())

	c.IncrementTotal()
	c.IncrementTotal()
	c.IncrementPath("/")
	c.IncrementPath("/stats")
	c.IncrementPath("/stats")

	text := c.ExpositionText()

	require.Contains(t, text, "# HELP visits_total Total number of visits served")
	require.Contains(t, text, "# TYPE visits_total counter")
	assert.Contains(t, text, "visits_total 2")
	assert.Contains(t, text, `path_root_visits{path="/"} 1`)
	assert.Contains(t, text, `path_stats_visits{path="/stats"} 2`)
	assert.Contains(t, text, "\n\n") // blank line between metric blocks
}
