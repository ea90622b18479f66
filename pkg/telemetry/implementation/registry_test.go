package implementation_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry/implementation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_Expose(t *testing.T) {
	t.Run("unlabeled counter emits the bare form", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		c := meter.Counter("c", telemetry.MetricOpt{Help: "d"})

		c.Add(5)

		assert.Equal(t, "# HELP c d\n# TYPE c counter\nc 5\n", c.Expose())
	})

	t.Run("labeled series are sorted by canonical key", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		p := meter.Counter("p", telemetry.MetricOpt{Help: "per path visits"})

		p.Add(1, telemetry.Label{Key: "path", Value: "/"})
		p.Add(1, telemetry.Label{Key: "path", Value: "/"})
		p.Add(1, telemetry.Label{Key: "path", Value: "/stats"})

		text := p.Expose()
		require.Equal(t,
			"# HELP p per path visits\n"+
				"# TYPE p counter\n"+
				`p{path="/"} 2`+"\n"+
				`p{path="/stats"} 1`+"\n",
			text)
	})

	t.Run("label keys within a line are alphabetical regardless of call order", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		c := meter.Counter("http_requests", telemetry.MetricOpt{Help: "requests"})

		c.Add(1, telemetry.Label{Key: "status", Value: "200"}, telemetry.Label{Key: "method", Value: "GET"})
		c.Add(2, telemetry.Label{Key: "method", Value: "GET"}, telemetry.Label{Key: "status", Value: "200"})

		assert.Contains(t, c.Expose(), `http_requests{method="GET",status="200"} 3`)
	})

	t.Run("separator-like characters in labels do not collide series", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		c := meter.Counter("tricky", telemetry.MetricOpt{Help: "tricky"})

		// Under naive key concatenation both of these would render as
		// "a:1;b:2;" and share one accumulator.
		c.Add(1, telemetry.Label{Key: "a", Value: "1;b:2"})
		c.Add(1, telemetry.Label{Key: "a", Value: "1"}, telemetry.Label{Key: "b", Value: "2"})

		text := c.Expose()
		assert.Contains(t, text, `tricky{a="1;b:2"} 1`)
		assert.Contains(t, text, `tricky{a="1",b="2"} 1`)
	})

	t.Run("label values are escaped in the exposition", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		c := meter.Counter("esc", telemetry.MetricOpt{Help: "escaping"})

		c.Add(1, telemetry.Label{Key: "q", Value: `say "hi"`})

		assert.Contains(t, c.Expose(), `esc{q="say \"hi\""} 1`)
	})
}

func TestCounter_ConcurrentAdd(t *testing.T) {
	meter := implementation.NewRegistryMeter()
	c := meter.Counter("concurrent_total", telemetry.MetricOpt{Help: "sum"})

	const (
		goroutines = 16
		perG       = 500
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				c.Add(1)
				c.Add(2, telemetry.Label{Key: "shard", Value: fmt.Sprintf("%d", g%4)})
			}
		}(g)
	}
	wg.Wait()

	text := c.Expose()
	assert.Contains(t, text, fmt.Sprintf("concurrent_total %d", goroutines*perG))
	for shard := 0; shard < 4; shard++ {
		// 4 goroutines feed each shard, 2 per iteration.
		want := fmt.Sprintf(`concurrent_total{shard="%d"} %d`, shard, goroutines/4*perG*2)
		assert.Contains(t, text, want)
	}
}

func TestRegistryMeter_Counter(t *testing.T) {
	t.Run("same name returns the same metric", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()

		a := meter.Counter("x", telemetry.MetricOpt{Help: "d1"})
		b := meter.Counter("x", telemetry.MetricOpt{Help: "d2"})

		a.Add(1)
		b.Add(1)

		assert.Contains(t, a.Expose(), "x 2")
	})

	t.Run("first help text wins", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()

		meter.Counter("x", telemetry.MetricOpt{Help: "d1"})
		c := meter.Counter("x", telemetry.MetricOpt{Help: "d2"})

		assert.Contains(t, c.Expose(), "# HELP x d1\n")
	})

	t.Run("concurrent registration yields exactly one metric", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()

		var wg sync.WaitGroup
		for g := 0; g < 32; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				c := meter.Counter("x", telemetry.MetricOpt{Help: fmt.Sprintf("d%d", g)})
				c.Add(1)
			}(g)
		}
		wg.Wait()

		text := meter.Expose()
		assert.Equal(t, 1, strings.Count(text, "# HELP x "))
		assert.Contains(t, text, "x 32")
	})
}

func TestRegistryMeter_Expose(t *testing.T) {
	t.Run("metrics are ordered by name and separated by a blank line", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()

		meter.Counter("zeta", telemetry.MetricOpt{Help: "last"}).Add(1)
		meter.Counter("alpha", telemetry.MetricOpt{Help: "first"}).Add(2)

		assert.Equal(t,
			"# HELP alpha first\n# TYPE alpha counter\nalpha 2\n"+
				"\n"+
				"# HELP zeta last\n# TYPE zeta counter\nzeta 1\n",
			meter.Expose())
	})

	t.Run("empty registry exposes nothing", func(t *testing.T) {
		meter := implementation.NewRegistryMeter()
		assert.Empty(t, meter.Expose())
	})
}
