package implementation

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// series holds the accumulator for one distinct label set.
type series struct {
	labels []telemetry.Label // sorted by key
	value  int64
}

type metric struct {
	name string
	help string

	mu     sync.Mutex
	series map[string]*series
}

func newMetric(name, help string) *metric {
	return &metric{
		name:   name,
		help:   help,
		series: make(map[string]*series),
	}
}

// canonicalLabels sorts the label set by key and derives the series key from
// the sorted pairs with both key and value quoted. Quoting keeps two
// logically distinct label sets from ever mapping to the same series, no
// matter what separator-like characters the labels contain.
func canonicalLabels(labels []telemetry.Label) ([]telemetry.Label, string) {
	sorted := make([]telemetry.Label, len(labels))
	copy(sorted, labels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	for _, l := range sorted {
		b.WriteString(strconv.Quote(l.Key))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(l.Value))
		b.WriteByte(',')
	}
	return sorted, b.String()
}

func (m *metric) Add(delta int64, labels ...telemetry.Label) {
	sorted, key := canonicalLabels(labels)

	m.mu.Lock()
	s, ok := m.series[key]
	if !ok {
		s = &series{labels: sorted}
		m.series[key] = s
	}
	s.value += delta
	m.mu.Unlock()
}

func (m *metric) Expose() string {
	var b strings.Builder
	m.writeTo(&b)
	return b.String()
}

func (m *metric) writeTo(b *strings.Builder) {
	b.WriteString("# HELP ")
	b.WriteString(m.name)
	b.WriteByte(' ')
	b.WriteString(m.help)
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(m.name)
	b.WriteString(" counter\n")

	m.mu.Lock()
	keys := make([]string, 0, len(m.series))
	for k := range m.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s := m.series[k]
		b.WriteString(m.name)
		if len(s.labels) > 0 {
			b.WriteByte('{')
			for i, l := range s.labels {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(l.Key)
				b.WriteString(`="`)
				b.WriteString(escapeLabelValue(l.Value))
				b.WriteByte('"')
			}
			b.WriteByte('}')
		}
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(s.value, 10))
		b.WriteByte('\n')
	}
	m.mu.Unlock()
}

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

func escapeLabelValue(v string) string {
	return labelValueEscaper.Replace(v)
}
