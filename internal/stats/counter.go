package stats

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Count is one ranked item with its number of occurrences.
type Count struct {
	Item  string `json:"item" yaml:"item"`
	Count int    `json:"count" yaml:"count"`
}

// counter counts strings and remembers the order in which they were first
// seen, so equal counts rank by first occurrence.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(item string) {
	if _, ok := c.counts[item]; !ok {
		c.order = append(c.order, item)
	}
	c.counts[item]++
}

func (c *counter) ranked() []Count {
	out := lo.Map(c.order, func(item string, _ int) Count {
		return Count{Item: item, Count: c.counts[item]}
	})
	slices.SortStableFunc(out, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

func (c *counter) top(n int) []Count {
	if n <= 0 {
		return []Count{}
	}
	out := c.ranked()
	if len(out) > n {
		out = out[:n]
	}
	return out
}
