// Package headers loads rotating header values and hands out one
// header combination per worker.
package headers

import (
	"net/http"
)

// Cycler walks every Spec's value list in lockstep, wrapping each list
// independently. The n-th call to Next yields, for every header, the value at
// line n mod len(values).
type Cycler struct {
	specs []Spec
	pos   []int
}

func NewCycler(specs []Spec) *Cycler {
	return &Cycler{
		specs: specs,
		pos:   make([]int, len(specs)),
	}
}

// Next returns the next combination. It returns false when any header has no
// values at all; that is the only way the sequence ends. With no specs every
// combination is an empty header set.
func (c *Cycler) Next() (http.Header, bool) {
	h := make(http.Header, len(c.specs))

	for i, spec := range c.specs {
		if len(spec.Values) == 0 {
			return nil, false
		}

		h.Add(spec.Name, spec.Values[c.pos[i]])
		c.pos[i] = (c.pos[i] + 1) % len(spec.Values)
	}

	return h, true
}

// Take returns up to n combinations, fewer only if the sequence ends.
func (c *Cycler) Take(n int) []http.Header {
	out := make([]http.Header, 0, n)

	for range n {
		h, ok := c.Next()
		if !ok {
			break
		}

		out = append(out, h)
	}

	return out
}
