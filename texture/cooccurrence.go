package texture

import "slices"

// Entry is one occurring cell of a normalized co-occurrence distribution.
type Entry struct {
	I, J int
	// G is freq(I, J) / total.
	G float64
}

// Marginal is the normalized row sum of one occurring bin.
type Marginal struct {
	Bin int
	Sum float64
}

// Cooccurrence is a sparse, always-symmetric gray-level co-occurrence
// accumulator. Only occurring bin pairs are stored, so memory and iteration
// cost follow the number of distinct pairs rather than bins².
//
// Every read accessor visits cells in ascending (i, j) order so that sums
// built from it are reproducible bit for bit.
//
// A Cooccurrence is not safe for concurrent use; the dispatcher gives each tile
// its own instance.
type Cooccurrence struct {
	bins  int
	freq  map[int]int
	total int

	keys      []int
	entries   []Entry
	marginals []Marginal
	// fresh is set while entries reflects the current frequencies.
	fresh bool
}

// NewCooccurrence returns an empty accumulator for the given bin count.
func NewCooccurrence(bins int) *Cooccurrence {
	return &Cooccurrence{
		bins: bins,
		freq: make(map[int]int),
	}
}

// Bins returns the number of bins per axis.
func (c *Cooccurrence) Bins() int { return c.bins }

// Reset clears all frequencies. Capacity is kept for reuse.
func (c *Cooccurrence) Reset() {
	clear(c.freq)
	c.total = 0
	c.fresh = false
}

// Insert records one directed pixel pair together with its mirror:
// freq(i, j) and freq(j, i) each grow by one and the total by two.
func (c *Cooccurrence) Insert(i, j int) {
	c.freq[i*c.bins+j]++
	c.freq[j*c.bins+i]++
	c.total += 2
	c.fresh = false
}

// Remove undoes one Insert(i, j). Cells that drop to zero are forgotten.
// Removing a pair that was never inserted is a no-op.
func (c *Cooccurrence) Remove(i, j int) {
	a, b := i*c.bins+j, j*c.bins+i
	if c.freq[a] == 0 || c.freq[b] == 0 {
		return
	}
	c.decrement(a)
	c.decrement(b)
	c.total -= 2
	c.fresh = false
}

func (c *Cooccurrence) decrement(key int) {
	if n := c.freq[key] - 1; n > 0 {
		c.freq[key] = n
	} else {
		delete(c.freq, key)
	}
}

// Frequency returns freq(i, j).
func (c *Cooccurrence) Frequency(i, j int) int { return c.freq[i*c.bins+j] }

// Total returns the sum of all frequencies.
func (c *Cooccurrence) Total() int { return c.total }

// Len returns the number of occurring (i, j) cells.
func (c *Cooccurrence) Len() int { return len(c.freq) }

// Empty reports whether no pair has been recorded.
func (c *Cooccurrence) Empty() bool { return c.total == 0 }

// sortedKeys refreshes the key scratch buffer in ascending order.
func (c *Cooccurrence) sortedKeys() []int {
	c.keys = c.keys[:0]
	for k := range c.freq {
		c.keys = append(c.keys, k)
	}
	slices.Sort(c.keys)
	return c.keys
}

// Normalized returns the occurring cells with g(i, j) = freq(i, j) / total,
// sorted by (i, j). The slice is owned by the accumulator and stays valid until
// the next mutation. It is empty when the accumulator is.
func (c *Cooccurrence) Normalized() []Entry {
	if c.fresh {
		return c.entries
	}
	c.entries = c.entries[:0]
	if c.total > 0 {
		total := float64(c.total)
		for _, k := range c.sortedKeys() {
			c.entries = append(c.entries, Entry{
				I: k / c.bins,
				J: k % c.bins,
				G: float64(c.freq[k]) / total,
			})
		}
	}
	c.fresh = true
	return c.entries
}

// MarginalRowSums returns, for every occurring bin k, sum_j g(k, j), sorted by
// bin. The slice is reused by the next call.
func (c *Cooccurrence) MarginalRowSums() []Marginal {
	c.marginals = c.marginals[:0]
	for _, e := range c.Normalized() {
		if n := len(c.marginals); n > 0 && c.marginals[n-1].Bin == e.I {
			c.marginals[n-1].Sum += e.G
			continue
		}
		c.marginals = append(c.marginals, Marginal{Bin: e.I, Sum: e.G})
	}
	return c.marginals
}
