package texture

import "sync"

// tileBuffers is the per-tile working set: an accumulator cleared between
// pixels and the quantized resident block.
type tileBuffers struct {
	acc  *Cooccurrence
	bins []int32
}

// Pool lets callers reuse tile working sets across scans to reduce GC pressure
// when textures are computed repeatedly, e.g. on consecutive frames.
// A nil *Pool allocates fresh buffers every time.
type Pool struct {
	tiles sync.Pool // *tileBuffers
}

func (p *Pool) get(bins int) *tileBuffers {
	if p != nil {
		if v := p.tiles.Get(); v != nil {
			tb := v.(*tileBuffers)
			if tb.acc.Bins() == bins {
				tb.acc.Reset()
				return tb
			}
		}
	}
	return &tileBuffers{acc: NewCooccurrence(bins)}
}

func (p *Pool) put(tb *tileBuffers) {
	if p == nil || tb == nil {
		return
	}
	p.tiles.Put(tb)
}
