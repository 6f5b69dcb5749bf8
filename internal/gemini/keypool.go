package gemini

import (
	"strings"
	"sync/atomic"
)

// KeyPool rotates API keys round-robin. One pool is owned per process and is
// safe under concurrent builds; the counter advance is atomic.
type KeyPool struct {
	keys []string
	next atomic.Uint64
}

// NewKeyPool builds a pool from a comma-separated key list. Returns nil when
// no usable keys remain after trimming.
func NewKeyPool(raw string) *KeyPool {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return &KeyPool{keys: keys}
}

func (p *KeyPool) Next() string {
	n := p.next.Add(1) - 1
	return p.keys[n%uint64(len(p.keys))]
}

func (p *KeyPool) Size() int { return len(p.keys) }
