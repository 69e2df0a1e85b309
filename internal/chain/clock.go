package chain

import (
	"sync/atomic"
	"time"
)

// Clock reports the current block height.
type Clock interface {
	CurrentHeight() BlockHeight
}

// GenesisClock derives the height from wall time: one block per blockTime
// since genesis. Heights never decrease, even if the wall clock steps back.
type GenesisClock struct {
	genesis   time.Time
	blockTime time.Duration
	now       func() time.Time
	highWater atomic.Uint64
}

// NewGenesisClock returns a clock anchored at genesis. blockTime must be positive.
func NewGenesisClock(genesis time.Time, blockTime time.Duration) *GenesisClock {
	return &GenesisClock{
		genesis:   genesis,
		blockTime: blockTime,
		now:       time.Now,
	}
}

func (c *GenesisClock) CurrentHeight() BlockHeight {
	elapsed := c.now().Sub(c.genesis)
	var h uint64
	if elapsed > 0 {
		h = uint64(elapsed / c.blockTime)
	}
	for {
		prev := c.highWater.Load()
		if h <= prev {
			return BlockHeight(prev)
		}
		if c.highWater.CompareAndSwap(prev, h) {
			return BlockHeight(h)
		}
	}
}

// ManualClock is a Clock whose height is set explicitly.
type ManualClock struct {
	height atomic.Uint64
}

func NewManualClock(h BlockHeight) *ManualClock {
	c := &ManualClock{}
	c.height.Store(uint64(h))
	return c
}

func (c *ManualClock) CurrentHeight() BlockHeight { return BlockHeight(c.height.Load()) }

func (c *ManualClock) Set(h BlockHeight) { c.height.Store(uint64(h)) }

// Advance moves the clock forward by n blocks and returns the new height.
func (c *ManualClock) Advance(n uint64) BlockHeight {
	return BlockHeight(c.height.Add(n))
}
