// Package grid holds the per-cell record of what a render layer last drew.
package grid

import "github.com/odvcencio/furry-term/cell"

// Cache is a dense column/row store of the last drawn cell content.
//
// A slot is either known (holds the content last passed to the drawing
// surface) or unknown, in which case the next comparison must treat the
// cell as changed. Cache is not safe for concurrent use.
type Cache struct {
	cells []cell.Content
	cols  int
	rows  int

	// A slot is known when its stamp equals gen. Clear bumps gen instead
	// of touching every slot.
	stamp []uint32
	gen   uint32
}

// New returns an empty, zero-sized cache.
func New() *Cache {
	return &Cache{gen: 1}
}

// Size returns the cache dimensions.
func (c *Cache) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Resize reallocates the cache for the given dimensions.
// All previously recorded content is discarded, even when the size is
// unchanged. Negative dimensions are treated as zero.
func (c *Cache) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	total := cols * rows
	c.cells = make([]cell.Content, total)
	c.stamp = make([]uint32, total)
	c.gen = 1
	c.cols = cols
	c.rows = rows
}

// Clear marks every slot unknown without changing dimensions.
func (c *Cache) Clear() {
	c.gen++
	if c.gen == 0 {
		clear(c.stamp)
		c.gen = 1
	}
}

// Get returns the content recorded at (col, row) and whether the slot is
// known. Indices must lie within the last Resize bounds.
func (c *Cache) Get(col, row int) (cell.Content, bool) {
	idx := c.index(col, row)
	if c.stamp[idx] != c.gen {
		return cell.Content{}, false
	}
	return c.cells[idx], true
}

// Set records content drawn at (col, row).
func (c *Cache) Set(col, row int, content cell.Content) {
	idx := c.index(col, row)
	c.cells[idx] = content
	c.stamp[idx] = c.gen
}

// Invalidate marks a single slot unknown.
func (c *Cache) Invalidate(col, row int) {
	c.stamp[c.index(col, row)] = 0
}

// Known returns the number of slots holding recorded content.
func (c *Cache) Known() int {
	n := 0
	for _, s := range c.stamp {
		if s == c.gen {
			n++
		}
	}
	return n
}

func (c *Cache) index(col, row int) int {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		panic("grid: cell index out of range")
	}
	return row*c.cols + col
}
