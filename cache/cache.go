// cache.go --  This file is part of the meanfield project.
//
//	meanfield is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

// Package cache provides the keyed store that mean-field Hamiltonians
// use to share intermediate results between energy, Fock and Hessian
// evaluations. Every entry carries a tag that controls its lifetime:
// permanent entries survive Clear, derived entries are dropped whenever
// the density matrices change, and custom tags allow selective
// invalidation of entry groups.
package cache

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Lifetime tags. Any other string is a valid custom tag.
const (
	TagPermanent = "p"
	TagDerived   = "d"
)

type entry struct {
	value any
	tag   string
}

// Cache maps string keys to tagged values. The zero value is not
// usable; construct with New. A Cache is not safe for concurrent use.
type Cache struct {
	entries map[string]entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Contains reports whether key is present.
func (c *Cache) Contains(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Load returns the raw value stored under key.
func (c *Cache) Load(key string) (any, bool) {
	e, ok := c.entries[key]
	return e.value, ok
}

// Store inserts or replaces the value under key with the given tag.
func (c *Cache) Store(key, tag string, value any) {
	c.entries[key] = entry{value: value, tag: tag}
}

// Clear drops every entry except the permanent ones.
func (c *Cache) Clear() {
	for k, e := range c.entries {
		if e.tag != TagPermanent {
			delete(c.entries, k)
		}
	}
}

// ClearTag drops exactly the entries carrying the given tag.
func (c *Cache) ClearTag(tag string) {
	for k, e := range c.entries {
		if e.tag == tag {
			delete(c.entries, k)
		}
	}
}

// ClearItem drops a single entry if present.
func (c *Cache) ClearItem(key string) {
	delete(c.entries, key)
}

// Keys returns all present keys in sorted order.
func (c *Cache) Keys() []string {
	keys := maps.Keys(c.entries)
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int { return len(c.entries) }

// Get returns the value under key if it is present and has type T.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// LoadOrNew returns the value under key, allocating it with alloc when
// absent. The second return value reports whether the entry was newly
// allocated, which is the signal to (re)compute its contents.
func LoadOrNew[T any](c *Cache, key, tag string, alloc func() T) (T, bool) {
	if v, ok := Get[T](c, key); ok {
		return v, false
	}
	v := alloc()
	c.Store(key, tag, v)
	return v, true
}
