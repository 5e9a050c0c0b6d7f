package directory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"payermatch/internal/core"
)

// MemoryDirectory is an in-memory ContactDirectory that assigns sequential
// identifiers and answers identical field sets with the same identifier.
// Used for dry runs and tests.
type MemoryDirectory struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[string]string
}

// NewMemoryDirectory creates an empty in-memory directory
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		contacts: make(map[string]string),
	}
}

// GetOrCreate returns the identifier recorded for an identical field set, or
// assigns the next free one.
func (d *MemoryDirectory) GetOrCreate(ctx context.Context, fields core.ResolvedFields) (string, error) {
	fp := fingerprint(fields)

	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.contacts[fp]; ok {
		return id, nil
	}

	d.nextID++
	id := strconv.FormatInt(d.nextID, 10)
	d.contacts[fp] = id
	return id, nil
}

// Len returns the number of distinct contacts created so far.
func (d *MemoryDirectory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.contacts)
}

// fingerprint canonicalizes a field set into a stable lookup key.
func fingerprint(fields core.ResolvedFields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
		b.WriteByte('\n')
	}
	return b.String()
}
