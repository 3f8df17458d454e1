package domain

// ValueCache holds the last known value of every observed field. The old
// value of a field's next change record is read from here.
type ValueCache struct {
	values map[string]string
}

// NewValueCache creates an empty ValueCache.
func NewValueCache() *ValueCache {
	return &ValueCache{
		values: make(map[string]string),
	}
}

// Seed records the value of a field only if it has none yet.
func (vc *ValueCache) Seed(fieldID, value string) {
	if _, ok := vc.values[fieldID]; ok {
		return
	}
	vc.values[fieldID] = value
}

// Set overwrites the last known value of a field.
func (vc *ValueCache) Set(fieldID, value string) {
	vc.values[fieldID] = value
}

// Get returns the last known value of a field.
func (vc *ValueCache) Get(fieldID string) (string, bool) {
	v, ok := vc.values[fieldID]
	return v, ok
}

// Reset removes every cached value.
func (vc *ValueCache) Reset() {
	vc.values = make(map[string]string)
}

// Len returns the number of cached fields.
func (vc *ValueCache) Len() int {
	return len(vc.values)
}

// Retain forgets every field for which keep returns false.
func (vc *ValueCache) Retain(keep func(fieldID string) bool) {
	for id := range vc.values {
		if !keep(id) {
			delete(vc.values, id)
		}
	}
}
