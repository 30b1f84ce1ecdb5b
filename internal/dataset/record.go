package dataset

// Fixed fields every record carries, in export order.
const (
	FieldCode       = "code"
	FieldLocation   = "location"
	FieldRegistered = "registered"
	FieldEnvelopes  = "envelopes"
	FieldValid      = "valid"
)

// FixedFields are the leading columns of every export.
var FixedFields = []string{
	FieldCode,
	FieldLocation,
	FieldRegistered,
	FieldEnvelopes,
	FieldValid,
}

// Record is a flat field -> value mapping that remembers the order in which
// fields were first set. Values are kept as text.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{values: map[string]string{}}
}

// Set stores `value` under `key`, a key that already exists keeps its
// original position.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = map[string]string{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the record's fields in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Merge sets every field of `other` on r, in other's order.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		r.Set(key, other.values[key])
	}
}

// Map returns a copy of the record's values.
func (r *Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
