package dataset

// ZeroValue fills fields a locality did not report.
const ZeroValue = "0"

// Normalize gives every record the same field set: the union of all fields
// seen across `records`. A field a record lacks is appended to it with
// ZeroValue. Union order is first-seen order, so records that started out
// with the same layout end up with the same layout.
//
// Records are modified in place and the same slice is returned.
func Normalize(records []*Record) []*Record {
	if len(records) == 0 {
		return records
	}

	seen := map[string]struct{}{}
	var union []string
	for _, r := range records {
		for _, key := range r.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			union = append(union, key)
		}
	}

	for _, r := range records {
		for _, key := range union {
			if !r.Has(key) {
				r.Set(key, ZeroValue)
			}
		}
	}
	return records
}

// Columns is the export layout: FixedFields first, then every other field of
// the first record in its insertion order. Callers normalize first so the
// first record is representative of every row.
func Columns(records []*Record) []string {
	columns := make([]string, 0, len(FixedFields))
	columns = append(columns, FixedFields...)
	if len(records) == 0 {
		return columns
	}

	fixed := map[string]struct{}{}
	for _, f := range FixedFields {
		fixed[f] = struct{}{}
	}
	for _, key := range records[0].keys {
		if _, ok := fixed[key]; ok {
			continue
		}
		columns = append(columns, key)
	}
	return columns
}

// Row renders `r` along `columns`, a missing field renders as "".
func (r *Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = r.values[col]
	}
	return row
}
