package source

import (
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/util"
)

// AssignIDs gives every record without an identity a fresh ULID so it can
// be expanded. Records carrying a creation date get an id from that time,
// keeping id order close to creation order. Records are copied before they
// are changed; the returned count is how many got a new id.
func AssignIDs(records []record.Record, dateField string) ([]record.Record, int) {
	out := make([]record.Record, len(records))
	assigned := 0
	for i, r := range records {
		if _, ok := r.ID(); ok {
			out[i] = r
			continue
		}
		c := make(record.Record, len(r)+1)
		for k, v := range r {
			c[k] = v
		}
		if t, ok := r.Time(dateField); ok && dateField != "" {
			c[record.IDField] = util.NewULIDWithTime(t)
		} else {
			c[record.IDField] = util.NewULID()
		}
		out[i] = c
		assigned++
	}
	return out, assigned
}
