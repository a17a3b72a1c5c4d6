package db

import (
	"context"
	"fmt"
	"math/big"
	"net/netip"
	"time"

	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Result is a query turned into records. Columns keeps the select-list
// order, which a map-backed record cannot.
type Result struct {
	Columns []string
	Records []record.Record
}

// QueryRecords runs a query and collects every row as a record keyed by
// column name.
func (db *DB) QueryRecords(ctx context.Context, sql string, args ...any) (*Result, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer rows.Close()
	return CollectRecords(rows)
}

// CollectRecords drains rows into records. Duplicate column names keep the
// last value, as a JSON object would.
func CollectRecords(rows pgx.Rows) (*Result, error) {
	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = fd.Name
	}

	res := &Result{Columns: columns, Records: []record.Record{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		r := make(record.Record, len(values))
		for i, v := range values {
			r[columns[i]] = Value(v)
		}
		res.Records = append(res.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	return res, nil
}

// Value converts a decoded column value into the plain types records hold:
// strings, int64, float64, bool, time.Time, maps and slices. Integer
// columns stay int64 so bigint ids keep every digit.
func Value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return util.ToValidUTF8(val)
	case []byte:
		return bytesValue(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case float32:
		return float64(val)
	case time.Time:
		return val
	case [16]byte:
		return formatUUID(val)
	case netip.Prefix:
		return val.String()
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Time:
		if !val.Valid {
			return nil
		}
		return time.Time{}.Add(time.Duration(val.Microseconds) * time.Microsecond).Format("15:04:05")
	case pgtype.Interval:
		if !val.Valid {
			return nil
		}
		return fmt.Sprintf("%d months %d days %s", val.Months, val.Days,
			time.Duration(val.Microseconds)*time.Microsecond)
	case *big.Int:
		if val.IsInt64() {
			return val.Int64()
		}
		f, _ := new(big.Float).SetInt(val).Float64()
		return f
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	}
	return v
}

// bytesValue keeps printable byte columns as text.
func bytesValue(b []byte) any {
	for _, c := range b {
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			return fmt.Sprintf("[%d bytes]", len(b))
		}
	}
	return util.ToValidUTF8(string(b))
}

func formatUUID(u [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
