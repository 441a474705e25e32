package simydb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
)

// Row is one result record: an ordered mapping from column name to value.
// Column order follows the result cursor, not lexical order.
type Row struct {
	columns []string
	values  map[string]any
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the value for column and whether the column is present.
func (r Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value for column, or nil when absent.
func (r Row) Value(column string) any {
	return r.values[column]
}

// Map returns the row as a plain map. The map is a copy; mutating it does not
// affect the row.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// scanRows drains a result cursor into memory. TEXT and BLOB values arrive
// from the driver as []byte and are converted to string so rows are directly
// printable and JSON-encodable.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := Row{
			columns: columns,
			values:  make(map[string]any, len(columns)),
		}
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row.values[col] = string(b)
			} else {
				row.values[col] = values[i]
			}
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// rowsInto maps rows onto dest, which must be a pointer to a slice of structs
// or maps. Struct mapping goes through JSON field tags; it is a presentation
// transform only, the underlying data stays column/value pairs.
func rowsInto(rows []Row, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to a slice")
	}

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()

	for _, row := range rows {
		var elem reflect.Value
		if elemType.Kind() == reflect.Map {
			elem = reflect.ValueOf(row.Map())
		} else {
			elem = reflect.New(elemType).Elem()
			jsonData, err := json.Marshal(row.values)
			if err != nil {
				return fmt.Errorf("failed to marshal row: %w", err)
			}
			if err := json.Unmarshal(jsonData, elem.Addr().Interface()); err != nil {
				return fmt.Errorf("failed to unmarshal into struct: %w", err)
			}
		}
		sliceValue.Set(reflect.Append(sliceValue, elem))
	}

	return nil
}
