// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/aclements/go-gg/table"
)

// IsNull reports whether v represents a missing value: nil or a NaN
// float.
func IsNull(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}

// Float coerces v to a float64. Numeric types convert directly,
// time.Time converts to seconds since the Unix epoch, and
// time.Duration converts to seconds. Strings, nil, and NaN are not
// coercible.
func Float(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case time.Time:
		return float64(v.UnixNano()) / 1e9, true
	case time.Duration:
		return v.Seconds(), true
	case nil, string, bool:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

// IsNumeric reports whether v is a non-null value that Float can
// coerce.
func IsNumeric(v any) bool {
	_, ok := Float(v)
	return ok
}

// Key returns a string key for v suitable for grouping. Equal values
// have equal keys; null values have key "NA".
func Key(v any) string {
	switch v := v.(type) {
	case nil:
		return "NA"
	case string:
		return v
	case float64:
		if math.IsNaN(v) {
			return "NA"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// Less orders two values: nulls first, then numbers by value, then
// everything else by key.
func Less(a, b any) bool {
	an, bn := IsNull(a), IsNull(b)
	if an || bn {
		return an && !bn
	}
	af, aok := Float(a)
	bf, bok := Float(b)
	switch {
	case aok && bok:
		return af < bf
	case aok != bok:
		return aok
	}
	return Key(a) < Key(b)
}

// ColumnValue returns row i of a go-gg table column as a scalar. NaN
// floats and nil interface values are returned as nil.
func ColumnValue(col table.Slice, i int) any {
	switch col := col.(type) {
	case []float64:
		if math.IsNaN(col[i]) {
			return nil
		}
		return col[i]
	case []string:
		return col[i]
	case []int:
		return col[i]
	case []any:
		if IsNull(col[i]) {
			return nil
		}
		return col[i]
	case []*float64:
		if col[i] == nil || math.IsNaN(*col[i]) {
			return nil
		}
		return *col[i]
	}
	v := reflect.ValueOf(col).Index(i).Interface()
	if IsNull(v) {
		return nil
	}
	return v
}
