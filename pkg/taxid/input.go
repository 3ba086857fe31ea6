package taxid

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// unprintable replaces composite values and values whose String method panics.
// It contains no digits, so such values fail the digit check.
const unprintable = "<unprintable>"

// maxPointerDepth bounds how many pointers are followed to reach a value.
const maxPointerDepth = 8

// isAbsent reports whether v is nil, a nil pointer, or the literal empty string.
// A whitespace-only string is present: it fails later as non-digits.
func isAbsent(v any) bool {
	return isAbsentDepth(v, 0)
}

func isAbsentDepth(v any, depth int) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case *string:
		return val == nil || *val == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return true
		}
		if rv.Kind() == reflect.Pointer && depth < maxPointerDepth {
			return isAbsentDepth(rv.Elem().Interface(), depth+1)
		}
	}
	return false
}

// isFalsy extends isAbsent with numeric zero, matching the "no value supplied"
// semantics used for the optional KPP.
func isFalsy(v any) bool {
	if isAbsent(v) {
		return true
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Bool:
		return !rv.Bool()
	}
	return false
}

// normalize converts an arbitrary input into a trimmed string. It never panics.
func normalize(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = unprintable
		}
	}()
	return strings.TrimFunc(stringify(v, 0), isTrimmable)
}

// isTrimmable matches Unicode white space and the byte order mark.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

func stringify(v any, depth int) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		if depth >= maxPointerDepth {
			return unprintable
		}
		return stringify(rv.Elem().Interface(), depth+1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'f', -1, 128)
	}
	// Composite values are never digits and may be cyclic; they are not formatted.
	return unprintable
}
