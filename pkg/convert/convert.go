package convert

import (
	"fmt"
	"reflect"
	"strconv"
)

var errNotSlice = fmt.Errorf("input data is not a slice")
var errNotScalarElement = fmt.Errorf("slice element is not a scalar")

// Scalar renders a decoded template scalar as a string. Maps and slices,
// which is how intrinsic functions decode, report false.
func Scalar(v any) (string, bool) {
	switch tv := v.(type) {
	case string:
		return tv, true
	case bool:
		return strconv.FormatBool(tv), true
	case int:
		return strconv.Itoa(tv), true
	case int64:
		return strconv.FormatInt(tv, 10), true
	case uint64:
		return strconv.FormatUint(tv, 10), true
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), true
	}
	return "", false
}

// ScalarMap keeps the scalar entries of a map[string]any or
// map[string]string. Returns nil for anything else.
func ScalarMap(data any) map[string]string {
	if m, ok := data.(map[string]string); ok {
		return m
	}
	mAny, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(mAny))
	for k, v := range mAny {
		if s, ok := Scalar(v); ok {
			result[k] = s
		}
	}
	return result
}

// ToSliceOfString converts []string or any slice of scalars to []string.
// A nil input yields an empty slice.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}
	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := val.Index(i).Interface()
		s, ok := Scalar(item)
		if !ok {
			return nil, fmt.Errorf("index %d: %w (type %T)", i, errNotScalarElement, item)
		}
		result = append(result, s)
	}
	return result, nil
}
