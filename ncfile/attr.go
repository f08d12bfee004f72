/*
Copyright © 2026 the nc2tif authors.
This file is part of nc2tif.

nc2tif is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nc2tif is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nc2tif.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// scalar returns the first element of an attribute value. The NetCDF
// classic reader returns every numeric attribute as a slice.
func scalar(v interface{}) (interface{}, bool) {
	switch vv := v.(type) {
	case nil:
		return nil, false
	case string:
		return strings.TrimRight(vv, "\x00"), true
	case []uint8:
		if len(vv) == 0 {
			return nil, false
		}
		return int8(vv[0]), true // NC_BYTE is signed.
	case []int16:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []int32:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []int64:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []float32:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []float64:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []string:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	case []interface{}:
		if len(vv) == 0 {
			return nil, false
		}
		return vv[0], true
	default:
		return v, true
	}
}

// attrInt converts an attribute value to an integer. Integral floating
// point values and decimal strings are accepted.
func attrInt(v interface{}) (int, error) {
	s, ok := scalar(v)
	if !ok {
		return 0, fmt.Errorf("attribute has no value")
	}
	if x, ok := s.(string); ok {
		i, err := cast.ToIntE(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", x)
		}
		return i, nil
	}
	if f, ok := number(s); ok {
		return floatToInt(f)
	}
	i, err := cast.ToIntE(s)
	if err != nil {
		return 0, fmt.Errorf("value of type %T is not an integer", s)
	}
	return i, nil
}

// number converts the numeric types returned by the NetCDF readers.
func number(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, fmt.Errorf("%g is not an integer", f)
	}
	return int(f), nil
}

// attrFloat converts a numeric attribute value to a float64.
func attrFloat(v interface{}) (float64, bool) {
	s, ok := scalar(v)
	if !ok {
		return 0, false
	}
	if _, isString := s.(string); isString {
		return 0, false
	}
	if f, ok := number(s); ok {
		return f, true
	}
	f, err := cast.ToFloat64E(s)
	return f, err == nil
}

// attrString returns a text attribute value.
func attrString(v interface{}) (string, bool) {
	s, ok := scalar(v)
	if !ok {
		return "", false
	}
	str, ok := s.(string)
	return str, ok
}

// float64s converts numeric data read from a variable to float64.
func float64s(data interface{}) ([]float64, error) {
	switch d := data.(type) {
	case []float64:
		return d, nil
	case []float32:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int64:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int32:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int16:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []int8:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(v)
		}
		return o, nil
	case []uint8:
		o := make([]float64, len(d))
		for i, v := range d {
			o[i] = float64(int8(v))
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported data type %T", data)
	}
}
