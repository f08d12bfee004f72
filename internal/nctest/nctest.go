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

// Package nctest writes small NetCDF classic ET datasets for tests.
package nctest

import (
	"os"
	"testing"

	"github.com/ctessum/cdf"
)

// Dataset describes a test file.
type Dataset struct {
	Year     interface{} // nil omits the attribute
	Time     []int32
	Lat, Lon []float64
	ET       interface{} // []float32 or []int16, row-major (time, lat, lon)
	ETAttrs  map[string]interface{}
	CRSAttrs map[string]interface{} // nil omits the crs variable
	Omit     string                 // name of a variable to leave out
	Record   bool                   // make time the unlimited dimension
}

// Default returns a two-day 3x3 dataset for 2020, days 45 and 46, with
// lat=[10,9,8], lon=[-5,-4,-3] and a PROJ.4 spatial reference.
func Default() Dataset {
	return Dataset{
		Year: []int32{2020},
		Time: []int32{45, 46},
		Lat:  []float64{10, 9, 8},
		Lon:  []float64{-5, -4, -3},
		ET: []float32{
			1, 2, 3, 4, 5, 6, 7, 8, 9,
			10, 11, 12, 13, 14, 15, 16, 17, 18,
		},
		CRSAttrs: map[string]interface{}{"spatial_ref": "+proj=longlat +datum=WGS84 +no_defs"},
	}
}

// WriteClassic writes d to a NetCDF classic file at path.
func WriteClassic(t testing.TB, path string, d Dataset) {
	t.Helper()
	nt := len(d.Time)
	if d.Record {
		nt = 0
	}
	h := cdf.NewHeader([]string{"time", "lat", "lon"}, []int{nt, len(d.Lat), len(d.Lon)})
	if d.Omit != "ET" {
		h.AddVariable("ET", []string{"time", "lat", "lon"}, d.ET)
		for k, v := range d.ETAttrs {
			h.AddAttribute("ET", k, v)
		}
	}
	if d.Omit != "time" {
		h.AddVariable("time", []string{"time"}, []int32{})
	}
	if d.Omit != "lat" {
		h.AddVariable("lat", []string{"lat"}, []float64{})
	}
	if d.Omit != "lon" {
		h.AddVariable("lon", []string{"lon"}, []float64{})
	}
	if d.CRSAttrs != nil {
		h.AddVariable("crs", []string{}, []int32{})
		for k, v := range d.CRSAttrs {
			h.AddAttribute("crs", k, v)
		}
	}
	if d.Year != nil {
		h.AddAttribute("", "year", d.Year)
	}
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	nc, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	write := func(v string, data interface{}) {
		// A write ending exactly at the end index reports io.EOF, so
		// fixed-size variables get an end index past their lengths.
		var begin, end []int
		if !h.IsRecordVariable(v) {
			end = h.Lengths(v)
			begin = make([]int, len(end))
		}
		if _, err := nc.Writer(v, begin, end).Write(data); err != nil {
			t.Fatalf("writing %s: %v", v, err)
		}
	}
	if d.Omit != "ET" {
		write("ET", d.ET)
	}
	if d.Omit != "time" {
		write("time", d.Time)
	}
	if d.Omit != "lat" {
		write("lat", d.Lat)
	}
	if d.Omit != "lon" {
		write("lon", d.Lon)
	}
	if d.Record {
		if err := cdf.UpdateNumRecs(f); err != nil {
			t.Fatal(err)
		}
	}
}
