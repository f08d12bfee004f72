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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/nc2tif/internal/nctest"
)

// writeClassic writes d to a NetCDF classic file in a temporary
// directory and returns its path.
func writeClassic(t *testing.T, d nctest.Dataset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "et.nc")
	nctest.WriteClassic(t, path, d)
	return path
}

func TestOpenClassic(t *testing.T) {
	for _, record := range []bool{false, true} {
		name := "fixed"
		if record {
			name = "record"
		}
		t.Run(name, func(t *testing.T) {
			fx := nctest.Default()
			fx.Record = record
			f, err := Open(writeClassic(t, fx))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			if f.Format != Classic {
				t.Errorf("format: have %v, want %v", f.Format, Classic)
			}
			if f.Year != 2020 {
				t.Errorf("year: have %d, want 2020", f.Year)
			}
			nt, ny, nx := f.Shape()
			if nt != 2 || ny != 3 || nx != 3 {
				t.Errorf("shape: have (%d, %d, %d), want (2, 3, 3)", nt, ny, nx)
			}
			if !reflect.DeepEqual(f.Time, []float64{45, 46}) {
				t.Errorf("time: have %v", f.Time)
			}
			if !reflect.DeepEqual(f.Lat, fx.Lat) {
				t.Errorf("lat: have %v, want %v", f.Lat, fx.Lat)
			}
			if !reflect.DeepEqual(f.Lon, fx.Lon) {
				t.Errorf("lon: have %v, want %v", f.Lon, fx.Lon)
			}
			if f.CRS != "+proj=longlat +datum=WGS84 +no_defs" {
				t.Errorf("crs: have %q", f.CRS)
			}
			if f.DOY(1) != 46 {
				t.Errorf("doy: have %d, want 46", f.DOY(1))
			}
			for i, want := range [][]float32{
				{1, 2, 3, 4, 5, 6, 7, 8, 9},
				{10, 11, 12, 13, 14, 15, 16, 17, 18},
			} {
				have, err := f.Slice(i)
				if err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(have, want) {
					t.Errorf("slice %d: have %v, want %v", i, have, want)
				}
			}
			if _, err := f.Slice(2); err == nil {
				t.Error("expected an error for an out-of-range time index")
			}
		})
	}
}

func TestOpenMissingVariable(t *testing.T) {
	for _, v := range []string{VarET, VarTime, VarLat, VarLon} {
		t.Run(v, func(t *testing.T) {
			fx := nctest.Default()
			fx.Omit = v
			_, err := Open(writeClassic(t, fx))
			var mv MissingVariableError
			if !errors.As(err, &mv) {
				t.Fatalf("have error %v, want MissingVariableError", err)
			}
			if mv.Name != v {
				t.Errorf("missing variable: have %s, want %s", mv.Name, v)
			}
		})
	}
}

func TestOpenYear(t *testing.T) {
	tests := []struct {
		name    string
		year    interface{}
		want    int
		wantErr bool
	}{
		{name: "int", year: []int32{2021}, want: 2021},
		{name: "short", year: []int16{1999}, want: 1999},
		{name: "integral double", year: []float64{2020}, want: 2020},
		{name: "text", year: "2019", want: 2019},
		{name: "fractional", year: []float32{2020.5}, wantErr: true},
		{name: "not a number", year: "last year", wantErr: true},
		{name: "absent", year: nil, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fx := nctest.Default()
			fx.Year = test.year
			f, err := Open(writeClassic(t, fx))
			if test.wantErr {
				var ma MissingAttributeError
				if !errors.As(err, &ma) {
					t.Fatalf("have error %v, want MissingAttributeError", err)
				}
				if ma.Name != AttrYear {
					t.Errorf("attribute: have %s, want %s", ma.Name, AttrYear)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			if f.Year != test.want {
				t.Errorf("have %d, want %d", f.Year, test.want)
			}
		})
	}
}

func TestOpenCRS(t *testing.T) {
	const wkt = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`
	tests := []struct {
		name  string
		attrs map[string]interface{}
		want  string
	}{
		{name: "no crs variable", attrs: nil, want: ""},
		{name: "no descriptor", attrs: map[string]interface{}{"grid_mapping_name": "latitude_longitude"}, want: ""},
		{name: "crs_wkt", attrs: map[string]interface{}{"crs_wkt": wkt}, want: wkt},
		{name: "proj4text", attrs: map[string]interface{}{"proj4text": "+proj=longlat"}, want: "+proj=longlat"},
		{
			name:  "spatial_ref preferred",
			attrs: map[string]interface{}{"proj4": "+proj=longlat", "spatial_ref": wkt},
			want:  wkt,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fx := nctest.Default()
			fx.CRSAttrs = test.attrs
			f, err := Open(writeClassic(t, fx))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			if f.CRS != test.want {
				t.Errorf("have %q, want %q", f.CRS, test.want)
			}
		})
	}
}

func TestSliceUnpack(t *testing.T) {
	fx := nctest.Default()
	fx.Time = []int32{100}
	fx.ET = []int16{0, 150, -9999, 300, 1, 2, 3, 4, 5}
	fx.ETAttrs = map[string]interface{}{
		"scale_factor": []float32{0.5},
		"add_offset":   []float32{1},
		"_FillValue":   []int16{-9999},
	}
	f, err := Open(writeClassic(t, fx))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if !f.Packed() {
		t.Error("expected packed data")
	}
	fill, ok := f.FillValue()
	if !ok || fill != -9999 {
		t.Errorf("fill value: have %g, %v", fill, ok)
	}
	have, err := f.Slice(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{1, 76, -9999, 151, 1.5, 2, 2.5, 3, 3.5}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestOpenInvalid(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("this is not a NetCDF file"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.nc")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{text, empty, filepath.Join(dir, "missing.nc")} {
		_, err := Open(path)
		var de DatasetOpenError
		if !errors.As(err, &de) {
			t.Errorf("%s: have error %v, want DatasetOpenError", path, err)
			continue
		}
		if de.Path != path {
			t.Errorf("path: have %s, want %s", de.Path, path)
		}
	}
	if _, err := Open(filepath.Join(dir, "missing.nc")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("have %v, want an error wrapping fs.ErrNotExist", err)
	}
}

func TestOpenETShape(t *testing.T) {
	h := cdf.NewHeader([]string{"time", "lat", "lon"}, []int{1, 2, 2})
	h.AddVariable(VarET, []string{"lat", "lon"}, []float32{})
	h.AddVariable(VarTime, []string{"time"}, []int32{})
	h.AddVariable(VarLat, []string{"lat"}, []float64{})
	h.AddVariable(VarLon, []string{"lon"}, []float64{})
	h.AddAttribute("", AttrYear, []int32{2020})
	h.Define()
	path := filepath.Join(t.TempDir(), "flat.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cdf.Create(f, h); err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = Open(path)
	var se VariableShapeError
	if !errors.As(err, &se) {
		t.Fatalf("have error %v, want VariableShapeError", err)
	}
	if se.Name != VarET {
		t.Errorf("variable: have %s, want %s", se.Name, VarET)
	}
}
