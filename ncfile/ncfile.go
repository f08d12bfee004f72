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

// Package ncfile reads daily evapotranspiration grids from NetCDF
// files. Both the classic format and NetCDF-4 (HDF5) are supported.
//
// A dataset must contain the variables ET(time, lat, lon), time(time),
// lat(lat) and lon(lon) and an integer global attribute named year.
// The time variable holds the day of year of each ET slice.
package ncfile

import (
	"bytes"
	"fmt"
	"math"
	"os"
)

// Names of the variables and attributes that are read.
const (
	VarET    = "ET"
	VarTime  = "time"
	VarLat   = "lat"
	VarLon   = "lon"
	VarCRS   = "crs"
	AttrYear = "year"
)

// crsAttributes are the attributes of the crs variable that can hold a
// spatial reference, in order of preference.
var crsAttributes = []string{"spatial_ref", "crs_wkt", "proj4text", "proj4"}

// Format is a NetCDF container format.
type Format int

// Supported formats.
const (
	Classic Format = iota + 1
	NetCDF4
)

func (f Format) String() string {
	switch f {
	case Classic:
		return "NetCDF classic"
	case NetCDF4:
		return "NetCDF-4/HDF5"
	default:
		return "unknown"
	}
}

var (
	magicCDF1 = []byte("CDF\x01")
	magicCDF2 = []byte("CDF\x02")
	magicHDF5 = []byte("\x89HDF\r\n\x1a\n")
)

type backend interface {
	hasVariable(name string) bool
	shape(name string) ([]int, bool)
	readVariable(name string) ([]float64, error)
	readSlice(name string, index, ny, nx int) ([]float64, error)
	globalAttribute(name string) (interface{}, bool)
	attribute(v, name string) (interface{}, bool)
	close() error
}

// File is an open evapotranspiration dataset. The coordinate variables
// and metadata are read when the file is opened; ET slices are read on
// demand with Slice.
type File struct {
	Path   string
	Format Format

	// Year is the value of the global year attribute.
	Year int

	// Time holds the raw day-of-year values.
	Time []float64

	// Lat and Lon are pixel-centre coordinates.
	Lat, Lon []float64

	// CRS is the spatial reference descriptor (WKT or PROJ.4), or ""
	// if the dataset has none.
	CRS string

	nt, ny, nx int

	fill, missing       float64
	hasFill, hasMissing bool

	scale, offset float64
	packed        bool

	b backend
}

// Open opens the NetCDF file at path and reads its coordinates and
// metadata. Variables are checked in the order ET, time, lat, lon.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, DatasetOpenError{Path: path, Err: err}
	}
	magic := make([]byte, 8)
	if _, err := f.ReadAt(magic, 0); err != nil {
		f.Close()
		return nil, DatasetOpenError{Path: path, Err: fmt.Errorf("reading file signature: %v", err)}
	}

	file := &File{Path: path}
	switch {
	case bytes.HasPrefix(magic, magicCDF1), bytes.HasPrefix(magic, magicCDF2):
		file.Format = Classic
		c, err := openClassic(f)
		if err != nil {
			f.Close()
			return nil, DatasetOpenError{Path: path, Err: err}
		}
		file.b = c
	case bytes.Equal(magic, magicHDF5):
		f.Close()
		file.Format = NetCDF4
		n, err := openNetCDF4(path)
		if err != nil {
			return nil, DatasetOpenError{Path: path, Err: err}
		}
		file.b = n
	default:
		f.Close()
		return nil, DatasetOpenError{Path: path, Err: fmt.Errorf("not a NetCDF classic or NetCDF-4 file")}
	}

	if err := file.load(); err != nil {
		file.b.close()
		return nil, err
	}
	return file, nil
}

func (f *File) load() error {
	for _, v := range []string{VarET, VarTime, VarLat, VarLon} {
		if !f.b.hasVariable(v) {
			return MissingVariableError{Name: v}
		}
	}

	yearI, ok := f.b.globalAttribute(AttrYear)
	if !ok {
		return MissingAttributeError{Name: AttrYear}
	}
	year, err := attrInt(yearI)
	if err != nil {
		return MissingAttributeError{Name: AttrYear, Reason: err.Error()}
	}
	f.Year = year

	shape, haveShape := f.b.shape(VarET)
	if haveShape && len(shape) != 3 {
		return VariableShapeError{Name: VarET, Shape: shape, Reason: "must have dimensions (time, lat, lon)"}
	}

	if f.Time, err = f.readCoordinate(VarTime); err != nil {
		return err
	}
	if f.Lat, err = f.readCoordinate(VarLat); err != nil {
		return err
	}
	if f.Lon, err = f.readCoordinate(VarLon); err != nil {
		return err
	}

	if haveShape {
		f.nt, f.ny, f.nx = shape[0], shape[1], shape[2]
	} else {
		f.nt, f.ny, f.nx = len(f.Time), len(f.Lat), len(f.Lon)
	}
	if len(f.Time) < f.nt {
		return VariableShapeError{
			Name:   VarTime,
			Shape:  []int{len(f.Time)},
			Reason: fmt.Sprintf("has fewer values than the %d ET time steps", f.nt),
		}
	}

	f.CRS = f.readCRS()
	f.readPacking()
	return nil
}

func (f *File) readCoordinate(name string) ([]float64, error) {
	data, err := f.b.readVariable(name)
	if err != nil {
		if _, ok := err.(VariableShapeError); ok {
			return nil, err
		}
		return nil, VariableReadError{Name: name, Err: err}
	}
	return data, nil
}

// readCRS returns the first non-empty spatial reference attribute of
// the crs variable.
func (f *File) readCRS() string {
	if !f.b.hasVariable(VarCRS) {
		return ""
	}
	for _, a := range crsAttributes {
		v, ok := f.b.attribute(VarCRS, a)
		if !ok {
			continue
		}
		if s, ok := attrString(v); ok && s != "" {
			return s
		}
	}
	return ""
}

func (f *File) readPacking() {
	if v, ok := f.b.attribute(VarET, "_FillValue"); ok {
		f.fill, f.hasFill = attrFloat(v)
	}
	if v, ok := f.b.attribute(VarET, "missing_value"); ok {
		f.missing, f.hasMissing = attrFloat(v)
	}
	f.scale, f.offset = 1, 0
	if v, ok := f.b.attribute(VarET, "scale_factor"); ok {
		if s, ok := attrFloat(v); ok {
			f.scale, f.packed = s, true
		}
	}
	if v, ok := f.b.attribute(VarET, "add_offset"); ok {
		if o, ok := attrFloat(v); ok {
			f.offset, f.packed = o, true
		}
	}
}

// Shape returns the number of time steps, rows and columns of ET.
func (f *File) Shape() (nt, ny, nx int) { return f.nt, f.ny, f.nx }

// DOY returns the day of year of time step i, truncated toward zero.
func (f *File) DOY(i int) int { return int(f.Time[i]) }

// FillValue returns the _FillValue (or, failing that, missing_value)
// attribute of ET.
func (f *File) FillValue() (float64, bool) {
	if f.hasFill {
		return f.fill, true
	}
	return f.missing, f.hasMissing
}

// Packed reports whether ET carries scale_factor or add_offset.
func (f *File) Packed() bool { return f.packed }

func (f *File) isFill(v float64) bool {
	if f.hasFill && (v == f.fill || (math.IsNaN(v) && math.IsNaN(f.fill))) {
		return true
	}
	return f.hasMissing && v == f.missing
}

// Slice reads ET[i, :, :] in row-major order and narrows it to float32.
// Packed values are unpacked; fill values are passed through unchanged.
func (f *File) Slice(i int) ([]float32, error) {
	if i < 0 || i >= f.nt {
		return nil, VariableReadError{Name: VarET, Err: fmt.Errorf("time index %d out of range [0, %d)", i, f.nt)}
	}
	raw, err := f.b.readSlice(VarET, i, f.ny, f.nx)
	if err != nil {
		return nil, VariableReadError{Name: VarET, Err: fmt.Errorf("time index %d: %v", i, err)}
	}
	o := make([]float32, len(raw))
	for j, v := range raw {
		if f.packed && !f.isFill(v) {
			v = v*f.scale + f.offset
		}
		o[j] = float32(v)
	}
	return o, nil
}

// Close releases the underlying file.
func (f *File) Close() error {
	return f.b.close()
}
