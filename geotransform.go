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

package nc2tif

import (
	"fmt"

	"github.com/gonum/floats"
)

// GeoTransform is an affine transform in GDAL order: origin x, pixel
// width, row rotation, origin y, column rotation, pixel height.
type GeoTransform [6]float64

// InsufficientCoordinateDataError is returned when a coordinate axis has
// too few samples to infer the grid spacing.
type InsufficientCoordinateDataError struct {
	Axis string
	Len  int
}

func (err InsufficientCoordinateDataError) Error() string {
	return fmt.Sprintf("nc2tif: %s must have at least 2 values to determine grid spacing but has %d", err.Axis, err.Len)
}

// NonUniformSpacingError reports a coordinate step that differs from the
// step between the first two samples.
type NonUniformSpacingError struct {
	Axis      string
	Index     int // the step between Index-1 and Index
	Want, Got float64
}

func (err NonUniformSpacingError) Error() string {
	return fmt.Sprintf("nc2tif: %s spacing is not uniform: step %d is %g but the first step is %g",
		err.Axis, err.Index, err.Got, err.Want)
}

// NewGeoTransform returns the transform of a grid whose pixel centres
// are at lat and lon. Only the first two samples of each axis are used:
// the origin is the outer corner of the first pixel.
func NewGeoTransform(lat, lon []float64) (GeoTransform, error) {
	if len(lat) < 2 {
		return GeoTransform{}, InsufficientCoordinateDataError{Axis: "lat", Len: len(lat)}
	}
	if len(lon) < 2 {
		return GeoTransform{}, InsufficientCoordinateDataError{Axis: "lon", Len: len(lon)}
	}
	dx := lon[1] - lon[0]
	dy := lat[1] - lat[0]
	return GeoTransform{lon[0] - dx/2, dx, 0, lat[0] - dy/2, 0, dy}, nil
}

// CheckSpacing returns a NonUniformSpacingError for the first step of
// coords that differs from coords[1]-coords[0] by more than the relative
// tolerance tol.
func CheckSpacing(axis string, coords []float64, tol float64) error {
	if len(coords) < 3 {
		return nil
	}
	want := coords[1] - coords[0]
	for i := 2; i < len(coords); i++ {
		got := coords[i] - coords[i-1]
		if !floats.EqualWithinAbsOrRel(got, want, 0, tol) {
			return NonUniformSpacingError{Axis: axis, Index: i, Want: want, Got: got}
		}
	}
	return nil
}
