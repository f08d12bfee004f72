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

// Package geotiff writes single-band float32 GeoTIFF files using GDAL.
package geotiff

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/airbusgeo/godal"
)

// CreationOptions are the GTiff driver options used for every raster.
var CreationOptions = []string{"COMPRESS=LZW", "TILED=YES"}

var registerOnce sync.Once

func register() { registerOnce.Do(godal.RegisterAll) }

// RasterCreateError is returned when an output raster cannot be created.
type RasterCreateError struct {
	Path string
	Err  error
}

func (err RasterCreateError) Error() string {
	return fmt.Sprintf("geotiff: creating %s: %v", err.Path, err.Err)
}

func (err RasterCreateError) Unwrap() error { return err.Err }

// RasterWriteError is returned when georeferencing, pixel data, or the
// final flush cannot be written to an output raster.
type RasterWriteError struct {
	Path string
	Op   string
	Err  error
}

func (err RasterWriteError) Error() string {
	return fmt.Sprintf("geotiff: %s %s: %v", err.Op, err.Path, err.Err)
}

func (err RasterWriteError) Unwrap() error { return err.Err }

// SpatialRefError is returned when a spatial reference descriptor
// cannot be converted to WKT.
type SpatialRefError struct {
	Desc string
	Err  error
}

func (err SpatialRefError) Error() string {
	return fmt.Sprintf("geotiff: invalid spatial reference %q: %v", err.Desc, err.Err)
}

func (err SpatialRefError) Unwrap() error { return err.Err }

// Raster is a GeoTIFF file open for writing.
type Raster struct {
	path   string
	nx, ny int
	ds     *godal.Dataset
}

// Create creates a one-band float32 GeoTIFF with nx columns and ny rows,
// replacing any existing file at path.
func Create(path string, nx, ny int) (*Raster, error) {
	register()
	if nx <= 0 || ny <= 0 {
		return nil, RasterCreateError{Path: path, Err: fmt.Errorf("invalid raster size %dx%d", nx, ny)}
	}
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, nx, ny,
		godal.CreationOption(CreationOptions...))
	if err != nil {
		return nil, RasterCreateError{Path: path, Err: err}
	}
	return &Raster{path: path, nx: nx, ny: ny, ds: ds}, nil
}

// SetGeoTransform sets the affine pixel to map transform.
func (r *Raster) SetGeoTransform(gt [6]float64) error {
	if err := r.ds.SetGeoTransform(gt); err != nil {
		return RasterWriteError{Path: r.path, Op: "setting geotransform of", Err: err}
	}
	return nil
}

// SetProjection sets the spatial reference, which must be WKT.
func (r *Raster) SetProjection(wkt string) error {
	if err := r.ds.SetProjection(wkt); err != nil {
		return RasterWriteError{Path: r.path, Op: "setting projection of", Err: err}
	}
	return nil
}

// SetNoData tags the band with a no-data value.
func (r *Raster) SetNoData(v float64) error {
	if err := r.ds.Bands()[0].SetNoData(v); err != nil {
		return RasterWriteError{Path: r.path, Op: "setting nodata value of", Err: err}
	}
	return nil
}

// WriteBand writes data, in row-major order, to band 1.
func (r *Raster) WriteBand(data []float32) error {
	if len(data) != r.nx*r.ny {
		return RasterWriteError{
			Path: r.path,
			Op:   "writing band 1 of",
			Err:  fmt.Errorf("have %d values for a %dx%d raster", len(data), r.nx, r.ny),
		}
	}
	if err := r.ds.Bands()[0].Write(0, 0, data, r.nx, r.ny); err != nil {
		return RasterWriteError{Path: r.path, Op: "writing band 1 of", Err: err}
	}
	return nil
}

// Close flushes the raster to disk and releases it.
func (r *Raster) Close() error {
	if r.ds == nil {
		return nil
	}
	err := r.ds.Close()
	r.ds = nil
	if err != nil {
		return RasterWriteError{Path: r.path, Op: "closing", Err: err}
	}
	return nil
}

// SpatialRefWKT converts a WKT, PROJ.4 or "EPSG:<code>" descriptor to
// the WKT form GDAL stores in GeoTIFF files.
func SpatialRefWKT(desc string) (string, error) {
	register()
	d := strings.TrimSpace(desc)
	var (
		sr  *godal.SpatialRef
		err error
	)
	switch {
	case strings.HasPrefix(d, "+"):
		sr, err = godal.NewSpatialRefFromProj4(d)
	case strings.HasPrefix(strings.ToUpper(d), "EPSG:"):
		var code int
		code, err = strconv.Atoi(d[len("EPSG:"):])
		if err == nil {
			sr, err = godal.NewSpatialRefFromEPSG(code)
		}
	default:
		sr, err = godal.NewSpatialRefFromWKT(d)
	}
	if err != nil {
		return "", SpatialRefError{Desc: desc, Err: err}
	}
	defer sr.Close()
	wkt, err := sr.WKT()
	if err != nil {
		return "", SpatialRefError{Desc: desc, Err: err}
	}
	return wkt, nil
}
