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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2tif/geotiff"
	"github.com/spatialmodel/nc2tif/ncfile"
)

// Converter writes the time steps of an ET dataset to GeoTIFF files.
type Converter struct {
	// Log receives diagnostic messages. If nil, the standard logrus
	// logger is used.
	Log logrus.FieldLogger

	// Out receives one "Written: <path>" line per file and a final
	// completion line. If nil, os.Stdout is used.
	Out io.Writer

	// Publish, if not nil, is called with each output file after it has
	// been closed. The location it returns is the one reported as
	// written.
	Publish func(ctx context.Context, path string) (string, error)

	// Location, if set, names the output directory in the completion
	// line in place of the configured one.
	Location string
}

// Summary describes a finished conversion.
type Summary struct {
	Year int

	// Files holds the reported location of every write, in time-step
	// order. A repeated day of year appears once per write.
	Files []string

	// Collisions maps each day of year that occurs more than once to
	// the time indices that share it. The file for that day holds the
	// data of the last index.
	Collisions map[int][]int
}

func (c *Converter) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func (c *Converter) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Convert reads cfg.InputPath and writes one GeoTIFF per time step to
// cfg.OutputDirectory. The input is fully validated before the output
// directory is created. A failure part way through leaves the files
// already written in place.
func (c *Converter) Convert(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	log := c.log().WithField("input", cfg.InputPath)

	f, err := ncfile.Open(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	open := true
	defer func() {
		if open {
			f.Close()
		}
	}()
	nt, ny, nx := f.Shape()
	log.WithFields(logrus.Fields{
		"format": f.Format,
		"year":   f.Year,
		"shape":  fmt.Sprintf("%dx%dx%d", nt, ny, nx),
	}).Info("opened dataset")

	gt, err := NewGeoTransform(f.Lat, f.Lon)
	if err != nil {
		return nil, err
	}
	if err := checkGrid(cfg, f, log); err != nil {
		return nil, err
	}

	wkt, err := spatialRef(f.CRS, log)
	if err != nil {
		return nil, err
	}

	var nodata *float64
	if cfg.NoData {
		if v, ok := f.FillValue(); ok {
			nodata = &v
		} else {
			log.Warn("no fill value found for ET; outputs will not have a nodata value")
		}
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("nc2tif: creating output directory: %w", err)
	}

	s := &Summary{Year: f.Year, Collisions: make(map[int][]int)}
	indices := make(map[int][]int)
	for i := 0; i < nt; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		doy := f.DOY(i)
		if prev := indices[doy]; len(prev) > 0 {
			log.WithFields(logrus.Fields{
				"doy":      doy,
				"index":    i,
				"previous": prev[len(prev)-1],
			}).Warn("day of year repeated; overwriting the earlier output")
		}
		indices[doy] = append(indices[doy], i)
		if doy < 1 || doy > 366 {
			log.WithFields(logrus.Fields{"doy": doy, "index": i}).Warn("time value is not a valid day of year")
		}

		data, err := f.Slice(i)
		if err != nil {
			return s, err
		}
		path := filepath.Join(cfg.OutputDirectory, OutputName(f.Year, doy))
		if err := writeRaster(path, nx, ny, data, gt, wkt, nodata); err != nil {
			return s, err
		}
		loc := path
		if c.Publish != nil {
			if loc, err = c.Publish(ctx, path); err != nil {
				return s, err
			}
		}
		s.Files = append(s.Files, loc)
		log.WithFields(logrus.Fields{"index": i, "doy": doy, "output": loc}).Debug("wrote raster")
		fmt.Fprintf(c.out(), "Written: %s\n", loc)
	}

	for doy, idx := range indices {
		if len(idx) > 1 {
			s.Collisions[doy] = idx
		}
	}
	open = false
	if err := f.Close(); err != nil {
		return s, fmt.Errorf("nc2tif: closing %s: %w", cfg.InputPath, err)
	}
	loc := cfg.OutputDirectory
	if c.Location != "" {
		loc = c.Location
	}
	fmt.Fprintf(c.out(), "NetCDF to GeoTIFF conversion finished: %d files written to %s.\n", len(s.Files), loc)
	return s, nil
}

// checkGrid compares the coordinate variables to ET and, unless
// disabled, checks that their spacing is uniform.
func checkGrid(cfg Config, f *ncfile.File, log logrus.FieldLogger) error {
	_, ny, nx := f.Shape()
	if ny != len(f.Lat) || nx != len(f.Lon) {
		log.WithFields(logrus.Fields{
			"et_rows": ny, "et_cols": nx, "lat": len(f.Lat), "lon": len(f.Lon),
		}).Warn("ET grid size does not match the lat and lon variables")
	}
	if cfg.SpacingCheck == SpacingOff {
		return nil
	}
	for _, axis := range []struct {
		name   string
		coords []float64
	}{{"lat", f.Lat}, {"lon", f.Lon}} {
		err := CheckSpacing(axis.name, axis.coords, cfg.SpacingTolerance)
		if err == nil {
			continue
		}
		if cfg.SpacingCheck == SpacingError {
			return err
		}
		log.WithError(err).Warn("grid spacing is inferred from the first two samples only")
	}
	return nil
}

// spatialRef converts the dataset's CRS descriptor to WKT. An empty
// descriptor gives an empty result.
func spatialRef(desc string, log logrus.FieldLogger) (string, error) {
	if desc == "" {
		log.Info("dataset has no spatial reference; outputs will not have one")
		return "", nil
	}
	if d, err := DescribeCRS(desc); err != nil {
		log.WithError(err).Debug("spatial reference not recognized by the projection parser")
	} else {
		log.WithField("crs", d).Info("spatial reference")
	}
	return geotiff.SpatialRefWKT(desc)
}

// writeRaster writes one time step and closes the file.
func writeRaster(path string, nx, ny int, data []float32, gt GeoTransform, wkt string, nodata *float64) (err error) {
	r, err := geotiff.Create(path, nx, ny)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := r.SetGeoTransform([6]float64(gt)); err != nil {
		return err
	}
	if wkt != "" {
		if err := r.SetProjection(wkt); err != nil {
			return err
		}
	}
	if nodata != nil {
		if err := r.SetNoData(*nodata); err != nil {
			return err
		}
	}
	return r.WriteBand(data)
}

// Plan returns the output file names in time-step order and the days of
// year that occur more than once, without writing anything.
func Plan(f *ncfile.File) (names []string, collisions []int) {
	nt, _, _ := f.Shape()
	seen := make(map[int]int)
	for i := 0; i < nt; i++ {
		doy := f.DOY(i)
		names = append(names, OutputName(f.Year, doy))
		seen[doy]++
	}
	for doy, n := range seen {
		if n > 1 {
			collisions = append(collisions, doy)
		}
	}
	sort.Ints(collisions)
	return names, collisions
}
