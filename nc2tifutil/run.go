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

package nc2tifutil

import (
	"context"
	"fmt"

	"github.com/spatialmodel/nc2tif"
	"github.com/spatialmodel/nc2tif/geotiff"
	"github.com/spatialmodel/nc2tif/ncfile"
	"github.com/spf13/cobra"
)

// Convert runs a conversion, fetching a remote input first and
// uploading the outputs when the output directory is in blob storage.
// Progress lines are written to the command's output.
func Convert(ctx context.Context, cmd *cobra.Command, cfg nc2tif.Config) error {
	input, cleanup, err := maybeDownload(ctx, cfg.InputPath, Log)
	if err != nil {
		return err
	}
	defer cleanup()
	cfg.InputPath = input

	c := &nc2tif.Converter{Log: Log, Out: cmd.OutOrStdout()}
	dir, up, err := maybeUpload(cfg.OutputDirectory)
	if err != nil {
		return err
	}
	if up != nil {
		defer up.close()
		c.Location = cfg.OutputDirectory
		c.Publish = up.publish
		cfg.OutputDirectory = dir
	}
	_, err = c.Convert(ctx, cfg)
	return err
}

// Inspect validates the input the way Convert does and prints a
// description of it and of the files that would be written.
func Inspect(ctx context.Context, cmd *cobra.Command, input string) error {
	local, cleanup, err := maybeDownload(ctx, input, Log)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := ncfile.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()
	gt, err := nc2tif.NewGeoTransform(f.Lat, f.Lon)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	nt, ny, nx := f.Shape()
	fmt.Fprintf(w, "file:         %s\n", input)
	fmt.Fprintf(w, "format:       %s\n", f.Format)
	fmt.Fprintf(w, "year:         %d\n", f.Year)
	fmt.Fprintf(w, "shape:        %d time x %d lat x %d lon\n", nt, ny, nx)
	fmt.Fprintf(w, "geotransform: %v\n", [6]float64(gt))
	if f.CRS == "" {
		fmt.Fprintln(w, "crs:          none")
	} else {
		if _, err := geotiff.SpatialRefWKT(f.CRS); err != nil {
			return err
		}
		if d, err := nc2tif.DescribeCRS(f.CRS); err == nil {
			fmt.Fprintf(w, "crs:          %s\n", d)
		} else {
			fmt.Fprintf(w, "crs:          %s\n", f.CRS)
		}
	}
	if v, ok := f.FillValue(); ok {
		fmt.Fprintf(w, "fill value:   %g\n", v)
	}
	if f.Packed() {
		fmt.Fprintln(w, "packed:       yes")
	}

	names, collisions := nc2tif.Plan(f)
	fmt.Fprintln(w, "outputs:")
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
	for _, doy := range collisions {
		fmt.Fprintf(w, "warning: day of year %d occurs more than once; the last time step is kept\n", doy)
	}
	return nil
}
