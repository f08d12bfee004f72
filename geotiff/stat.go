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

package geotiff

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// Info describes an existing raster file.
type Info struct {
	Width, Height           int
	Bands                   int
	DataType                string
	BlockWidth, BlockHeight int
	Compression             string
	GeoTransform            [6]float64
	Projection              string
	NoData                  float64
	HasNoData               bool
}

// Stat reads the structure and georeferencing of the raster at path.
func Stat(path string) (*Info, error) {
	register()
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geotiff: opening %s: %w", path, err)
	}
	defer ds.Close()

	st := ds.Structure()
	info := &Info{
		Width:       st.SizeX,
		Height:      st.SizeY,
		Bands:       st.NBands,
		Compression: ds.Metadata("COMPRESSION", godal.Domain("IMAGE_STRUCTURE")),
		Projection:  ds.Projection(),
	}
	if gt, err := ds.GeoTransform(); err == nil {
		info.GeoTransform = gt
	}
	if bands := ds.Bands(); len(bands) > 0 {
		bst := bands[0].Structure()
		info.DataType = bst.DataType.String()
		info.BlockWidth, info.BlockHeight = bst.BlockSizeX, bst.BlockSizeY
		info.NoData, info.HasNoData = bands[0].NoData()
	}
	return info, nil
}

// ReadBand reads band 1 of the raster at path in row-major order.
func ReadBand(path string) ([]float32, error) {
	register()
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geotiff: opening %s: %w", path, err)
	}
	defer ds.Close()
	st := ds.Structure()
	if st.NBands < 1 {
		return nil, fmt.Errorf("geotiff: %s has no bands", path)
	}
	data := make([]float32, st.SizeX*st.SizeY)
	if err := ds.Bands()[0].Read(0, 0, data, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("geotiff: reading %s: %w", path, err)
	}
	return data, nil
}
