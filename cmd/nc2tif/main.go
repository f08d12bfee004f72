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

// Command nc2tif converts daily evapotranspiration NetCDF files into
// one GeoTIFF per day.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/nc2tif/nc2tifutil"
)

func main() {
	if err := nc2tifutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
