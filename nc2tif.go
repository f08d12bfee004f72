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

// Package nc2tif converts a multi-day evapotranspiration NetCDF file
// into one GeoTIFF per day.
//
// Each time step of the ET(time, lat, lon) variable is written to a
// file named after the dataset year and the day of year stored in the
// time variable, for example 2020045.tif. All outputs share one affine
// transform derived from the first two lat and lon samples, and the
// spatial reference stored on the dataset's crs variable, if any.
package nc2tif

import (
	"fmt"
	"strings"
)

// Version gives the version number.
const Version = "1.0.0"

// SpacingCheck selects what happens when the coordinate spacing is not
// uniform.
type SpacingCheck string

// Spacing check modes.
const (
	SpacingOff   SpacingCheck = "off"
	SpacingWarn  SpacingCheck = "warn"
	SpacingError SpacingCheck = "error"
)

// DefaultSpacingTolerance is the relative tolerance used when Config
// does not set one.
const DefaultSpacingTolerance = 1e-6

// Config holds the settings for one conversion.
type Config struct {
	// InputPath is the NetCDF file to read.
	InputPath string

	// OutputDirectory is where the GeoTIFFs are written. It is created
	// if it does not exist.
	OutputDirectory string

	// SpacingCheck controls validation of lat/lon spacing beyond the
	// first two samples. The zero value is treated as SpacingWarn.
	SpacingCheck SpacingCheck

	// SpacingTolerance is the relative tolerance of the spacing check.
	SpacingTolerance float64

	// NoData tags each band with the ET fill value when the dataset
	// has one.
	NoData bool
}

func (c *Config) check() error {
	if c.InputPath == "" {
		return fmt.Errorf("nc2tif: an input file must be specified")
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("nc2tif: an output directory must be specified")
	}
	switch SpacingCheck(strings.ToLower(string(c.SpacingCheck))) {
	case "":
		c.SpacingCheck = SpacingWarn
	case SpacingOff, SpacingWarn, SpacingError:
		c.SpacingCheck = SpacingCheck(strings.ToLower(string(c.SpacingCheck)))
	default:
		return fmt.Errorf("nc2tif: invalid spacing check %q; valid options are %q, %q and %q",
			c.SpacingCheck, SpacingOff, SpacingWarn, SpacingError)
	}
	if c.SpacingTolerance < 0 {
		return fmt.Errorf("nc2tif: spacing tolerance must not be negative but is %g", c.SpacingTolerance)
	}
	if c.SpacingTolerance == 0 {
		c.SpacingTolerance = DefaultSpacingTolerance
	}
	return nil
}

// OutputName returns the file name for a day of year, {year}{doy:03d}.tif.
func OutputName(year, doy int) string {
	return fmt.Sprintf("%d%03d.tif", year, doy)
}
