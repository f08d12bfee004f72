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
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/nc2tif"
	"github.com/spf13/cast"
)

// ConvertConfig builds a conversion configuration from cfg. Environment
// variables in the input and output locations are expanded.
func ConvertConfig(cfg *viper.Viper) (nc2tif.Config, error) {
	input, err := inputPath(cfg)
	if err != nil {
		return nc2tif.Config{}, err
	}
	output := os.ExpandEnv(cfg.GetString("output"))
	if output == "" {
		return nc2tif.Config{}, fmt.Errorf("nc2tif: output directory must be specified")
	}
	tol, err := cast.ToFloat64E(cfg.Get("spacing-tolerance"))
	if err != nil {
		return nc2tif.Config{}, fmt.Errorf("nc2tif: invalid spacing-tolerance: %v", err)
	}
	nodata, err := cast.ToBoolE(cfg.Get("nodata"))
	if err != nil {
		return nc2tif.Config{}, fmt.Errorf("nc2tif: invalid nodata: %v", err)
	}
	return nc2tif.Config{
		InputPath:        input,
		OutputDirectory:  output,
		SpacingCheck:     nc2tif.SpacingCheck(cfg.GetString("spacing-check")),
		SpacingTolerance: tol,
		NoData:           nodata,
	}, nil
}

func inputPath(cfg *viper.Viper) (string, error) {
	input := os.ExpandEnv(cfg.GetString("input"))
	if input == "" {
		return "", fmt.Errorf("nc2tif: input file must be specified")
	}
	return input, nil
}
