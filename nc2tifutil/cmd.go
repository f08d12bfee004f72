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

// Package nc2tifutil contains the nc2tif command-line interface.
package nc2tifutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2tif"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to nc2tif.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "log-level",
			usage: `
              log-level sets the minimum level of log messages that are
              printed: debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the NetCDF file holding the ET(time, lat, lon)
              variable. It can be a local path, an http(s) URL, or a blob
              storage location (gs://, s3://, or file://).`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), inspectCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the directory the GeoTIFF files are written to.
              It is created if it does not exist. If it is a blob storage
              location, each file is uploaded as soon as it is written.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "spacing-check",
			usage: `
              spacing-check specifies what happens when the lat or lon
              spacing is not uniform: "off" ignores it, "warn" logs a
              warning, and "error" stops the conversion.`,
			defaultVal: string(nc2tif.SpacingWarn),
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "spacing-tolerance",
			usage: `
              spacing-tolerance is the relative tolerance used when
              checking that the coordinate spacing is uniform.`,
			defaultVal: nc2tif.DefaultSpacingTolerance,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "nodata",
			usage: `
              nodata specifies whether the ET fill value, if there is one,
              is recorded as the nodata value of each output band.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NC2TIF")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(inspectCmd)

	Log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("nc2tif: problem reading configuration file: %v", err)
		}
	}
	lvl, err := logrus.ParseLevel(Cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("nc2tif: %v", err)
	}
	Log.SetLevel(lvl)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "nc2tif",
	Short: "Convert daily evapotranspiration NetCDF files to GeoTIFF.",
	Long: `nc2tif converts a NetCDF file holding a multi-day evapotranspiration grid,
ET(time, lat, lon), into one single-band GeoTIFF per day. Output files are named
{year}{day of year}.tif, for example 2020045.tif.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NC2TIF_var' where 'var' is the
name of the variable to be set, with dashes replaced by underscores.
Paths are allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of nc2tif.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nc2tif v%s\n", nc2tif.Version)
	},
	DisableAutoGenTag: true,
}

// convertCmd writes one GeoTIFF per time step.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a NetCDF file to daily GeoTIFFs.",
	Long: `convert reads the ET variable of the input NetCDF file and writes each
time step to its own GeoTIFF in the output directory. All files share the
geotransform derived from the first two lat and lon values and the spatial
reference of the crs variable, if there is one. If two time steps have the same
day of year, the later one overwrites the earlier.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ConvertConfig(Cfg)
		if err != nil {
			return err
		}
		return Convert(context.Background(), cmd, cfg)
	},
	DisableAutoGenTag: true,
}

// inspectCmd describes what convert would do.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe a NetCDF file without converting it.",
	Long: `inspect opens the input NetCDF file, validates it the same way convert
does, and prints its format, shape, year, geotransform, spatial reference, and
the names of the files convert would write. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := inputPath(Cfg)
		if err != nil {
			return err
		}
		return Inspect(context.Background(), cmd, input)
	},
	DisableAutoGenTag: true,
}
