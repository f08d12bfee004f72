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
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2tif"
	"github.com/spatialmodel/nc2tif/internal/nctest"
	"github.com/spatialmodel/nc2tif/ncfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeInput writes an ET dataset into a new temporary directory and
// returns the directory and the file path.
func writeInput(t *testing.T, d nctest.Dataset) (dir, path string) {
	dir = t.TempDir()
	path = filepath.Join(dir, "et.nc")
	nctest.WriteClassic(t, path, d)
	return dir, path
}

// execute runs the root command with the given arguments and returns
// what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	Root.SetOutput(&out)
	defer Root.SetOutput(nil)
	Root.SetArgs(args)
	Cfg.Set("log-level", "error")
	err := Root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "nc2tif v"+nc2tif.Version+"\n", out)
}

func TestConvertCmd(t *testing.T) {
	dir, in := writeInput(t, nctest.Default())
	outDir := filepath.Join(dir, "tif")
	Cfg.Set("input", in)
	Cfg.Set("output", outDir)

	out, err := execute(t, "convert")
	require.NoError(t, err)
	for _, name := range []string{"2020045.tif", "2020046.tif"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err)
		assert.Contains(t, out, "Written: "+filepath.Join(outDir, name)+"\n")
	}
	assert.True(t, strings.HasSuffix(out,
		"NetCDF to GeoTIFF conversion finished: 2 files written to "+outDir+".\n"), out)
}

func TestConvertCmdMissingET(t *testing.T) {
	d := nctest.Default()
	d.Omit = ncfile.VarET
	dir, in := writeInput(t, d)
	outDir := filepath.Join(dir, "tif")
	Cfg.Set("input", in)
	Cfg.Set("output", outDir)

	out, err := execute(t, "convert")
	var me ncfile.MissingVariableError
	require.True(t, errors.As(err, &me), "have error %v", err)
	assert.Equal(t, ncfile.VarET, me.Name)
	assert.NotContains(t, out, "Written:")
	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertCmdBlob(t *testing.T) {
	// fileblob buckets are directories relative to the working directory.
	require.NoError(t, os.MkdirAll("testbucket", 0755))
	defer os.RemoveAll("testbucket")

	_, in := writeInput(t, nctest.Default())
	Cfg.Set("input", in)
	Cfg.Set("output", "file://testbucket/et/")

	out, err := execute(t, "convert")
	require.NoError(t, err)
	for _, name := range []string{"2020045.tif", "2020046.tif"} {
		_, err := os.Stat(filepath.Join("testbucket", "et", name))
		assert.NoError(t, err)
		assert.Contains(t, out, "Written: file://testbucket/et/"+name+"\n")
	}
	assert.Contains(t, out, "2 files written to file://testbucket/et/.")
}

func TestConvertCmdHTTP(t *testing.T) {
	dir, _ := writeInput(t, nctest.Default())
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	outDir := filepath.Join(t.TempDir(), "tif")
	Cfg.Set("input", srv.URL+"/et.nc")
	Cfg.Set("output", outDir)

	_, err := execute(t, "convert")
	require.NoError(t, err)
	entries, err := ioutil.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestInspectCmd(t *testing.T) {
	d := nctest.Default()
	d.Time = []int32{45, 45}
	dir, in := writeInput(t, d)
	Cfg.Set("input", in)

	out, err := execute(t, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "format:       NetCDF classic\n")
	assert.Contains(t, out, "year:         2020\n")
	assert.Contains(t, out, "shape:        2 time x 3 lat x 3 lon\n")
	assert.Contains(t, out, "geotransform: [-5.5 1 0 10.5 0 -1]\n")
	assert.Contains(t, out, "crs:          longlat")
	assert.Contains(t, out, "outputs:\n  2020045.tif\n  2020045.tif\n")
	assert.Contains(t, out, "warning: day of year 45 occurs more than once")

	entries, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "inspect should not write anything")
}

func TestInspectCmdInsufficient(t *testing.T) {
	d := nctest.Default()
	d.Lon = []float64{-5}
	d.ET = []float32{1, 2, 3, 4, 5, 6}
	_, in := writeInput(t, d)
	Cfg.Set("input", in)

	_, err := execute(t, "inspect")
	var ie nc2tif.InsufficientCoordinateDataError
	require.True(t, errors.As(err, &ie), "have error %v", err)
	assert.Equal(t, "lon", ie.Axis)
}

func TestConvertConfig(t *testing.T) {
	cfg := viper.New()
	os.Setenv("NC2TIF_TEST_DIR", "/data")
	defer os.Unsetenv("NC2TIF_TEST_DIR")
	cfg.Set("input", "$NC2TIF_TEST_DIR/et.nc")
	cfg.Set("output", "${NC2TIF_TEST_DIR}/tif")
	cfg.Set("spacing-check", "error")
	cfg.Set("spacing-tolerance", "0.001")
	cfg.Set("nodata", "true")

	c, err := ConvertConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, nc2tif.Config{
		InputPath:        "/data/et.nc",
		OutputDirectory:  "/data/tif",
		SpacingCheck:     nc2tif.SpacingError,
		SpacingTolerance: 0.001,
		NoData:           true,
	}, c)

	cfg.Set("output", "")
	_, err = ConvertConfig(cfg)
	assert.Error(t, err)

	cfg.Set("output", "tif")
	cfg.Set("spacing-tolerance", "small")
	_, err = ConvertConfig(cfg)
	assert.Error(t, err)
}

func TestConfigFileAndEnv(t *testing.T) {
	f := filepath.Join(t.TempDir(), "nc2tif.toml")
	require.NoError(t, ioutil.WriteFile(f, []byte("nodata = true\nspacing-tolerance = 0.01\n"), 0644))
	os.Setenv("NC2TIF_SPACING_CHECK", "off")
	defer os.Unsetenv("NC2TIF_SPACING_CHECK")
	Cfg.Set("config", f)
	defer func() {
		Cfg.Set("config", "")
		Cfg.Set("nodata", false)
		Cfg.Set("spacing-tolerance", nc2tif.DefaultSpacingTolerance)
	}()
	Cfg.Set("input", "et.nc")
	Cfg.Set("output", "tif")

	require.NoError(t, setConfig())
	c, err := ConvertConfig(Cfg)
	require.NoError(t, err)
	assert.True(t, c.NoData)
	assert.Equal(t, 0.01, c.SpacingTolerance)
	assert.Equal(t, nc2tif.SpacingOff, c.SpacingCheck)

	Cfg.Set("config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, setConfig())
}

func TestSetConfigLogLevel(t *testing.T) {
	defer Cfg.Set("log-level", "info")
	Cfg.Set("log-level", "debug")
	require.NoError(t, setConfig())
	assert.Equal(t, logrus.DebugLevel, Log.Level)

	Cfg.Set("log-level", "chatty")
	assert.Error(t, setConfig())
}

func TestMaybeDownload(t *testing.T) {
	ctx := context.Background()
	log := logrus.New()
	log.Out = ioutil.Discard

	t.Run("local", func(t *testing.T) {
		_, in := writeInput(t, nctest.Default())
		p, cleanup, err := maybeDownload(ctx, in, log)
		require.NoError(t, err)
		defer cleanup()
		assert.Equal(t, in, p)
	})
	t.Run("missing local", func(t *testing.T) {
		p, cleanup, err := maybeDownload(ctx, "/blah/et.nc", log)
		require.NoError(t, err)
		defer cleanup()
		assert.Equal(t, "/blah/et.nc", p)
	})
	t.Run("remote", func(t *testing.T) {
		dir, _ := writeInput(t, nctest.Default())
		srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
		defer srv.Close()
		p, cleanup, err := maybeDownload(ctx, srv.URL+"/et.nc", log)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(p, "et.nc"), p)
		_, err = os.Stat(p)
		assert.NoError(t, err)
		cleanup()
		_, err = os.Stat(p)
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("remote not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		_, cleanup, err := maybeDownload(ctx, srv.URL+"/et.nc", log)
		defer cleanup()
		var oe ncfile.DatasetOpenError
		assert.True(t, errors.As(err, &oe), "have error %v", err)
	})
}
