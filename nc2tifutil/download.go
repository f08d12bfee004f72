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
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nc2tif/cloud"
	"github.com/spatialmodel/nc2tif/ncfile"
)

// maybeDownload checks if the input is an existing file locally.
// If not, it checks whether the file is a URL or a blob storage location.
// If it is, it downloads the file into a temporary directory and
// returns the path to the downloaded file. cleanup removes anything
// that was downloaded and is never nil. Download failures are returned
// as ncfile.DatasetOpenError.
func maybeDownload(ctx context.Context, p string, log logrus.FieldLogger) (local string, cleanup func(), err error) {
	cleanup = func() {}
	// Check if local file exists. If it does, return the given path.
	if _, err := os.Stat(p); err == nil {
		return p, cleanup, nil
	}

	remote := strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
	if !remote && !cloud.IsBlob(p) {
		return p, cleanup, nil
	}

	dir, err := ioutil.TempDir("", "nc2tif")
	if err != nil {
		return "", cleanup, fmt.Errorf("nc2tif: creating temporary download directory: %v", err)
	}
	cleanup = func() { os.RemoveAll(dir) }
	log.WithField("url", p).Info("downloading input")
	if remote {
		local, err = downloadHTTP(ctx, p, dir)
	} else {
		local, err = cloud.Download(ctx, p, dir)
	}
	if err != nil {
		cleanup()
		return "", func() {}, ncfile.DatasetOpenError{Path: p, Err: fmt.Errorf("downloading: %v", err)}
	}
	return local, cleanup, nil
}

// downloadHTTP downloads a file from the specified URL into dir and
// returns the path to the downloaded file.
func downloadHTTP(ctx context.Context, u, dir string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		name = "input.nc"
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %s", resp.Status)
	}

	local := filepath.Join(dir, name)
	w, err := os.Create(local)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		return "", err
	}
	return local, w.Close()
}
