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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/nc2tif/cloud"
)

// uploader stages output files in a temporary directory and copies
// each one to blob storage as soon as it is published.
type uploader struct {
	// dest is the blob storage directory, e.g. "s3://bucket/et".
	dest string

	// dir is the local staging directory.
	dir string
}

// maybeUpload checks whether the given output directory refers to
// a blob storage location. If it does, then a temporary directory is
// returned along with an uploader that copies files written there to
// the blob location. Otherwise the directory is returned unchanged and
// the uploader is nil.
func maybeUpload(output string) (string, *uploader, error) {
	if !cloud.IsBlob(output) {
		return output, nil, nil
	}
	if _, _, err := cloud.SplitURL(output); err != nil {
		return "", nil, err
	}
	dir, err := ioutil.TempDir("", "nc2tif")
	if err != nil {
		return "", nil, fmt.Errorf("nc2tif: creating temporary output directory: %v", err)
	}
	return dir, &uploader{dest: strings.TrimSuffix(output, "/"), dir: dir}, nil
}

// publish uploads the given staged file and returns its blob location.
// The staged copy is removed once it has been uploaded.
func (u *uploader) publish(ctx context.Context, local string) (string, error) {
	dest := u.dest + "/" + filepath.Base(local)
	if err := cloud.Upload(ctx, local, dest); err != nil {
		return "", fmt.Errorf("nc2tif: uploading '%s' to '%s': %v", local, dest, err)
	}
	if err := os.Remove(local); err != nil {
		return "", err
	}
	return dest, nil
}

// close removes the staging directory.
func (u *uploader) close() error {
	return os.RemoveAll(u.dir)
}
