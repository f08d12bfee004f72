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

package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"gocloud.dev/blob"
)

// Download copies the blob at blobURL into dir, keeping its base name,
// and returns the local path.
func Download(ctx context.Context, blobURL, dir string) (string, error) {
	bucketName, key, err := SplitURL(blobURL)
	if err != nil {
		return "", err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return "", err
	}
	defer bucket.Close()

	local := filepath.Join(dir, path.Base(key))
	w, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("cloud: creating file for download: %v", err)
	}
	if err := readBlob(ctx, bucket, key, w); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("cloud: writing %s: %v", local, err)
	}
	return local, nil
}

// Upload copies the local file to blobURL.
func Upload(ctx context.Context, local, blobURL string) error {
	bucketName, key, err := SplitURL(blobURL)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return err
	}
	defer bucket.Close()

	r, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("cloud: opening file '%s' for upload: %v", local, err)
	}
	defer r.Close()
	return writeBlob(ctx, bucket, key, r)
}

// readBlob copies the given blob from the given bucket to w.
func readBlob(ctx context.Context, bucket *blob.Bucket, key string, w io.Writer) error {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("cloud: reading blob key %s: %w", key, err)
	}
	defer r.Close()
	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("cloud: reading blob key %s: %w", key, err)
	}
	return nil
}

// writeBlob writes the contents of r to the given bucket.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, r io.Reader) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("cloud: creating writer for blob %s: %w", key, err)
	}
	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("cloud: copying blob %s: %w", key, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("cloud: writing blob %s: %w", key, err)
	}
	return nil
}
