// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFilesystem serves files from a directory.
type LocalFilesystem struct {
	dir  string
	fsys fs.FS
}

func NewLocalFilesystem(dir string) *LocalFilesystem {
	return &LocalFilesystem{dir: dir, fsys: os.DirFS(dir)}
}

func (local *LocalFilesystem) Open(filename string) (fs.File, error) {
	return local.fsys.Open(filename)
}

func (local *LocalFilesystem) ReadStaticFile(filename string) ([]byte, error) {
	data, err := fs.ReadFile(local.fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("read static file: %w", err)
	}
	return data, nil
}

// UploadStaticFile writes the file. Local files have no cache control so secondsCache is ignored.
func (local *LocalFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	if !fs.ValidPath(filename) {
		return fmt.Errorf("upload static file %q: %w", filename, fs.ErrInvalid)
	}
	path := filepath.Join(local.dir, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("upload static file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("upload static file: %w", err)
	}
	return nil
}
