// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"io/fs"
	"path"
	"time"
)

// memoryFile is a downloaded fs.File.
type memoryFile struct {
	*bytes.Reader
	info memoryFileInfo
}

type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func newMemoryFile(name string, data []byte, modTime time.Time) *memoryFile {
	return &memoryFile{
		Reader: bytes.NewReader(data),
		info:   memoryFileInfo{name: path.Base(name), size: int64(len(data)), modTime: modTime},
	}
}

func (file *memoryFile) Stat() (fs.FileInfo, error) {
	return file.info, nil
}

func (file *memoryFile) Close() error {
	return nil
}

func (info memoryFileInfo) Name() string       { return info.name }
func (info memoryFileInfo) Size() int64        { return info.size }
func (info memoryFileInfo) Mode() fs.FileMode  { return 0444 }
func (info memoryFileInfo) ModTime() time.Time { return info.modTime }
func (info memoryFileInfo) IsDir() bool        { return false }
func (info memoryFileInfo) Sys() interface{}   { return nil }
