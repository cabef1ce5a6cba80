// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"io/fs"
)

// Filesystem is where static files such as levels and tuning come from.
// It is also an fs.FS so loaders can read from it directly.
type Filesystem interface {
	fs.FS
	ReadStaticFile(filename string) ([]byte, error)
	UploadStaticFile(filename string, secondsCache int, data []byte) error
}
