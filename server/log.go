// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"runtime"
)

// Log appends a row of level stats to the log file, if there is one.
func (h *Hub) Log() {
	if h.logFile == "" {
		return
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	characters, projectiles := h.count()

	err := AppendLog(h.logFile, []interface{}{
		unixMillis(),
		h.frame,
		h.clients.Len,
		h.level.Count(),
		characters,
		projectiles,
		float32(stats.HeapInuse) / 1e6,
	})
	if err != nil {
		log.Println("log error:", err)
	}
}

// AppendLog writes fields as one csv row at the end of filename.
func AppendLog(filename string, fields []interface{}) (err error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)

	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		var fieldString string

		switch v := field.(type) {
		case float32, float64:
			fieldString = fmt.Sprintf("%.2f", v)
		default:
			fieldString = fmt.Sprint(v)
		}

		fieldStrings = append(fieldStrings, fieldString)
	}

	if err = w.Write(fieldStrings); err != nil {
		return
	}

	w.Flush()
	// Error from flush
	return w.Error()
}
