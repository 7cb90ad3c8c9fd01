// Copyright 2016 CoreOS Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progressutil reports progress while copying from an io.Reader,
// for CLI tools that read whole files into memory before processing them.
package progressutil

import (
	"io"
	"strconv"
)

// CountingReader wraps an io.Reader and invokes OnRead after every
// successful Read with the running total of bytes read so far.
type CountingReader struct {
	R      io.Reader
	Total  int64
	OnRead func(total int64)
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	if n > 0 {
		c.Total += int64(n)
		if c.OnRead != nil {
			c.OnRead(c.Total)
		}
	}
	return n, err
}

// ByteUnitStr renders a byte count using the usual binary-prefix units
// (KiB, MiB, ...), truncated to one decimal place.
func ByteUnitStr(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + "B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	units := "KMGTPE"
	whole := n / div
	frac := (n % div) * 10 / div
	return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(frac, 10) + string(units[exp]) + "iB"
}
