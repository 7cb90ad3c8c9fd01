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

package progressutil

import (
	"bytes"
	"io"
	"testing"
)

func TestCountingReaderReportsTotal(t *testing.T) {
	data := []byte("this is a test!")
	var lastTotal int64
	calls := 0
	cr := &CountingReader{
		R: bytes.NewReader(data),
		OnRead: func(total int64) {
			calls++
			lastTotal = total
		},
	}

	got, err := io.ReadAll(cr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
	if calls == 0 {
		t.Fatal("OnRead was never called")
	}
	if lastTotal != int64(len(data)) {
		t.Errorf("got total %d, want %d", lastTotal, len(data))
	}
}

func TestByteUnitStr(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{1048576, "1.0MiB"},
	}
	for _, tt := range tests {
		if got := ByteUnitStr(tt.in); got != tt.want {
			t.Errorf("ByteUnitStr(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
