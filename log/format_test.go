// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"math/rand/v2"
	"testing"
)

var sink []byte

func BenchmarkPrettyInt64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendInt64(buf, rand.Int64()) //#nosec G404
	}
}

func BenchmarkPrettyUint64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}

func TestPrettyUint64(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{99999, "99999"},
		{100000, "100,000"},
		{1000000, "1,000,000"},
		{187654321, "187,654,321"},
	}
	for _, tt := range tests {
		if got := FormatLogfmtUint64(tt.n); got != tt.want {
			t.Errorf("FormatLogfmtUint64(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestEscapeMessage(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"plain", "plain"},
		{"has space", "has space"},
		{"multi\nline", "multi\nline"},
		{"key=value", `"key=value"`},
		{"ctrl\x01char", `"ctrl\x01char"`},
	}
	for _, tt := range tests {
		if got := escapeMessage(tt.s); got != tt.want {
			t.Errorf("escapeMessage(%q) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
