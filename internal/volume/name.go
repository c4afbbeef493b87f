// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package volume

import "strings"

// DecodeName reconstructs a NAME.EXT string from an 11-byte short-name
// record, substituting firstChar for raw[0]. Used on tombstoned slots, where
// raw[0] is 0xE5 and the caller supplies a hypothesized original character.
// Unlike DisplayName, embedded spaces are dropped but non-printable bytes
// are kept verbatim — a tombstone is matched against the bytes actually on
// disk, not a cosmetic rendering of them.
func DecodeName(raw [11]byte, firstChar byte) string {
	return buildName(raw, firstChar, false)
}

// DisplayName renders a live (non-tombstoned) short-name record for
// listing, taking the first character from raw[0] and additionally
// dropping non-printable bytes (< 0x20) anywhere in the name.
func DisplayName(raw [11]byte) string {
	return buildName(raw, raw[0], true)
}

func buildName(raw [11]byte, firstChar byte, filterNonPrintable bool) string {
	var b strings.Builder
	b.Grow(12)

	keep := func(c byte) bool {
		return !filterNonPrintable || printable(c)
	}

	if keep(firstChar) {
		b.WriteByte(firstChar)
	}
	for i := 1; i < 8; i++ {
		if raw[i] == ' ' {
			continue
		}
		if keep(raw[i]) {
			b.WriteByte(raw[i])
		}
	}
	if raw[8] != ' ' {
		b.WriteByte('.')
		for i := 8; i < 11; i++ {
			if raw[i] == ' ' {
				continue
			}
			if keep(raw[i]) {
				b.WriteByte(raw[i])
			}
		}
	}
	return b.String()
}

func printable(c byte) bool {
	return c >= 0x20
}

// NameMatches reports whether a tombstoned slot's reconstructed name equals
// target under byte-exact comparison, substituting target[0] for the
// tombstoned leading byte as DecodeName does. Comparison is case-sensitive:
// the on-disk bytes are compared verbatim against whatever case the caller
// supplied.
func NameMatches(raw [11]byte, target string) bool {
	if len(target) == 0 {
		return false
	}
	return DecodeName(raw, target[0]) == target
}
