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

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// DigestSize is the length in bytes of the SHA-1 digests this package
// compares against.
const DigestSize = sha1.Size

// Verify reports whether the SHA-1 of data equals target, using a
// constant-time comparison since target typically originates from untrusted
// command-line input.
func Verify(data []byte, target [DigestSize]byte) bool {
	sum := sha1.Sum(data)
	return subtle.ConstantTimeCompare(sum[:], target[:]) == 1
}

// HexToDigest decodes a 40-character hex string into a 20-byte digest.
func HexToDigest(s string) ([DigestSize]byte, error) {
	var out [DigestSize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid hex digest: %w", err)
	}
	if len(b) != DigestSize {
		return out, fmt.Errorf("invalid hex digest: want %d bytes, got %d", DigestSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}
