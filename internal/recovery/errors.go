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
package recovery

import "fmt"

// Kind classifies a recovery-engine failure so cmd/cmd can decide exit
// status and wording without string-matching error messages.
type Kind int

const (
	// UsageError: empty filename, invalid hex digest, missing required
	// digest for permutation mode, multiple modes selected. Surfaced to
	// stderr before any image I/O happens.
	UsageError Kind = iota
	// RecoveryNotFound: no candidate matches. Non-fatal, reported on
	// stdout, exit zero.
	RecoveryNotFound
	// AmbiguousCandidates: more than one match. Non-fatal; first candidate
	// is recovered and a warning is emitted, unless strict mode is on.
	AmbiguousCandidates
	// PermutationUnresolved: the file spans more clusters than the
	// permutation bound allows. Treated identically to RecoveryNotFound by
	// callers. A search within the bound that finds no matching permutation
	// returns an unrecovered result rather than this kind.
	PermutationUnresolved
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "UsageError"
	case RecoveryNotFound:
		return "RecoveryNotFound"
	case AmbiguousCandidates:
		return "AmbiguousCandidates"
	case PermutationUnresolved:
		return "PermutationUnresolved"
	default:
		return "UnknownError"
	}
}

// Error pairs a Kind with a message, wrapping an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}
