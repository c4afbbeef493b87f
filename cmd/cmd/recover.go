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
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/recovery"
)

// DefineRecoverCommand implements Mode 1 (no digest) and the contiguous
// submode of Mode 2 (digest supplied): recover a single deleted file by its
// reconstructed name.
func DefineRecoverCommand() *cobra.Command {
	var sha1Hex string

	cmd := &cobra.Command{
		Use:   "recover <image> <name>",
		Short: "recover a single deleted file by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, name := args[0], args[1]

			if err := recovery.ValidateRequest(name, sha1Hex, false); err != nil {
				return err
			}

			vol, err := openVolume(imagePath, ioMode(ioFlag), true)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			result, err := e.RecoverOne(name, sha1Hex)
			if err != nil {
				var rerr *recovery.Error
				if errors.As(err, &rerr) && rerr.Kind == recovery.AmbiguousCandidates {
					fmt.Printf("%s: multiple candidates found\n", name)
					return nil
				}
				return err
			}

			printSingleResult(result)
			printAmbiguousNotice(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&sha1Hex, "sha1", "", "verify content against this SHA-1 digest before recovering")
	return cmd
}

func printSingleResult(result *recovery.SingleResult) {
	switch {
	case !result.Recovered:
		fmt.Printf("%s: file not found\n", result.Name)
	case result.WithDigest:
		fmt.Printf("%s: successfully recovered with SHA-1\n", result.Name)
	default:
		fmt.Printf("%s: successfully recovered\n", result.Name)
	}
}

// printAmbiguousNotice reports, on stdout, that more than one candidate
// matched when the non-strict policy recovered the first one anyway.
func printAmbiguousNotice(result *recovery.SingleResult) {
	if result.Ambiguous && result.Recovered {
		fmt.Printf("%s: multiple candidates found\n", result.Name)
	}
}
