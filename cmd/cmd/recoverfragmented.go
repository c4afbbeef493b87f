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

// DefineRecoverFragmentedCommand implements the non-contiguous permutation
// submode of Mode 2: a SHA-1 digest is mandatory, since without one there is
// no way to pick the right cluster ordering out of k! candidates.
func DefineRecoverFragmentedCommand() *cobra.Command {
	var (
		sha1Hex         string
		maxFragments    int
		freeScanLimit   uint32
		strictAmbiguous bool
	)

	cmd := &cobra.Command{
		Use:   "recover-fragmented <image> <name>",
		Short: "recover a deleted file that may be spread across non-contiguous clusters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, name := args[0], args[1]

			if err := recovery.ValidateRequest(name, sha1Hex, true); err != nil {
				return err
			}

			vol, err := openVolume(imagePath, ioMode(ioFlag), true)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := newEngine(vol, maxFragments, freeScanLimit, strictAmbiguous)
			result, err := e.RecoverPossiblyFragmented(name, sha1Hex)
			if err != nil {
				var rerr *recovery.Error
				if errors.As(err, &rerr) {
					switch rerr.Kind {
					case recovery.AmbiguousCandidates:
						fmt.Printf("%s: multiple candidates found\n", name)
						return nil
					case recovery.PermutationUnresolved:
						fmt.Printf("%s: file not found\n", name)
						return nil
					}
				}
				return err
			}

			printSingleResult(result)
			printAmbiguousNotice(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&sha1Hex, "sha1", "", "SHA-1 digest to verify reassembled content against (required)")
	cmd.Flags().IntVar(&maxFragments, "max-clusters", recovery.DefaultMaxFragments, "maximum number of clusters a fragmented file may span")
	cmd.Flags().Uint32Var(&freeScanLimit, "free-scan-limit", recovery.DefaultFreeScanLimit, "upper bound of the free-cluster scan window, starting at cluster 2")
	cmd.Flags().BoolVar(&strictAmbiguous, "strict-ambiguous", false, "refuse to recover when more than one candidate verifies, instead of recovering the first and warning")
	return cmd
}
