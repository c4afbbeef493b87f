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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/recovery"
)

// DefineRecoverAllCommand implements Mode 3's by-name variant: every
// tombstone whose reconstructed name matches is recovered, not just the
// first.
func DefineRecoverAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recover-all <image> <name>",
		Short: "recover every deleted file matching a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, name := args[0], args[1]

			if err := recovery.ValidateRequest(name, "", false); err != nil {
				return err
			}

			vol, err := openVolume(imagePath, ioMode(ioFlag), true)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			result, bulkErr := e.RecoverAllByName(name)
			if bulkErr != nil {
				log.Warnf("some candidates failed during recovery: %v", bulkErr)
			}

			if result.Count == 0 {
				fmt.Printf("%s: file not found\n", result.Name)
				return nil
			}
			fmt.Printf("%s: %d file(s) recovered\n", result.Name, result.Count)
			return nil
		},
	}
}
