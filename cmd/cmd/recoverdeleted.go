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

// DefineRecoverDeletedCommand implements Mode 3's sweep variant: every
// tombstoned entry in the root directory is recovered, not just ones
// matching a name.
func DefineRecoverDeletedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recover-deleted <image>",
		Short: "recover every deleted file in the root directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vol, err := openVolume(args[0], ioMode(ioFlag), true)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			result, err := e.RecoverAllDeleted()
			if err != nil {
				log.Warnf("some candidates failed during recovery: %v", err)
			}

			if len(result.Files) == 0 {
				fmt.Println("No deleted files were found.")
				return nil
			}

			for _, f := range result.Files {
				fmt.Printf("%s: recovered\n", f.Name)
			}
			fmt.Printf("Successfully recovered %d file(s)\n", len(result.Files))
			return nil
		},
	}
}
