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
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/recovery"
	fmtutil "github.com/nullhaus/fat32recover/pkg/util/format"
)

// csvListRow is the gocsv-tagged shape written by `list --csv`.
type csvListRow struct {
	Name         string `csv:"name"`
	Type         string `csv:"type"`
	Size         uint32 `csv:"size_bytes"`
	SizeHuman    string `csv:"size_human"`
	StartCluster uint32 `csv:"starting_cluster"`
}

// DefineListCommand enumerates the live root directory. Opened read-write
// even though it never writes, mirroring the original's -l mode exactly —
// see SPEC_FULL.md §8.2.
func DefineListCommand() *cobra.Command {
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "list <image>",
		Short: "list live entries in the root directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vol, err := openVolume(args[0], ioMode(ioFlag), true)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			entries, err := e.List()
			if err != nil {
				return err
			}

			if csvOut {
				return writeListCSV(entries)
			}
			for _, ent := range entries {
				suffix := ""
				if ent.IsDir {
					suffix = "/"
				}
				fmt.Printf("%s%s (size = %d, starting cluster = %d)\n", ent.Name, suffix, ent.Size, ent.StartCluster)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&csvOut, "csv", false, "emit the listing as CSV instead of plain text")
	return cmd
}

func writeListCSV(entries []recovery.ListEntry) error {
	rows := make([]*csvListRow, len(entries))
	for i, ent := range entries {
		typ := "file"
		if ent.IsDir {
			typ = "dir"
		}
		rows[i] = &csvListRow{
			Name:         ent.Name,
			Type:         typ,
			Size:         ent.Size,
			SizeHuman:    fmtutil.FormatBytes(int64(ent.Size)),
			StartCluster: ent.StartCluster,
		}
	}
	return gocsv.Marshal(rows, os.Stdout)
}
