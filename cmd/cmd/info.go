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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/recovery"
)

// DefineInfoCommand reports volume geometry. Opened read-only: info never
// needs to write, mirroring the original's -i mode.
func DefineInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "print FAT32 volume geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vol, err := openVolume(args[0], ioMode(ioFlag), false)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			info := e.Info()

			fmt.Printf("FAT copies:          %d\n", info.FATCount)
			fmt.Printf("Bytes per sector:     %d (%s)\n", info.BytesPerSector, humanize.Bytes(uint64(info.BytesPerSector)))
			fmt.Printf("Sectors per cluster:  %d\n", info.SectorsPerCluster)
			clusterBytes := uint64(info.BytesPerSector) * uint64(info.SectorsPerCluster)
			fmt.Printf("Cluster size:         %s\n", humanize.Bytes(clusterBytes))
			fmt.Printf("Reserved sectors:     %d\n", info.ReservedSectors)
			fmt.Printf("Root cluster:         %d\n", info.RootCluster)
			return nil
		},
	}
}
