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
	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/fuse"
	"github.com/nullhaus/fat32recover/internal/recovery"
)

// DefineMountCommand exposes the live root directory through a read-only
// FUSE mount, for browsing what a recovery run would operate on without
// copying anything out first. Deleted entries never appear here — the FAT
// chain for a tombstoned file is gone until it is recovered.
func DefineMountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mount <image> <mountpoint>",
		Short: "mount the live root directory read-only over FUSE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, mountpoint := args[0], args[1]

			vol, err := openVolume(imagePath, ioMode(ioFlag), false)
			if err != nil {
				return err
			}
			defer vol.Close()

			e := recovery.New(vol, recovery.DefaultOptions())
			listing, err := e.List()
			if err != nil {
				return err
			}

			var entries []fuse.FileEntry
			for _, ent := range listing {
				if ent.IsDir {
					continue
				}
				entries = append(entries, fuse.FileEntry{
					Name:   ent.Name,
					Offset: uint64(vol.ClusterOffset(ent.StartCluster)),
					Size:   uint64(ent.Size),
				})
			}

			return fuse.Mount(mountpoint, vol.Backing(), entries)
		},
	}
}
