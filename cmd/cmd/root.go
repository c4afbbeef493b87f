package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nullhaus/fat32recover/internal/logger"
)

const AppName = "fat32recover"

var ioFlag string

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - FAT32 deleted-file recovery utility",
	}
	rootCmd.PersistentFlags().StringVar(&ioFlag, "io", string(ioFile),
		"backing I/O mechanism: file, mmap, or memory")
	rootCmd.PersistentFlags().BoolVarP(new(bool), "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log = logger.New(os.Stderr, logger.DebugLevel)
		}
	}

	rootCmd.AddCommand(DefineInfoCommand())
	rootCmd.AddCommand(DefineListCommand())
	rootCmd.AddCommand(DefineRecoverCommand())
	rootCmd.AddCommand(DefineRecoverFragmentedCommand())
	rootCmd.AddCommand(DefineRecoverAllCommand())
	rootCmd.AddCommand(DefineRecoverDeletedCommand())
	rootCmd.AddCommand(DefineMountCommand())

	return rootCmd.Execute()
}
