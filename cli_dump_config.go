// cli_dump_config.go - "dump-config" subcommand

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Construct a reset config space and hex-dump it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := NewConfigSpace()

		for offset := uint16(0); offset < AERCapEnd; offset += 16 {
			fmt.Printf("%04x  ", offset)
			for i := uint16(0); i < 16; i++ {
				if uint32(offset)+uint32(i) >= ConfigSpaceSize {
					break
				}
				fmt.Printf("%02x ", cs.ConfigRead(offset+i, 1))
			}
			fmt.Println()
		}

		fmt.Printf("\ncommand_register() = 0x%04x\n", cs.CommandRegister())
		fmt.Printf("expansion_rom_enabled() = %v\n", cs.ExpansionROMEnabled())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpConfigCmd)
}
