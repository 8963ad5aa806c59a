// cli_rom.go - "rom" subcommand: build a synthetic Expansion ROM image
// and show where decode_bar places it.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyfloac/softgpu/internal/biosrom"
)

var romOutPath string

var romCmd = &cobra.Command{
	Use:   "rom",
	Short: "Build a synthetic Expansion ROM image and write it to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := biosrom.Build(64, 64, 32*1024)
		if err != nil {
			return fmt.Errorf("building rom image: %w", err)
		}
		if err := os.WriteFile(romOutPath, image, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", romOutPath, err)
		}

		cs := NewConfigSpace()
		cs.ConfigWrite(OffsetExpansionROM, 4, 0xC0000001)
		fmt.Printf("wrote %d bytes to %s\n", len(image), romOutPath)
		fmt.Printf("expansion_rom_enabled() = %v\n", cs.ExpansionROMEnabled())
		fmt.Printf("decode_bar(0xC0000000) = 0x%02x\n", cs.DecodeBAR(0xC0000000))
		return nil
	},
}

func init() {
	romCmd.Flags().StringVar(&romOutPath, "out", "softgpu.rom", "output file path")
	rootCmd.AddCommand(romCmd)
}
