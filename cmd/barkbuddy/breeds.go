package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var breedsNamesOnly bool

var breedsCmd = &cobra.Command{
	Use:   "breeds",
	Short: "Show the breed reference list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if breedsNamesOnly {
			names, err := cli.client.BreedNames(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cli.view.Out, n)
			}
			return nil
		}

		rows, err := cli.client.Breeds(cmd.Context())
		if err != nil {
			return err
		}
		cli.view.Breeds(rows)
		return nil
	},
}

func init() {
	breedsCmd.Flags().BoolVar(&breedsNamesOnly, "names", false, "print only the breed names")
}
