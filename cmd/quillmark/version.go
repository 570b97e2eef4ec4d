package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillmark-go/quillmark/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quillmark build version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Println(version.String())

			return err
		},
	}
}
