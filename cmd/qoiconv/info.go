package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Aftersol/go-qoi"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <in.qoi>",
		Short: "Print a QOI file's header without decoding pixel data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			f, err := os.Open(in)
			if err != nil {
				return errors.Wrap(err, "qoiconv info")
			}
			defer f.Close()

			header := make([]byte, qoi.HeaderSize)
			if _, err := io.ReadFull(f, header); err != nil {
				return errors.Wrapf(err, "qoiconv info: reading %s", in)
			}
			desc, err := qoi.ReadHeader(header)
			if err != nil {
				return errors.Wrapf(err, "qoiconv info: %s", in)
			}

			fmt.Printf("%s: %dx%d, %d channels, colorspace %d\n", in, desc.Width, desc.Height, desc.Channels, desc.Colorspace)
			return nil
		},
	}
	return cmd
}
