package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aftersol/go-qoi"
)

// logger is shared by every subcommand. The codec core itself never logs --
// only this CLI boundary does.
var logger *zap.SugaredLogger

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "qoiconv",
		Short: "Convert images to and from the Quite OK Image Format",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			qoi.RegisterFormat()

			cfg := zap.NewProductionConfig()
			if verbose {
				cfg = zap.NewDevelopmentConfig()
			}
			base, err := cfg.Build()
			if err != nil {
				return err
			}
			logger = base.Sugar()
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode logging")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newInfoCmd())
	return root
}
