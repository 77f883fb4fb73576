package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/term"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run system diagnostics (ffmpeg, ffprobe, image encoders)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.NewLogger(term.ColorAuto, "")
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner()
			if !check.RunCheck(log) {
				return errors.New("system check failed")
			}
			return nil
		},
	}
}
