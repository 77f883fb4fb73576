package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/probe"
)

func newProbeCommand() *cobra.Command {
	var fpsFlag string

	cmd := &cobra.Command{
		Use:   "probe <input_video>",
		Short: "Show source video properties and frame-count estimates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := check.FfprobeAvailable(); err != nil {
				return err
			}

			info, err := probe.Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Resolution", info.Resolution()},
				{"Codec", info.Codec},
				{"Duration", display.FormatDuration(info.Duration)},
				{"Frame rate", display.FormatFPS(info.FPS)},
				{"Size", display.FormatBytes(info.Size)},
				{"Container", info.Format},
			}
			if fpsFlag != "" {
				if fps, err := strconv.ParseFloat(fpsFlag, 64); err == nil && fps > 0 {
					estimate := info.EstimateFrames(0, 0, fps)
					rows = append(rows, []string{
						fmt.Sprintf("Frames at %s fps", fpsFlag),
						fmt.Sprintf("~%d", estimate),
					})
				}
			}

			out := display.RenderTable(
				[]string{"Property", "Value"},
				rows,
				[]display.Alignment{display.AlignLeft, display.AlignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&fpsFlag, "fps", "", "Estimate frame count at this sample rate")
	return cmd
}
