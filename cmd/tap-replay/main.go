// Command tap-replay replays recorded input through gesture recognizers and prints what they
// recognize.
//
// A scene file describes an element tree, the gestures bound to its elements, and a trace of
// input events. The trace is replayed on a virtual clock, so repeating gestures fire exactly
// when they would have fired live.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"honnef.co/go/tap/config"
	"honnef.co/go/tap/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile  string
		settings config.Settings
		logger   = zap.NewNop()
	)
	root := &cobra.Command{
		Use:          "tap-replay",
		Short:        "Replay recorded input through gesture recognizers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(viper.New(), cfgFile)
			if err != nil {
				return err
			}
			settings = s
			logger = logging.New(s.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./tap.yaml)")

	var (
		asJSON bool
		until  time.Duration
	)
	replay := &cobra.Command{
		Use:   "replay <scene.json>",
		Short: "Replay a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			scene, err := ParseScene(data)
			if err != nil {
				return err
			}
			logger.Debug("replaying scene",
				zap.String("scene", args[0]),
				zap.Int("elements", len(scene.Elements)),
				zap.Int("events", len(scene.Events)),
				zap.Duration("double_click_threshold", settings.DoubleClickThreshold))

			p := &printer{w: cmd.OutOrStdout(), json: asJSON}
			if err := Replay(scene, settings, until, logger, p.print); err != nil {
				return fmt.Errorf("couldn't replay %s: %w", args[0], err)
			}
			return p.err
		},
	}
	replay.Flags().BoolVar(&asJSON, "json", false, "print notifications as JSON lines")
	replay.Flags().DurationVar(&until, "until", 0, "keep the clock running until this time after the start of the trace")
	root.AddCommand(replay)
	return root
}
