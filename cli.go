package main

import (
	"fmt"
	"io"

	"github.com/nickysemenza/gola"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/robmorgan/choreo/utils"
	"github.com/spf13/cobra"
)

// options holds the flags that override the config file.
type options struct {
	ConfigFile string
	Audio      string
	OSCTarget  string
	OSCListen  string
	DMXAddress string
	Universe   int
	LogLevel   string
	LogFile    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "choreo <choreography>",
		Short: "Practise a choreography against its music",
		Long: `Play a choreography file (JSON or YAML) in step with its music.

Beat cues, section changes and the practice loop can be mirrored to OSC and
to a DMX light through OLA.

Example:
  choreo --audio song.mp3 jump-session.json
  choreo --osc 127.0.0.1:9000 --dmx localhost:9010 jump-session.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, args[0])
		},
	}

	bindFlags(cmd, opts)
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newDMXDumpCommand(opts))

	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.Audio, "audio", "", "mp3 or wav file to play (simulated when empty)")
	cmd.Flags().StringVar(&opts.OSCTarget, "osc", "", "send cues as OSC to host:port")
	cmd.Flags().StringVar(&opts.OSCListen, "osc-listen", "", "accept transport commands over OSC on host:port")
	cmd.Flags().StringVar(&opts.DMXAddress, "dmx", "", "OLA address for DMX output, e.g. localhost:9010")
	cmd.Flags().IntVar(&opts.Universe, "universe", 1, "DMX universe")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "log level")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "choreo.log", "file the log is written to while playing")
}

// loadConfig reads the config file, if any, and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (config.ChoreoConfig, error) {
	cfg := config.NewChoreoConfig()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("audio") {
		cfg.Audio = opts.Audio
	}
	if flags.Changed("osc") {
		cfg.OSC.Target = opts.OSCTarget
	}
	if flags.Changed("osc-listen") {
		cfg.OSC.Listen = opts.OSCListen
	}
	if flags.Changed("dmx") {
		cfg.DMX.Address = opts.DMXAddress
	}
	if flags.Changed("universe") {
		cfg.DMX.Universe = opts.Universe
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.LogFile
	}
	return cfg, cfg.Validate()
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "check <choreography>",
		Short:        "Validate a choreography file and list its sections",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := choreo.Load(args[0])
			if err != nil {
				return err
			}
			tl, err := choreo.NewTimeline(c)
			if err != nil {
				return err
			}
			printTimeline(cmd.OutOrStdout(), tl)
			return nil
		},
	}
}

func printTimeline(w io.Writer, tl *choreo.Timeline) {
	first, last := tl.BeatMap.First(), tl.BeatMap.Last()
	fmt.Fprintf(w, "%s\n", tl.Title)
	fmt.Fprintf(w, "beats %g to %g (%s to %s)\n", first.Domain, last.Domain, utils.FormatClock(first.Range), utils.FormatClock(last.Range))
	for _, s := range tl.Sections {
		fmt.Fprintf(w, "  %-12s beats %g-%g  %s-%s  %s\n", s.Name, s.Start, s.End,
			utils.FormatClock(tl.TimeOfBeat(s.Start)), utils.FormatClock(tl.TimeOfBeat(s.End)), s.RGB.Hex())
	}
}

func newDMXDumpCommand(opts *options) *cobra.Command {
	address := "localhost:9010"

	cmd := &cobra.Command{
		Use:          "dmx-dump",
		Short:        "Print the DMX values OLA holds for a universe",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gola.New(address)
			if err != nil {
				return fmt.Errorf("could not connect to OLA: %w", err)
			}
			defer client.Close()

			x, err := client.GetDmx(opts.Universe)
			if err != nil {
				return fmt.Errorf("GetDmx: %d: %w", opts.Universe, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "GetDmx: %d: %v\n", opts.Universe, x.Data)
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "ola", address, "OLA address")
	cmd.Flags().IntVar(&opts.Universe, "universe", 1, "DMX universe")
	return cmd
}
