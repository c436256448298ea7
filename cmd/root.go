package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/KaramelBytes/eegplot-cli/internal/channels"
	"github.com/KaramelBytes/eegplot-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/eegplot-cli/internal/config"
	"github.com/KaramelBytes/eegplot-cli/internal/dataset"
	"github.com/KaramelBytes/eegplot-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Plot flags (override config if set)
	flagOut        string
	flagConvertECG bool
	flagFormat     string
	flagHeight     int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "eegplot <csv>",
	Short: "Plot EEG, ECG and CM channels from a CSV as an interactive HTML chart",
	Long: `eegplot loads a CSV of physiological recordings, detects the time, EEG, ECG
and contact-monitor (CM) columns by name, and writes a two-panel interactive
chart: EEG channels on top, ECG channels and CM below, sharing the time axis.

Text from '#' to the end of a line is ignored.

Examples:
  eegplot "EEG and ECG data_02_raw.csv"
  eegplot recording.csv --out out.html --convert-ecg
  eegplot recording.csv --out snapshot.png --format png`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlot,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.eegplot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.Flags().StringVarP(&flagOut, "out", "o", cfgpkg.DefaultOutput, "output file")
	rootCmd.Flags().BoolVar(&flagConvertECG, "convert-ecg", false, "divide ECG channels by 1000 (µV -> mV)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "output format: html|png|svg|pdf (default html, regardless of the --out extension)")
	rootCmd.Flags().IntVar(&flagHeight, "height", cfgpkg.DefaultHeight, "chart height in pixels")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
}

// applyPlotOverrides layers explicitly set flags over the loaded config.
func applyPlotOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Output = flagOut
	}
	if f.Changed("convert-ecg") {
		cfg.ConvertECG = flagConvertECG
	}
	if f.Changed("height") && flagHeight > 0 {
		cfg.ChartHeight = flagHeight
	}
}

func runPlot(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		loadConfig()
	}
	applyPlotOverrides(cmd)
	out := cmd.OutOrStdout()

	format, err := chart.FormatFor(flagFormat)
	if err != nil {
		return err
	}
	palette, err := chart.ParsePalette(cfg.Palette)
	if err != nil {
		return fmt.Errorf("config palette: %w", err)
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	debugf("loaded %s: %d rows, %d columns", ds.Name, ds.Rows, len(ds.Columns))

	cls := channels.Classify(ds.Names())
	fmt.Fprint(out, cls.Summary())
	if !cls.HasTime() {
		return channels.ErrNoTimeColumn
	}

	fig, err := chart.Build(ds, cls, chart.Options{
		ConvertECG: cfg.ConvertECG,
		Height:     cfg.ChartHeight,
		Palette:    palette,
	})
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}
	debugf("figure: %d EEG traces, %d ECG/CM traces, format %s", fig.TraceCount(chart.PanelEEG), fig.TraceCount(chart.PanelECG), format)

	var buf bytes.Buffer
	err = chart.Render(&buf, fig, format, chart.RenderOptions{
		HTML:   chart.HTMLOptions{Title: ds.Name, PlotlyURL: cfg.PlotlyCDNURL},
		Static: chart.StaticOptions{Width: cfg.StaticWidth, Palette: palette},
	})
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if err := utils.SafeWriteFile(cfg.Output, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if format == chart.FormatHTML {
		fmt.Fprintf(out, "✓ Wrote interactive plot to %s\n", cfg.Output)
	} else {
		fmt.Fprintf(out, "✓ Wrote %s plot to %s\n", format, cfg.Output)
	}
	return nil
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
