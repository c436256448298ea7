package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/eegplot-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/eegplot-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set eegplot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		path, _ := cfgpkg.Path(cfgFile)
		fmt.Fprintf(out, "config_file: %s\n", path)
		fmt.Fprintf(out, "output: %s\n", cfg.Output)
		fmt.Fprintf(out, "convert_ecg: %t\n", cfg.ConvertECG)
		fmt.Fprintf(out, "plotly_cdn_url: %s\n", cfg.PlotlyCDNURL)
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(out, "static_width: %d\n", cfg.StaticWidth)
		if len(cfg.Palette) > 0 {
			fmt.Fprintf(out, "palette: %s\n", strings.Join(cfg.Palette, ","))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Keys: output, convert_ecg, plotly_cdn_url, chart_height, static_width, palette.
palette takes a comma-separated list of CSS colors; an empty value resets it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output":
			if strings.TrimSpace(val) == "" {
				return fmt.Errorf("output must not be empty")
			}
			cfg.Output = val
		case "convert_ecg":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for convert_ecg: %v", val)
			}
			cfg.ConvertECG = b
		case "plotly_cdn_url":
			cfg.PlotlyCDNURL = val
		case "chart_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for chart_height: %v", val)
			}
			cfg.ChartHeight = i
		case "static_width":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for static_width: %v", val)
			}
			cfg.StaticWidth = i
		case "palette":
			specs := splitList(val)
			if _, err := chart.ParsePalette(specs); err != nil {
				return fmt.Errorf("invalid palette: %w", err)
			}
			cfg.Palette = specs
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList splits on commas outside parentheses so rgb(...) entries survive.
func splitList(s string) []string {
	out := []string{}
	depth, start := 0, 0
	flush := func(end int) {
		if p := strings.TrimSpace(s[start:end]); p != "" {
			out = append(out, p)
		}
	}
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return out
}
