package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/KaramelBytes/eegplot-cli/internal/channels"
	"github.com/KaramelBytes/eegplot-cli/internal/dataset"
	"github.com/KaramelBytes/eegplot-cli/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <csv>",
	Short: "List every column with its detected role and value range",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Load(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		cls := channels.Classify(ds.Names())
		rep := buildReport(ds, cls)
		out := cmd.OutOrStdout()

		if inspectJSON {
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		fmt.Fprintf(out, "%s: %d rows, %d columns\n", ds.Name, ds.Rows, len(ds.Columns))
		writeColumnTable(out, rep.Columns, terminalWidth())
		if !cls.HasTime() {
			fmt.Fprintln(os.Stderr, "⚠ Warning:", channels.ErrNoTimeColumn)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the report as JSON")
}

type columnReport struct {
	Name    string   `json:"name"`
	Role    string   `json:"role,omitempty"`
	Numeric int      `json:"numeric"`
	Missing int      `json:"missing"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Mean    *float64 `json:"mean"`
	Std     *float64 `json:"std"`
}

type datasetReport struct {
	File    string         `json:"file"`
	Rows    int            `json:"rows"`
	Time    string         `json:"time,omitempty"`
	Columns []columnReport `json:"columns"`
}

func buildReport(ds *dataset.Dataset, cls channels.Classification) datasetReport {
	rep := datasetReport{File: ds.Name, Rows: ds.Rows, Time: cls.Time}
	for _, c := range ds.Columns {
		st := c.Stats()
		rep.Columns = append(rep.Columns, columnReport{
			Name:    c.Name,
			Role:    cls.Role(c.Name),
			Numeric: st.Count,
			Missing: st.Missing,
			Min:     finite(st.Min),
			Max:     finite(st.Max),
			Mean:    finite(st.Mean),
			Std:     sampleStd(st),
		})
	}
	return rep
}

// finite maps NaN and Inf to nil so the report stays valid JSON.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// sampleStd is nil until there are two numeric cells.
func sampleStd(st dataset.Stats) *float64 {
	if st.Count < 2 {
		return nil
	}
	return finite(st.Std)
}

const (
	minNameWidth = 8
	statsWidth   = 63
)

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// writeColumnTable prints an aligned table. Names are truncated when the
// table would overflow termWidth; termWidth <= 0 disables truncation.
func writeColumnTable(w io.Writer, cols []columnReport, termWidth int) {
	nameW := utils.Width("COLUMN")
	for _, c := range cols {
		if cw := utils.Width(c.Name); cw > nameW {
			nameW = cw
		}
	}
	if termWidth > 0 && nameW+statsWidth > termWidth {
		nameW = max(minNameWidth, termWidth-statsWidth)
	}

	fmt.Fprintf(w, "%s  %-5s %8s %8s %12s %12s %12s\n", utils.PadRight("COLUMN", nameW), "ROLE", "NUMERIC", "MISSING", "MIN", "MAX", "STD")
	for _, c := range cols {
		role := c.Role
		if role == "" {
			role = "-"
		}
		name := utils.PadRight(utils.Truncate(c.Name, nameW), nameW)
		fmt.Fprintf(w, "%s  %-5s %8d %8d %12s %12s %12s\n", name, role, c.Numeric, c.Missing, fmtNum(c.Min), fmtNum(c.Max), fmtNum(c.Std))
	}
}

func fmtNum(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'g', 6, 64)
}
