package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/yumyai/hitview/pkg/model"
	"github.com/yumyai/hitview/pkg/pipeline"
)

// Query runs the hit selection for one stored analysis and writes it to w,
// as a table or as the JSON view.
func Query(ctx context.Context, app *App, w io.Writer, id string, q pipeline.Query, asJSON bool) error {
	a, err := app.Store.Get(ctx, id)
	if err != nil {
		return err
	}

	view := app.Pipeline.Run(a, q)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	return writeTable(w, a.Family(), view)
}

func writeTable(w io.Writer, family model.Family, view pipeline.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch family.Name() {
	case model.AlgorithmNuVs:
		fmt.Fprintln(tw, "\tID\tE\tORFS\tLENGTH\tFAMILIES")
		for _, r := range view.Matches {
			n, _ := r.SequenceLength()
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%v\n",
				activeMark(r, view.Active), r.ID, floatCell(r.E), intCell(r.AnnotatedOrfCount), n, []string(r.Families))
		}
	default:
		fmt.Fprintln(tw, "\tID\tNAME\tWEIGHT\tDEPTH\tCOVERAGE")
		for _, r := range view.Matches {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				activeMark(r, view.Active), r.ID, r.Name, floatCell(r.Pi), floatCell(r.Depth), floatCell(r.Coverage))
		}
	}

	fmt.Fprintf(tw, "\n%d of %d hits\n", len(view.Matches), view.Total)
	return tw.Flush()
}

func activeMark(r, active *model.AnalysisResult) string {
	if r == active {
		return "*"
	}
	return ""
}

func floatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 4, 64)
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
