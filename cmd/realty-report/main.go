package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/realtydash/realty-dashboard/internal/engine"
	"github.com/realtydash/realty-dashboard/internal/store"
	"github.com/realtydash/realty-dashboard/pkg/constants"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
	"github.com/realtydash/realty-dashboard/pkg/output"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding per-user data files")
	username := flag.String("user", "", "username whose ledger to report on")
	at := flag.String("at", "", "reference date in YYYY-MM-DD format (defaults to today)")
	outputFormat := flag.String("output-format", constants.OutputFormatPretty, "output format (pretty or csv)")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "missing required flag -user")
		os.Exit(1)
	}
	if *outputFormat != constants.OutputFormatPretty && *outputFormat != constants.OutputFormatCSV {
		fmt.Fprintf(os.Stderr, "invalid output format %s\n", *outputFormat)
		os.Exit(1)
	}

	ref := time.Now()
	if *at != "" {
		parsed, err := datetime.ParseDay(*at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid reference date %s: %v\n", *at, err)
			os.Exit(1)
		}
		ref = parsed
	}

	st, err := store.NewFileStore(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open data directory %s: %v\n", *dataDir, err)
		os.Exit(1)
	}

	data, err := st.Load(*username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load data for %s: %v\n", *username, err)
		os.Exit(1)
	}

	periods := engine.SummarizePeriods(data.Transactions, data.Settings, ref)
	report := output.Report{
		Username:      *username,
		ReferenceDate: ref.Format(constants.DateLayout),
		Metrics:       engine.ComputeMetrics(data.Transactions, data.Settings),
		MonthlySeries: engine.BuildMonthlySeries(data.Transactions, data.Settings),
		Breakdown:     engine.BuildCategoryBreakdown(data.Transactions),
		Forecast:      engine.ProjectForward(data.Transactions, data.Settings, ref),
		Periods:       periods,
		Goal:          engine.MeasureGoal(periods.Month, data.Settings),
	}

	switch *outputFormat {
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	default:
		output.PrettyFormat(report)
	}
}
