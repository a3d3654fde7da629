package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strikepick/strikepick/src/dbutils"
	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/sink"
	"github.com/strikepick/strikepick/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize selection quality from the audit log",
	Run: func(cmd *cobra.Command, args []string) {
		ticker, _ := cmd.Flags().GetString("ticker")
		days, _ := cmd.Flags().GetInt("days")
		csvPath, _ := cmd.Flags().GetString("csv")

		if err := run(ticker, days, csvPath); err != nil {
			log.Fatalf("report: %v", err)
		}
	},
}

type recordCSV struct {
	Timestamp         string  `csv:"timestamp"`
	Ticker            string  `csv:"ticker"`
	Side              string  `csv:"side"`
	Selected          bool    `csv:"selected"`
	OptionSymbol      string  `csv:"option_symbol"`
	Strike            float64 `csv:"strike"`
	DTE               int     `csv:"dte"`
	Price             float64 `csv:"price"`
	StrikeDistancePct float64 `csv:"strike_distance_pct"`
	PriceSource       string  `csv:"price_source"`
	SelectionTimeMs   int64   `csv:"selection_time_ms"`
}

func run(ticker string, days int, csvPath string) error {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("run: %v", err)
	}

	dbURL, err := utils.GetEnv("DATABASE_URL")
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	db, err := dbutils.InitPostgresWithUrl(dbURL)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	var records []models.SelectionRecord
	if ticker != "" {
		records, err = sink.RecordsByTicker(db, ticker, from, to)
	} else {
		records, err = sink.RecordsByTimeRange(db, from, to)
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("no selection records in window")
		return nil
	}

	printSummary(records)

	if csvPath != "" {
		if err := exportCSV(records, csvPath); err != nil {
			return fmt.Errorf("run: %w", err)
		}

		fmt.Printf("exported %d records to %s\n", len(records), csvPath)
	}

	return nil
}

func printSummary(records []models.SelectionRecord) {
	var distances, spreads, times []float64
	selected := 0

	for _, r := range records {
		times = append(times, float64(r.SelectionTimeMs))

		if !r.Selected {
			continue
		}

		selected++
		distances = append(distances, r.StrikeDistancePct)

		if r.SpreadPct != nil {
			spreads = append(spreads, *r.SpreadPct)
		}
	}

	fmt.Printf("%d selection calls, %d selected, %d empty\n\n", len(records), selected, len(records)-selected)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Mean", "Median", "P90"})
	table.Append(statRow("atm distance %", distances))
	table.Append(statRow("spread %", spreads))
	table.Append(statRow("selection ms", times))
	table.Render()
}

func statRow(name string, data []float64) []string {
	if len(data) == 0 {
		return []string{name, "-", "-", "-"}
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)

	return []string{
		name,
		fmt.Sprintf("%.2f", mean),
		fmt.Sprintf("%.2f", median),
		fmt.Sprintf("%.2f", p90),
	}
}

func exportCSV(records []models.SelectionRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exportCSV: %w", err)
	}

	defer file.Close()

	rows := make([]recordCSV, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordCSV{
			Timestamp:         r.Timestamp.Format(time.RFC3339),
			Ticker:            r.Ticker,
			Side:              r.Side,
			Selected:          r.Selected,
			OptionSymbol:      r.OptionSymbol,
			Strike:            r.Strike,
			DTE:               r.DTE,
			Price:             r.Price,
			StrikeDistancePct: r.StrikeDistancePct,
			PriceSource:       r.PriceSource,
			SelectionTimeMs:   r.SelectionTimeMs,
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("exportCSV: %w", err)
	}

	return nil
}

func main() {
	rootCmd.Flags().String("ticker", "", "limit the report to one ticker")
	rootCmd.Flags().Int("days", 7, "lookback window in days")
	rootCmd.Flags().String("csv", "", "export the raw records to a csv file")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
