package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/strikepick/strikepick/src/dbutils"
	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/selector"
	"github.com/strikepick/strikepick/src/services"
	"github.com/strikepick/strikepick/src/sink"
	"github.com/strikepick/strikepick/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "select_contract",
	Short: "Select the best option contract for a ticker and side",
	Run: func(cmd *cobra.Command, args []string) {
		ticker, _ := cmd.Flags().GetString("ticker")
		side, _ := cmd.Flags().GetString("side")
		optionType, _ := cmd.Flags().GetString("type")
		minDTE, _ := cmd.Flags().GetInt("dte-min")
		maxDTE, _ := cmd.Flags().GetInt("dte-max")
		policyFile, _ := cmd.Flags().GetString("policy")
		asJSON, _ := cmd.Flags().GetBool("json")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := run(ticker, side, optionType, minDTE, maxDTE, policyFile, asJSON, dryRun); err != nil {
			log.Fatalf("select_contract: %v", err)
		}
	},
}

func run(ticker, side, optionType string, minDTE, maxDTE int, policyFile string, asJSON, dryRun bool) error {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("run: %v", err)
	}

	policy := models.DefaultSelectionPolicy()
	if policyFile != "" {
		loaded, err := models.LoadSelectionPolicy(policyFile)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		policy = loaded
	}

	token, err := utils.GetEnv("TRADIER_BEARER_TOKEN")
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fetcher := services.NewTradierChainFetcher(
		os.Getenv("TRADIER_CHAIN_URL"),
		os.Getenv("TRADIER_EXPIRATIONS_URL"),
		os.Getenv("TRADIER_QUOTES_URL"),
		token,
	)

	now := time.Now().UTC()

	marketOpen, err := services.IsMarketOpen(now)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	currentPrice, err := fetcher.FetchUnderlyingPrice(ticker)
	if err != nil {
		// outside market hours fall back to polygon's previous close
		apiKey := os.Getenv("POLYGON_API_KEY")
		if marketOpen || apiKey == "" {
			return fmt.Errorf("run: %w", err)
		}

		polygonFetcher := services.NewPolygonPriceFetcher(apiKey)
		currentPrice, err = polygonFetcher.FetchPreviousClose(context.Background(), ticker)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	chain, err := fetcher.FetchChainSnapshot(ticker, minDTE, maxDTE, now)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var recordSink selector.RecordSink
	if dryRun {
		recordSink = sink.NewMemorySink()
	} else {
		dbURL, err := utils.GetEnv("DATABASE_URL")
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		db, err := dbutils.InitPostgresWithUrl(dbURL)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		pgSink := sink.NewPostgresSink(db, 0)
		defer pgSink.Close(5 * time.Second)

		recordSink = pgSink
	}

	req := &models.SelectionRequest{
		Ticker:       strings.ToUpper(ticker),
		Side:         models.Side(side),
		CurrentPrice: currentPrice,
		OptionType:   models.OptionType(optionType),
		MinDTE:       minDTE,
		MaxDTE:       maxDTE,
		MarketOpen:   marketOpen,
		Timestamp:    now,
	}

	result, err := selector.NewContractSelector(policy, recordSink).Select(context.Background(), req, chain)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("run: marshal result: %w", err)
		}

		fmt.Println(string(data))
		return nil
	}

	printResult(result)
	return nil
}

func printResult(result *models.SelectionResult) {
	p := message.NewPrinter(language.English)

	if !result.Selected {
		fmt.Printf("No eligible contract for %s (%s %s)\n", result.Ticker, result.Side, result.OptionType)
	} else {
		description, err := result.OptionSymbol.Description()
		if err != nil {
			description = string(result.OptionSymbol)
		}

		fmt.Printf("Selected %s\n", description)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAlignment(tablewriter.ALIGN_CENTER)
		table.SetHeader([]string{"Field", "Value"})
		table.Append([]string{"Symbol", string(result.OptionSymbol)})
		table.Append([]string{"Strike", p.Sprintf("$%.2f", result.Strike)})
		table.Append([]string{"DTE", fmt.Sprintf("%d", result.DTE)})
		table.Append([]string{"Price", p.Sprintf("$%.2f", result.Price)})
		table.Append([]string{"Max Price", p.Sprintf("$%.2f", result.MaxPrice)})
		table.Append([]string{"ATM Distance", fmt.Sprintf("%.2f%%", result.StrikeDistancePct)})
		table.Append([]string{"Volume", p.Sprintf("%d", result.Volume)})
		table.Append([]string{"Open Interest", p.Sprintf("%d", result.OpenInterest)})
		table.Append([]string{"Price Source", string(result.PriceSource)})
		table.Append([]string{"Selection Time", fmt.Sprintf("%dms", result.SelectionTimeMs)})
		table.Render()
	}

	fmt.Println("\nFilter funnel:")

	funnel := tablewriter.NewWriter(os.Stdout)
	funnel.SetHeader([]string{"Stage", "Dropped"})
	funnel.Append([]string{"total", fmt.Sprintf("%d", result.FilterStats.Total)})
	for _, sc := range result.FilterStats.OrderedCounts() {
		funnel.Append([]string{string(sc.Stage), fmt.Sprintf("%d", sc.Count)})
	}
	funnel.Append([]string{"passed", fmt.Sprintf("%d", result.FilterStats.Passed)})
	funnel.Render()

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}

func main() {
	rootCmd.Flags().String("ticker", "", "underlying ticker (required)")
	rootCmd.Flags().String("side", "buy", "trade direction: buy or sell")
	rootCmd.Flags().String("type", "call", "option type: call or put")
	rootCmd.Flags().Int("dte-min", 20, "minimum days to expiry")
	rootCmd.Flags().Int("dte-max", 45, "maximum days to expiry")
	rootCmd.Flags().String("policy", "", "selection policy yaml file")
	rootCmd.Flags().Bool("json", false, "print the raw selection result as json")
	rootCmd.Flags().Bool("dry-run", false, "skip the audit database, keep records in memory")

	rootCmd.MarkFlagRequired("ticker")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
