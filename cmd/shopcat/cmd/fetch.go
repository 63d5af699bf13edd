package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/shop-catalog-exporter/internal/catalog"
	"github.com/donaldgifford/shop-catalog-exporter/internal/mcp"
	"github.com/donaldgifford/shop-catalog-exporter/pkg/logger"
)

func fetchCmd() *cobra.Command {
	var (
		store       string
		maxProducts int
		output      string
		pageSize    int
		pageDelay   time.Duration
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a store's product catalog once",
		Long: "Connects to the store's MCP endpoint, pages through the full\n" +
			"catalog, and writes the products to a JSON file. A store that\n" +
			"stops answering mid-way still yields the pages collected so far.",
		Example: `  shopcat fetch --store skims.com
  shopcat fetch --store www.example.com --max-products 0
  shopcat fetch --store hexagon.com --max-products 1000 --output hexagon.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, store, maxProducts, output, pageSize, pageDelay, timeout)
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "store domain (e.g. skims.com)")
	cmd.Flags().IntVar(&maxProducts, "max-products", 300,
		"maximum products to fetch (0 for unlimited)")
	cmd.Flags().StringVar(&output, "output", "",
		"output file path (default <store>_catalog.json)")
	cmd.Flags().IntVar(&pageSize, "page-size", 100, "products requested per page")
	cmd.Flags().DurationVar(&pageDelay, "page-delay", 300*time.Millisecond,
		"minimum delay between page requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "per-request timeout")

	return cmd
}

func runFetch(
	cmd *cobra.Command,
	store string,
	maxProducts int,
	output string,
	pageSize int,
	pageDelay time.Duration,
	timeout time.Duration,
) error {
	if store == "" {
		return errors.New("--store is required")
	}

	log := logger.New(viper.GetString("log-level"), viper.GetString("log-format"))

	client := mcp.NewHTTPClient(store,
		mcp.WithTimeout(timeout),
		mcp.WithLogger(log),
	)

	fetcher := catalog.NewFetcher(client,
		catalog.WithPageSize(pageSize),
		catalog.WithMaxProducts(maxProducts),
		catalog.WithPageDelay(pageDelay),
		catalog.WithFetcherLogger(log),
	)

	if output == "" {
		output = catalog.DefaultOutputPath(store)
	}

	fmt.Printf("Connecting to %s...\n", store)

	result, err := fetcher.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s: %w", store, err)
	}

	if err := catalog.WriteCatalog(output, result.Products); err != nil {
		return err
	}

	fmt.Printf("Total: %d products (%d pages, %s)\n",
		len(result.Products), result.PagesUsed, result.StoppedAt)
	fmt.Printf("Saved to %s\n", output)

	return nil
}
