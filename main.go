package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ftchann/stableswap-simulator/lib/config"
	"github.com/ftchann/stableswap-simulator/lib/core"
	"github.com/ftchann/stableswap-simulator/lib/logging"
	ent "github.com/ftchann/stableswap-simulator/lib/transaction"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "stableswap-simulator",
		Short:        "Midpoint stableswap pool engine and LP strategy simulator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")
	root.AddCommand(newSimulateCmd(&configPath), newQuoteCmd(&configPath))
	return root
}

func newSimulateCmd(configPath *string) *cobra.Command {
	var (
		transactionsPath string
		outputPath       string
		metricsAddr      string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay transactions against every configured strategy and write the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if transactionsPath != "" {
				cfg.Simulation.Transactions = transactionsPath
			}
			if outputPath != "" {
				cfg.Simulation.Output = outputPath
			}
			log := logging.NewLogger(cfg.LogLevel, "simulator")

			txs, err := ent.Load(cfg.Simulation.Transactions)
			if err != nil {
				return fmt.Errorf("load transactions: %w", err)
			}
			log.Info().Int("transactions", len(txs)).Str("path", cfg.Simulation.Transactions).Msg("loaded transactions")

			reg := prometheus.NewRegistry()
			save, err := runSimulation(cmd.Context(), cfg, txs, log, reg)
			if err != nil {
				return err
			}
			if err := save.Write(cfg.Simulation.Output); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			log.Info().Str("path", cfg.Simulation.Output).Int("runs", len(save.Results)).Msg("result written")

			if metricsAddr == "" {
				return nil
			}
			return serveMetrics(cmd.Context(), metricsAddr, reg)
		},
	}
	cmd.Flags().StringVarP(&transactionsPath, "transactions", "t", "", "transactions file, overrides simulation.transactions")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "result file, overrides simulation.output")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve the run's metrics on this address until interrupted")
	return cmd
}

// serveMetrics exposes reg on /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newQuoteCmd(configPath *string) *cobra.Command {
	var amountX, amountY string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote swaps and a deposit against the configured pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			req, err := cfg.Pool.CreatePoolRequest()
			if err != nil {
				return err
			}
			deployer := types.Principal(cfg.Deployer)
			p, _, err := core.New(deployer, logging.NewLogger(cfg.LogLevel, "core")).CreatePool(deployer, req)
			if err != nil {
				return err
			}
			x, err := config.ParseAmount("amount-x", amountX)
			if err != nil {
				return err
			}
			y, err := config.ParseAmount("amount-y", amountY)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !x.IsZero() {
				dy, err := p.GetDy(x)
				if err != nil {
					return fmt.Errorf("get dy: %w", err)
				}
				fmt.Fprintf(out, "get-dy %s x -> %s y\n", x.Dec(), dy.Dec())
			}
			if !y.IsZero() {
				dx, err := p.GetDx(y)
				if err != nil {
					return fmt.Errorf("get dx: %w", err)
				}
				fmt.Fprintf(out, "get-dx %s y -> %s x\n", y.Dec(), dx.Dec())
			}
			if !x.IsZero() || !y.IsZero() {
				dlp, err := p.GetDlp(x, y)
				if err != nil {
					return fmt.Errorf("get dlp: %w", err)
				}
				fmt.Fprintf(out, "get-dlp %s x + %s y -> %s lp\n", x.Dec(), y.Dec(), dlp.Dec())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&amountX, "amount-x", "x", "0", "X amount in minor units")
	cmd.Flags().StringVarP(&amountY, "amount-y", "y", "0", "Y amount in minor units")
	return cmd
}
