package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fulfillcalc/internal/cartfile"
	"fulfillcalc/internal/config"
	"fulfillcalc/internal/logging"
	"fulfillcalc/internal/pricing"
	"fulfillcalc/internal/rate"
	"fulfillcalc/internal/server"
	"fulfillcalc/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fulfillcalc",
		Short:         "Compare logistics-program fees with self-managed shipping",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvaluateCmd(), newFeesCmd(), newServeCmd())
	return root
}

type evaluateFlags struct {
	file        string
	destination string
	labeling    bool
	mode        string
	item        pricing.Item
	chartWidth  int
}

func newEvaluateCmd() *cobra.Command {
	var f evaluateFlags
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a cart from a file, or a single item from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			d, err := pricing.Evaluate(req)
			if err != nil {
				return err
			}
			return writeDecision(cmd.OutOrStdout(), d, f.chartWidth)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", `cart file (YAML or JSON, "-" for stdin)`)
	fl.StringVarP(&f.destination, "destination", "d", string(rate.NL), "destination country (NL or BE)")
	fl.BoolVar(&f.labeling, "labeling", false, "use the labeling service")
	fl.StringVar(&f.mode, "mode", "", "self-managed mode for multi-item carts (separate or together)")
	fl.Float64Var(&f.item.Length, "length", 10, "item length in cm")
	fl.Float64Var(&f.item.Width, "width", 10, "item width in cm")
	fl.Float64Var(&f.item.Height, "height", 10, "item height in cm")
	fl.Float64Var(&f.item.Weight, "weight", 1, "item weight in kg")
	fl.Float64Var(&f.item.SalesPrice, "price", 20, "item sales price in EUR")
	fl.BoolVar(&f.item.Special, "special", false, "item is in a special category (e.g. fragile)")
	fl.IntVar(&f.chartWidth, "chart-width", 40, "width of the comparison chart in characters")
	return cmd
}

// request builds the run from --file, letting explicitly set flags override
// the file's destination, labeling and mode.
func (f *evaluateFlags) request(cmd *cobra.Command) (pricing.Request, error) {
	var req pricing.Request
	if f.file != "" {
		var err error
		if req, err = cartfile.Load(f.file); err != nil {
			return pricing.Request{}, err
		}
	} else {
		req.Items = []pricing.Item{f.item}
	}

	fl := cmd.Flags()
	if f.file == "" || fl.Changed("destination") {
		if err := req.Destination.UnmarshalText([]byte(f.destination)); err != nil {
			return pricing.Request{}, err
		}
	}
	if f.file == "" || fl.Changed("labeling") {
		req.Labeling = f.labeling
	}
	if fl.Changed("mode") {
		req.Mode = pricing.ShippingMode(f.mode)
	}
	if err := validation.Struct(req); err != nil {
		return pricing.Request{}, err
	}
	return req, nil
}

func newFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "Print the logistics-program fee table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeFeeTable(cmd.OutOrStdout())
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(logging.Config{
				Level:       cfg.LogLevel,
				ServiceName: "fulfillcalc-api",
				Environment: cfg.Environment,
				Output:      cmd.OutOrStdout(),
			})
			return server.Run(cmd.Context(), cfg, log)
		},
	}
}
