package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"checkout-core/internal/cart"
	"checkout-core/internal/config"
	"checkout-core/internal/ordering"
	"checkout-core/internal/pricing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("checkout", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cartPath := flags.String("cart", "", "JSON file with the cart lines to price")
	orderPath := flags.String("order", "", "JSON file mapping ISBN to requested copies")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *cartPath == "" && *orderPath == "" {
		flags.Usage()
		return errors.New("at least one of -cart or -order is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, stderr)
	logger.Info().
		Str("cart_store", cfg.Cart.Store).
		Str("book_source", cfg.Ordering.BookSource).
		Str("purchase_sink", cfg.Ordering.PurchaseSink).
		Msg("starting checkout")

	deps := newResources(logger)
	defer deps.Close()

	var result checkoutResult

	if *cartPath != "" {
		items, err := readCart(*cartPath)
		if err != nil {
			return err
		}

		store, err := deps.cartStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize cart store: %w", err)
		}

		engine := pricing.NewEngine(cart.NewAdaptor(store), pricing.DefaultRules(), logger)
		for _, item := range items {
			if err := engine.AddToCart(ctx, item); err != nil {
				return err
			}
		}

		total, err := engine.Calculate(ctx)
		if err != nil {
			return fmt.Errorf("failed to price cart: %w", err)
		}
		result.CartTotal = &total
	}

	if *orderPath != "" {
		order, err := readOrder(*orderPath)
		if err != nil {
			return err
		}

		books, err := deps.bookDatabase(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize book database: %w", err)
		}

		process, err := deps.purchaseProcess(ctx, cfg, books)
		if err != nil {
			return fmt.Errorf("failed to initialize purchase process: %w", err)
		}

		summary, err := ordering.NewEngine(books, process, logger).GetPriceForCart(ctx, order)
		if err != nil {
			return fmt.Errorf("failed to price order: %w", err)
		}
		result.Purchase = newPurchaseView(summary)
	}

	if err := writeResult(stdout, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	logger.Info().Msg("checkout completed")
	return nil
}
