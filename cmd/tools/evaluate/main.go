package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/noah-isme/toko-promo/internal/campaigns"
	"github.com/noah-isme/toko-promo/internal/obs"
	"github.com/noah-isme/toko-promo/internal/quote"
)

func main() {
	var (
		cartPath      = flag.String("cart", "-", "cart JSON file, - for stdin")
		campaignsPath = flag.String("campaigns", "", "campaigns JSON file; defaults to the built-in tables")
		logLevel      = flag.String("log-level", "warn", "log level written to stderr")
	)
	flag.Parse()

	logger := obs.NewLoggerTo(os.Stderr, "console", *logLevel)
	ctx := logger.WithContext(context.Background())

	if err := run(ctx, *cartPath, *campaignsPath, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("evaluate cart")
		os.Exit(1)
	}
}

func run(ctx context.Context, cartPath, campaignsPath string, stdin io.Reader, stdout io.Writer) error {
	doc, err := campaigns.Default()
	if campaignsPath != "" {
		doc, err = campaigns.LoadFile(campaignsPath)
	}
	if err != nil {
		return err
	}
	built, err := campaigns.Build(doc)
	if err != nil {
		return err
	}
	svc, err := quote.NewService(quote.ServiceConfig{Campaigns: built})
	if err != nil {
		return err
	}

	in := stdin
	if cartPath != "-" {
		f, err := os.Open(cartPath)
		if err != nil {
			return fmt.Errorf("open cart: %w", err)
		}
		defer f.Close()
		in = f
	}
	var req quote.CartRequest
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}

	resp, err := svc.Evaluate(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
