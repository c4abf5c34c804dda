package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"nyc-route-optimizer/internal/adapters/cache"
	"nyc-route-optimizer/internal/adapters/googlemaps"
	"nyc-route-optimizer/internal/config"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/services"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"
)

// routecheck ranks the driving alternatives between two NYC addresses and
// prints them as a table.
func main() {
	var from, to, model string
	var maxRoutes int
	var timeout time.Duration
	flag.StringVar(&from, "from", "", "Start address")
	flag.StringVar(&to, "to", "", "Destination address")
	flag.StringVar(&model, "traffic-model", "", "best_guess, optimistic or pessimistic (default from TRAFFIC_MODEL)")
	flag.IntVar(&maxRoutes, "max", 0, "Maximum number of routes (default from MAX_ROUTES)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall request timeout")
	flag.Parse()

	if from == "" || to == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	flush, err := obs.InitLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer flush()

	var tm domain.TrafficModel
	if model != "" {
		if tm, err = domain.ParseTrafficModel(model); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := suggest(ctx, cfg, services.RouteRequest{
		StartAddress: from,
		EndAddress:   to,
		TrafficModel: tm,
		MaxRoutes:    maxRoutes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		flush()
		os.Exit(1)
	}

	printSuggestion(os.Stdout, out)
}

func suggest(ctx context.Context, cfg *config.Config, req services.RouteRequest) (*services.RouteSuggestion, error) {
	provider, err := googlemaps.NewProvider(googlemaps.Config{
		APIKey:   cfg.GoogleMapsAPIKey,
		Area:     cfg.ServiceArea,
		Center:   cfg.DefaultCenter,
		CacheTTL: cfg.CacheTTL,
	}, cache.NewMemoryResponseCache(16), nil)
	if err != nil {
		return nil, err
	}

	ranker, err := services.NewRanker(cfg.ScoringConfig())
	if err != nil {
		return nil, err
	}

	suggester, err := services.NewRouteSuggester(provider, provider, ranker,
		services.WithServiceArea(cfg.ServiceArea),
		services.WithMaxRoutes(cfg.MaxRoutes),
		services.WithTrafficModel(cfg.TrafficModel),
	)
	if err != nil {
		return nil, err
	}

	return suggester.Suggest(ctx, req)
}

// describe turns the error taxonomy into a one-line message.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoRoutesAvailable):
		return "No routes found between the specified locations."
	case errors.Is(err, domain.ErrOutsideServiceArea):
		return "Address is outside NYC boundaries."
	case errors.Is(err, domain.ErrAddressNotFound):
		return "Address could not be found."
	case errors.Is(err, domain.ErrProviderQuota):
		return "Google Maps quota exceeded; try again later."
	case errors.Is(err, domain.ErrProviderDenied):
		return "Google Maps rejected the request; check GOOGLE_MAPS_API_KEY."
	}
	return "Error: " + err.Error()
}

func printSuggestion(w io.Writer, s *services.RouteSuggestion) {
	fmt.Fprintf(w, "From: %s\nTo:   %s\nTraffic model: %s\n\n", s.Start.FormattedAddress, s.End.FormattedAddress, s.TrafficModel)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tROUTE\tDISTANCE\tTIME\tDELAY\tTRAFFIC\tSCORE")
	for i, r := range s.Routes.Routes {
		fmt.Fprintf(tw, "%d\t%s\t%.1f km\t%.0f min\t%.1f min\t%s\t%.2f\n",
			i+1,
			r.Summary,
			float64(r.DistanceMeters)/1000,
			float64(r.DurationInTrafficSeconds)/60,
			float64(r.DelaySeconds)/60,
			r.TrafficSeverity,
			r.EfficiencyScore,
		)
	}
	_ = tw.Flush()

	sum := s.Summary
	fmt.Fprintf(w, "\n%d routes, average %.1f min / %.1f km, time range %.1f-%.1f min\n",
		sum.TotalRoutes, sum.AverageTimeMinutes, sum.AverageDistanceKm, sum.MinTimeMinutes, sum.MaxTimeMinutes)
	if s.Savings != nil && s.Savings.MaxSavingsSeconds > 0 {
		fmt.Fprintf(w, "Best choice saves up to %.0f min over the slowest alternative.\n",
			float64(s.Savings.MaxSavingsSeconds)/60)
	}
	for _, rej := range s.Routes.Rejected {
		fmt.Fprintf(w, "Skipped provider route %d: %s\n", rej.Index+1, rej.Reason)
	}
}
