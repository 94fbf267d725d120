package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"busdash/internal/backend"
	"busdash/internal/config"
	"busdash/internal/models"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// SeedFile lists the fixtures pushed into an empty backend.
type SeedFile struct {
	Buses        []models.BusInput         `yaml:"buses"`
	TourPackages []models.TourPackageInput `yaml:"tour_packages"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = pflag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		baseURL  = pflag.String("backend", "http://localhost:8080", "booking backend base URL")
	)
	pflag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var seed SeedFile
	if err = yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(seed.Buses) == 0 && len(seed.TourPackages) == 0 {
		return fmt.Errorf("nothing to seed in %s", *seedPath)
	}

	client := backend.New(config.BackendConfig{BaseURL: *baseURL, Timeout: 10 * time.Second}, backend.WithLogger(&logger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	buses, err := client.ListBuses(ctx)
	if err != nil {
		return fmt.Errorf("list buses: %w", err)
	}
	knownBuses := make(map[string]bool, len(buses))
	for _, b := range buses {
		knownBuses[b.BusNumber] = true
	}

	tours, err := client.ListTourPackages(ctx)
	if err != nil {
		return fmt.Errorf("list tour packages: %w", err)
	}
	knownTours := make(map[string]bool, len(tours))
	for _, t := range tours {
		knownTours[t.PackageName] = true
	}

	created, skipped := 0, 0
	for _, b := range seed.Buses {
		if b.BusNumber == "" || knownBuses[b.BusNumber] {
			skipped++
			continue
		}
		if _, err = client.CreateBus(ctx, b); err != nil {
			return fmt.Errorf("create bus %s: %w", b.BusNumber, err)
		}
		created++
	}
	for _, t := range seed.TourPackages {
		if t.PackageName == "" || knownTours[t.PackageName] {
			skipped++
			continue
		}
		if _, err = client.CreateTourPackage(ctx, t); err != nil {
			return fmt.Errorf("create tour package %s: %w", t.PackageName, err)
		}
		created++
	}

	fmt.Printf("done: created=%d skipped=%d\n", created, skipped)
	return nil
}
