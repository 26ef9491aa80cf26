package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso"
	"github.com/runxel/perisso/pkg/tapir"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const (
	appName string = "perisso"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	var configFile string
	var elementType string
	var selection bool
	var highlight bool

	flag.StringVar(&configFile, "config", "", "path to an optional yaml configuration file")
	flag.StringVar(&elementType, "type", "", "only list elements of this type (Wall, Column, ...)")
	flag.BoolVar(&selection, "selection", false, "start from the current selection instead of all elements")
	flag.BoolVar(&highlight, "highlight", false, "highlight the listed elements in Archicad")
	flag.Parse()

	cfg := LoadConfiguration(ctx)

	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			log.Error("failed to open configuration file", "err", err.Error())
			os.Exit(1)
		}

		cfg, err = cfg.Merge(f)
		f.Close()

		if err != nil {
			log.Error("failed to parse configuration file", "err", err.Error())
			os.Exit(1)
		}
	}

	client := tapir.NewClient(cfg.Address, tapir.Debug(cfg.Debug))

	if !client.IsAlive(ctx) {
		log.Error("no running Archicad instance found", "address", cfg.Address)
		os.Exit(1)
	}

	options := []perisso.Option{}
	if selection {
		options = append(options, perisso.FromSelection())
	}

	collection, err := perisso.Elements(ctx, client, options...)
	if err != nil {
		log.Error("failed to list elements", "err", err.Error())
		os.Exit(1)
	}

	if elementType != "" {
		collection, err = collection.FilterBy(elements.ElementType).Equals(ctx, elementType)
		if err != nil {
			log.Error("failed to filter elements", "err", err.Error())
			os.Exit(1)
		}
	}

	log.Info("elements found", slog.Int("count", collection.Count()))

	for _, ref := range collection.Get() {
		fmt.Println(ref.GUID)
	}

	if highlight {
		err = perisso.Highlight(ctx, client, collection)
		if err != nil {
			log.Error("failed to highlight elements", "err", err.Error())
			os.Exit(1)
		}
	}
}
