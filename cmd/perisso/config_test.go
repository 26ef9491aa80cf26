package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/runxel/perisso/pkg/tapir"

	"github.com/matryer/is"
)

func TestDefaultConfiguration(t *testing.T) {
	is := is.New(t)

	cfg := LoadConfiguration(context.Background())

	is.Equal(cfg.Address, tapir.DefaultAddress)
	is.Equal(cfg.Debug, "false")
}

func TestMergeOverridesFromFile(t *testing.T) {
	is := is.New(t)

	cfg := LoadConfiguration(context.Background())
	cfg, err := cfg.Merge(bytes.NewBufferString(configFile))

	is.NoErr(err)
	is.Equal(cfg.Address, "http://127.0.0.1:19724")
	is.Equal(cfg.Debug, "true")
}

func TestMergeKeepsDefaultsForUnsetValues(t *testing.T) {
	is := is.New(t)

	cfg := LoadConfiguration(context.Background())
	cfg, err := cfg.Merge(bytes.NewBufferString("debug: \"true\"\n"))

	is.NoErr(err)
	is.Equal(cfg.Address, tapir.DefaultAddress)
	is.Equal(cfg.Debug, "true")
}

var configFile string = `
address: http://127.0.0.1:19724
debug: "true"
`
