package main

import (
	"context"
	"io"

	"github.com/runxel/perisso/pkg/tapir"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Address string `yaml:"address"`
	Debug   string `yaml:"debug"`
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		Address: env.GetVariableOrDefault(ctx, "ARCHICAD_ADDRESS", tapir.DefaultAddress),
		Debug:   env.GetVariableOrDefault(ctx, "PERISSO_DEBUG", "false"),
	}
}

// Merge overlays the values from a yaml configuration file onto the
// environment based configuration. File values win where set.
func (c Config) Merge(data io.Reader) (Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return c, err
	}

	fileConfig := Config{}
	err = yaml.Unmarshal(buf, &fileConfig)
	if err != nil {
		return c, err
	}

	if fileConfig.Address != "" {
		c.Address = fileConfig.Address
	}

	if fileConfig.Debug != "" {
		c.Debug = fileConfig.Debug
	}

	return c, nil
}
