package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/swaggo/swag"
	"github.com/swaggo/swag/gen"
)

// this replaces the call to: swag init --propertyStrategy camelcase --parseDependency --parseInternal --generalInfo base.go
func main() {
	wd, err := os.Getwd() // should be the project root
	if err != nil {
		panic(err)
	}

	apiPath := filepath.Join(wd, "internal", "app", "api", "handlers")
	outputPath := filepath.Join(wd, "docs")

	slog.Info("generating swagger docs", "apiPath", apiPath, "outputPath", outputPath)

	if err := generateApi(wd, apiPath, outputPath); err != nil {
		slog.Error("failed to generate API docs", "error", err)
		os.Exit(1)
	}

	slog.Info("generated swagger docs", "outputPath", outputPath)
}

func generateApi(projectPath, apiPath, outputPath string) error {
	err := gen.New().Build(newGenConfig(apiPath, outputPath))
	if err != nil {
		return fmt.Errorf("swag failed for %s: %w", projectPath, err)
	}

	return nil
}

func newGenConfig(apiPath, outputPath string) *gen.Config {
	return &gen.Config{
		SearchDir:           apiPath,
		Excludes:            "",
		MainAPIFile:         "base.go",
		PropNamingStrategy:  swag.CamelCase,
		OutputDir:           outputPath,
		OutputTypes:         []string{"json", "yaml"},
		ParseVendor:         false,
		ParseDependency:     int(swag.ParseAll),
		MarkdownFilesDir:    "",
		ParseInternal:       true,
		GeneratedTime:       false,
		CodeExampleFilesDir: "",
		ParseDepth:          3,
		InstanceName:        "mailrelay",
	}
}
