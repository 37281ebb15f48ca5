package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"docgen-srv/config"
	"docgen-srv/internal/docgen"
	docgenUsecase "docgen-srv/internal/docgen/usecase"
	"docgen-srv/internal/model"
	"docgen-srv/pkg/convert"
	"docgen-srv/pkg/log"
	"docgen-srv/pkg/pdf"
	"docgen-srv/pkg/preview"
)

// One-shot generation: read a report record from a JSON file, run the full
// pipeline once and print the produced filenames to stdout, one per line.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: path to the record JSON file is required")
		os.Exit(1)
	}

	recordPath := os.Args[1]
	raw, err := os.ReadFile(recordPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read record file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	var rec model.ReportRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid record JSON: %v\n", err)
		os.Exit(1)
	}

	converter, err := convert.New(convert.Config{
		Backend: cfg.Converter.Backend,
		Binary:  cfg.Converter.Binary,
		Timeout: time.Duration(cfg.Converter.Timeout) * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stamper, err := pdf.NewStamper(pdf.StamperConfig{
		SealPath: cfg.Docgen.StampPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	uc := docgenUsecase.New(converter, stamper, preview.NewRenderer(cfg.Docgen.PreviewScale), nil, logger, docgenUsecase.Config{
		TemplatePath: cfg.Docgen.TemplatePath,
		ReportsDir:   cfg.Docgen.ReportsDir,
		PreviewsDir:  cfg.Docgen.PreviewsDir,
		MaxWorkers:   1,
	})

	out, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: rec})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "Generated PDF successfully")
	fmt.Println(out.PdfFilename)
	if out.PreviewFilename != "" {
		fmt.Println(out.PreviewFilename)
	}
}
