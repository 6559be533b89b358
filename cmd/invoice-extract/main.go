package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/taanjit/Invoice-extraction-html/constants"
	"github.com/taanjit/Invoice-extraction-html/internal/common"
	"github.com/taanjit/Invoice-extraction-html/internal/extract"
	"github.com/taanjit/Invoice-extraction-html/internal/llm/openai"
	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
	"github.com/taanjit/Invoice-extraction-html/internal/render"
	"github.com/taanjit/Invoice-extraction-html/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		file      = flag.String("file", "", "invoice PDF to process")
		dir       = flag.String("dir", "", "directory scanned for *.pdf (alternative to -file)")
		out       = flag.String("out", "", "output directory (defaults to the input's directory)")
		writeHTML = flag.Bool("html", true, "write an HTML table per document")
		writeXLSX = flag.Bool("xlsx", false, "write a batch XLSX workbook")
		dpi       = flag.Int("dpi", 0, "rasterization DPI for image-based pages (default from env/config)")
		model     = flag.String("model", "", "override the inference model name")
		modelCfg  = flag.String("config", filepath.Join("config", "model_config.yaml"), "model config YAML path")
	)
	flag.Parse()

	if *file == "" && *dir == "" {
		printError("Error: one of -file or -dir is required\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration is built once here and passed down; a missing credential
	// is a run-level fatal error before any document is touched.
	cfg := common.LoadConfig(*modelCfg)
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *dpi > 0 {
		cfg.Render.DPI = *dpi
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Resolve inputs. A named file that does not exist is fatal; an empty
	// directory is not.
	var pdfs []string
	switch {
	case *file != "":
		if !constants.IsPDF(filepath.Ext(*file)) {
			err := common.NewAppError("INVALID_INPUT", fmt.Sprintf("not a PDF: %s", *file), common.ErrInvalidInput)
			logger.Error("invalid input file", "file", *file, "error", err)
			os.Exit(1)
		}
		if _, err := os.Stat(*file); err != nil {
			logger.Error("input file not found", "file", *file)
			os.Exit(1)
		}
		pdfs = []string{*file}
	default:
		matches, err := filepath.Glob(filepath.Join(*dir, "*.pdf"))
		if err != nil {
			logger.Error("scan directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		sort.Strings(matches)
		pdfs = matches
	}
	if len(pdfs) == 0 {
		fmt.Println("No PDF files found.")
		return
	}

	outDir := *out
	if outDir == "" {
		outDir = filepath.Dir(pdfs[0])
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Error("create output directory", "dir", outDir, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Wire the pipeline
	renderer := render.NewRenderer(render.Config{
		Pdftotext: cfg.Render.Pdftotext,
		Pdftoppm:  cfg.Render.Pdftoppm,
	}, logger)

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("inference client initialized", "model", cfg.LLM.Model, "dpi", cfg.Render.DPI)

	pages := extract.NewPageExtractor(client, logger)
	orchestrator := extract.NewOrchestrator(renderer, pages, extract.Config{
		DPI:          cfg.Render.DPI,
		MinTextChars: cfg.Render.MinTextChars,
	}, logger)

	// Process each document sequentially; one document's failure never stops
	// the rest of the batch.
	var allItems []normalize.LineItem
	succeeded, noData, failed := 0, 0, 0

	for _, pdf := range pdfs {
		logger.Info("processing invoice", "file", pdf)
		res := orchestrator.ExtractDocument(ctx, pdf)

		switch res.Status {
		case constants.StatusSuccess:
			succeeded++
		case constants.StatusNoData:
			noData++
		default:
			failed++
		}
		allItems = append(allItems, res.Items...)

		jsonPath, err := report.WriteJSON(outDir, res)
		if err != nil {
			logger.Error("write json result", "document", res.DocumentName, "error", err)
			continue
		}
		logger.Info("json result saved", "path", jsonPath)

		if *writeHTML {
			htmlPath, err := report.WriteHTML(outDir, res)
			if err != nil {
				logger.Error("write html result", "document", res.DocumentName, "error", err)
			} else {
				logger.Info("html result saved", "path", htmlPath)
			}
		}
	}

	if *writeXLSX && len(allItems) > 0 {
		xlsxBytes, err := report.BuildXLSX(allItems, logger)
		if err != nil {
			logger.Error("build xlsx", "error", err)
		} else {
			xlsxPath := filepath.Join(outDir, "invoice_items.xlsx")
			if err := os.WriteFile(xlsxPath, xlsxBytes, 0o644); err != nil {
				logger.Error("write xlsx", "path", xlsxPath, "error", err)
			} else {
				logger.Info("xlsx saved", "path", xlsxPath)
			}
		}
	}

	// NO_DATA and per-document errors are not process failures; only missing
	// inputs and configuration are (handled above).
	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Documents processed: %d\n", len(pdfs))
	fmt.Printf("- With line items: %d\n", succeeded)
	fmt.Printf("- No data: %d\n", noData)
	fmt.Printf("- Errors: %d\n", failed)
	fmt.Printf("- Total items: %d\n", len(allItems))
	fmt.Printf("- Output: %s\n", outDir)
}
