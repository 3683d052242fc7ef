package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/superm123/SnapSpend/internal/api"
	"github.com/superm123/SnapSpend/internal/config"
	"github.com/superm123/SnapSpend/internal/extractor"
	"github.com/superm123/SnapSpend/internal/importer"
	"github.com/superm123/SnapSpend/internal/logger"
	"github.com/superm123/SnapSpend/internal/models"
	"github.com/superm123/SnapSpend/internal/parser"
	"github.com/superm123/SnapSpend/internal/store"
)

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	receiptFlag := flag.Bool("receipt", false, "Treat inputs as receipt OCR text/images instead of statements")
	importFlag := flag.Bool("import", false, "Persist parsed results to the database")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `SnapSpend: receipt and bank statement expense tracker

Parses bank statement PDFs and receipt images into structured
transactions for review and import.

Usage:
  snapspend [flags] <statement.pdf|receipt.png|text file ...>
  snapspend -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Parse a statement PDF and print candidates as JSON
  snapspend statement.pdf

  # Parse a receipt photo
  snapspend -receipt receipt.jpg

  # Parse and persist in one step
  snapspend -import statement.pdf

  # Run the API server
  snapspend -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("snapspend v%s\n", api.Version)
		return
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if *serveFlag {
		runServer(cfg, log)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, path := range flag.Args() {
		if err := processFile(path, *receiptFlag, *importFlag, cfg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func runServer(cfg *config.Config, log *zap.Logger) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer st.Close()

	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // statement PDFs and receipt photos
	})
	api.New(st, log, cfg.Currency).Register(app)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	log.Info("listening", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func processFile(path string, asReceipt, doImport bool, cfg *config.Config, log *zap.Logger) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input file not found: %s", path)
	}

	text, usedOCR, err := loadText(path, asReceipt)
	if err != nil {
		return err
	}

	if asReceipt {
		p := &parser.ReceiptParser{}
		rec := p.Parse(text)
		fmt.Printf("Merchant: %s\n", rec.MerchantName)
		fmt.Printf("Items: %d\n", len(rec.Items))
		if doImport {
			return persistReceipt(rec, cfg, log)
		}
		return printJSON(rec)
	}

	p := &parser.StatementParser{Today: time.Now()}
	cands := p.Parse(text)

	// Text-layer extraction of a scanned statement often parses clean but
	// yields nothing; rerun the same parser over OCR text.
	if len(cands) == 0 && !usedOCR && isPDF(path) {
		pages, ocrErr := extractor.ExtractTextOCR(path)
		if ocrErr == nil {
			cands = p.Parse(strings.Join(pages, "\n"))
			fmt.Fprintln(os.Stderr, "note: text layer yielded nothing, used OCR fallback")
		}
	}

	fmt.Printf("Found %d transaction(s)\n", len(cands))
	if doImport {
		return persistStatement(cands, cfg, log)
	}
	return printJSON(cands)
}

func loadText(path string, asReceipt bool) (text string, usedOCR bool, err error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		pages, err := extractor.ExtractText(path)
		if err != nil {
			// No text layer: go straight to OCR.
			pages, err = extractor.ExtractTextOCR(path)
			if err != nil {
				return "", false, err
			}
			return strings.Join(pages, "\n"), true, nil
		}
		return strings.Join(pages, "\n"), false, nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		text, err := extractor.OCRImage(path)
		return text, true, err
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, err
		}
		return string(data), false, nil
	}
}

func persistStatement(cands []models.CandidateTransaction, cfg *config.Config, log *zap.Logger) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	user, err := st.FirstUser()
	if err != nil {
		return fmt.Errorf("no user configured: %w", err)
	}

	res, err := importer.New(st, log).ImportStatement(cands, user.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d, skipped %d\n", res.Imported, len(res.Skipped))
	for _, s := range res.Skipped {
		fmt.Printf("  skipped %s: %s\n", s.ID, s.Reason)
	}
	return nil
}

func persistReceipt(rec models.Receipt, cfg *config.Config, log *zap.Logger) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	user, err := st.FirstUser()
	if err != nil {
		return fmt.Errorf("no user configured: %w", err)
	}

	res, err := importer.New(st, log).ImportReceipt(rec, user.ID, "")
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d item(s)\n", res.Imported)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
