package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zubbicodes/adsonsLab/internal/export"
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
)

var (
	pdfOut  string
	xlsxOut string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <manifest.json>",
	Short: "Normalize a manifest export and render printable documents",
	Long: `Reads a JSON manifest export (the same payload the dashboard accepts),
normalizes it into a loading paper, prints a summary, and optionally writes
the PDF and Excel renditions.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&pdfOut, "pdf", "", "write the loading paper PDF to this path")
	ingestCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write the loading paper workbook to this path")
}

func runIngest(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	parsed, err := loadingpaper.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	doc := loadingpaper.Normalize(parsed.Rows)

	fmt.Printf("DC No:    %s\n", doc.Header.DCNo)
	fmt.Printf("PO No:    %s\n", doc.Header.PONo)
	fmt.Printf("Customer: %s\n", doc.Header.AccName)
	fmt.Printf("Items:    %d\n", len(doc.Items))
	fmt.Printf("Totals:   pack=%s qty=%s weight=%s\n",
		loadingpaper.FormatWeight(doc.Totals.Pack),
		loadingpaper.FormatWeight(doc.Totals.Qty),
		loadingpaper.FormatWeight(doc.Totals.Weight))

	if pdfOut != "" {
		data, err := export.NewPDFService(logger).LoadingPaper(doc, loadingpaper.AllColumns())
		if err != nil {
			return fmt.Errorf("rendering pdf: %w", err)
		}
		if err := os.WriteFile(pdfOut, data, 0o644); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
		fmt.Println("wrote", pdfOut)
	}

	if xlsxOut != "" {
		data, err := export.NewXLSXService(logger).LoadingPaper(doc, loadingpaper.AllColumns())
		if err != nil {
			return fmt.Errorf("rendering workbook: %w", err)
		}
		if err := os.WriteFile(xlsxOut, data, 0o644); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Println("wrote", xlsxOut)
	}
	return nil
}
