/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders reports over the asset library. The catalog PDF is
// the one shipped today: a tabular listing of the stored assets for review
// outside the application.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"assetforge/internal/domain"
	"assetforge/internal/version"
)

// CatalogOptions controls the catalog PDF layout. Units are points.
type CatalogOptions struct {
	Title string
}

// Column layout for the catalog table, in points on an A4 portrait page.
var catalogColumns = []struct {
	header string
	width  float64
}{
	{"Name", 150},
	{"Type", 70},
	{"File", 180},
	{"Size", 60},
	{"Updated", 80},
}

// WriteCatalogPDF renders the given assets as a multi-page table and writes
// the PDF to outPath, creating parent directories as needed. Assets are laid
// out in the order given; callers pass them pre-sorted from the store.
func WriteCatalogPDF(assets []domain.Asset, outPath string, opt CatalogOptions) error {
	title := opt.Title
	if title == "" {
		title = "Asset Catalog"
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAuthor("AssetForge "+version.String(), false)
	pdf.SetAutoPageBreak(true, 40)
	pdf.AddPage()

	// Built-in Helvetica keeps text vector without embedding.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 24, title)
	pdf.Ln(30)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range catalogColumns {
		pdf.CellFormat(col.width, 16, col.header, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range assets {
		size := ""
		if a.FileSize != nil {
			size = formatByteSize(*a.FileSize)
		}
		updated := a.UpdatedAt
		if len(updated) > 10 {
			updated = updated[:10]
		}
		cells := []string{a.Name, a.Type, a.FilePath, size, updated}
		for i, col := range catalogColumns {
			pdf.CellFormat(col.width, 14, truncateToWidth(pdf, cells[i], col.width-4), "", 0, "L", false, 0, "")
		}
		pdf.Ln(14)
	}

	if len(assets) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 14, "No assets in the library.")
		pdf.Ln(14)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// truncateToWidth shortens s so it fits a table cell of the given width,
// appending an ellipsis when anything was cut. Trimming is rune-wise so a
// multi-byte character is never split.
func truncateToWidth(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		_, n := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-n]
	}
	return s + "..."
}

func formatByteSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
