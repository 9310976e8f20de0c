// Package export writes masked sentences as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// utf8BOM lets spreadsheet tools detect UTF-8 and render Turkish letters.
const utf8BOM = "\uFEFF"

// Header is the first record of every export.
var Header = []string{"id", "original", "masked"}

// CSVWriter writes one record per sentence. The header (and the BOM, when
// enabled) is written before the first record.
type CSVWriter struct {
	w           io.Writer
	csv         *csv.Writer
	bom         bool
	wroteHeader bool
}

// NewCSVWriter creates a writer over w.
func NewCSVWriter(w io.Writer, bom bool) *CSVWriter {
	return &CSVWriter{w: w, csv: csv.NewWriter(w), bom: bom}
}

// Write appends sentences. Sentences without a masked text are written with
// an empty masked column.
func (c *CSVWriter) Write(sentences []models.Sentence) error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	for _, s := range sentences {
		if err := c.csv.Write([]string{strconv.Itoa(s.Ordinal), s.Original, s.Masked}); err != nil {
			return fmt.Errorf("write sentence %d: %w", s.Ordinal, err)
		}
	}
	return nil
}

// Flush writes buffered records and reports any write error. A writer that
// never received records still emits the header.
func (c *CSVWriter) Flush() error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	c.csv.Flush()
	return c.csv.Error()
}

func (c *CSVWriter) writeHeader() error {
	if c.wroteHeader {
		return nil
	}
	c.wroteHeader = true
	if c.bom {
		if _, err := io.WriteString(c.w, utf8BOM); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}
	if err := c.csv.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
