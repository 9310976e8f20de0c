package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/codeready-toolchain/contractmask/pkg/batch"
	"github.com/codeready-toolchain/contractmask/pkg/export"
)

// ReadDocuments loads every .txt file directly under dir, sorted by name.
// A document's ID is its file name without the extension.
func ReadDocuments(dir string) ([]batch.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var docs []batch.Document
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		docs = append(docs, batch.Document{
			ID:   strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Text: string(data),
		})
	}
	slices.SortFunc(docs, func(a, b batch.Document) int { return strings.Compare(a.ID, b.ID) })
	return docs, nil
}

// WriteReport writes <id>.csv into dir for every document that was masked.
// Failed and unstarted documents get no file.
func WriteReport(dir string, report *batch.Report, bom bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	var errs []error
	for _, o := range report.Outcomes {
		if o.DocumentID == "" || o.Err != nil {
			continue
		}
		if err := writeCSV(filepath.Join(dir, o.DocumentID+".csv"), o, bom); err != nil {
			errs = append(errs, fmt.Errorf("document %s: %w", o.DocumentID, err))
			continue
		}
		slog.Debug("CSV written", "document_id", o.DocumentID, "sentences", len(o.Sentences))
	}
	return errors.Join(errs...)
}

func writeCSV(path string, o batch.Outcome, bom bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := export.NewCSVWriter(f, bom)
	if err := w.Write(o.Sentences); err != nil {
		return err
	}
	return w.Flush()
}
