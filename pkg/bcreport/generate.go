package bcreport

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/parser"
	"go.uber.org/zap"
)

// Generate builds the report set from a workbook on disk.
func Generate(path string, opts Options) (*models.ReportSet, error) {
	if !parser.SupportedExtension(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return GenerateBytes(data, filepath.Base(path), opts)
}

// GenerateBytes builds the report set from uploaded workbook bytes.
// filename selects the reader by extension and names the source.
func GenerateBytes(data []byte, filename string, opts Options) (*models.ReportSet, error) {
	filename = filepath.Base(filename)
	if !parser.SupportedExtension(filename) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filename)
	}

	log := opts.logger().With(zap.String("source", filename))

	table, err := parser.ReadSheet(data, filename, opts.sheetName())
	if err != nil {
		return nil, err
	}
	ds, err := parser.Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("normalize sheet %q: %w", table.Sheet, err)
	}
	log.Debug("dataset normalized",
		zap.Int("records", len(ds.Records)),
		zap.Int("source_columns", len(ds.Source)),
	)

	if opts.Title == "" {
		opts.Title = opts.TitleFor(filename)
	}
	opts.Logger = log
	return Build(ds, filename, opts), nil
}
