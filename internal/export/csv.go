package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"volby-scraper/internal/dataset"
	"volby-scraper/lib/telemetry"
)

const (
	report_csv_export = "csv.export"

	// exportMode is used unless the destination already exists, in which case
	// its mode is kept.
	exportMode os.FileMode = 0o644
)

type CSV struct {
	tel telemetry.API
}

func NewCSV(tel telemetry.API) CSV {
	return CSV{tel: telemetry.NewScopedAPI("export", tel)}
}

// Export writes `records` to `destination` as CSV. Records should already be
// normalized, the column layout is taken from the first one.
//
// An empty dataset writes nothing, not even an empty file, and returns false.
func (e CSV) Export(ctx context.Context, records []*dataset.Record, destination string) (bool, error) {
	if len(records) == 0 {
		e.tel.ReportWarning(report_csv_export, "nothing to export", destination)
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// the rows are written to a sibling temp file first so a failed write never
	// leaves a truncated export behind
	tmp, err := os.CreateTemp(filepath.Dir(destination), filepath.Base(destination)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = Write(tmp, records)
	if err != nil {
		tmp.Close()
		e.tel.ReportBroken(report_csv_export, destination, err)
		return false, err
	}
	// CreateTemp makes the file owner-only
	err = tmp.Chmod(destinationMode(destination))
	if err != nil {
		tmp.Close()
		return false, fmt.Errorf("chmod export file: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return false, fmt.Errorf("close export file: %w", err)
	}
	err = os.Rename(tmp.Name(), destination)
	if err != nil {
		return false, fmt.Errorf("move export file: %w", err)
	}

	e.tel.ReportDebug("wrote csv", destination, len(records))
	return true, nil
}

func destinationMode(destination string) os.FileMode {
	info, err := os.Stat(destination)
	if err != nil || !info.Mode().IsRegular() {
		return exportMode
	}
	return info.Mode().Perm()
}

// Write serializes `records` as a header line followed by one line per record.
// Lines end with CRLF as RFC 4180 has them.
func Write(out io.Writer, records []*dataset.Record) error {
	columns := dataset.Columns(records)

	writer := csv.NewWriter(out)
	writer.UseCRLF = true
	err := writer.Write(columns)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		err = writer.Write(r.Row(columns))
		if err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
