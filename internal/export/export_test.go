package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"volby-scraper/internal/dataset"
	"volby-scraper/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func record(pairs ...string) *dataset.Record {
	r := dataset.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func district() []*dataset.Record {
	return dataset.Normalize([]*dataset.Record{
		record(
			"code", "500054", "location", "Libčice",
			"registered", "1000", "envelopes", "800", "valid", "790",
			"Občanská demokratická strana", "100", "ANO 2011", "50",
		),
		record(
			"code", "500062", "location", "Letky, obec",
			"registered", "500", "envelopes", "400", "valid", "398",
			"ANO 2011", "80", `Strana "Zelených"`, "3",
		),
	})
}

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	err := Write(&out, district())
	require.NoError(t, err)

	require.Equal(t, strings.Join([]string{
		`code,location,registered,envelopes,valid,Občanská demokratická strana,ANO 2011,"Strana ""Zelených"""`,
		`500054,Libčice,1000,800,790,100,50,0`,
		`500062,"Letky, obec",500,400,398,0,80,3`,
		``,
	}, "\r\n"), out.String())
}

func TestWriteFixedColumnsLead(t *testing.T) {
	records := []*dataset.Record{
		record("ODS", "1", "valid", "3", "code", "1", "registered", "5", "location", "A", "envelopes", "4"),
	}

	var out bytes.Buffer
	require.NoError(t, Write(&out, records))
	header := strings.SplitN(out.String(), "\r\n", 2)[0]
	require.Equal(t, "code,location,registered,envelopes,valid,ODS", header)
}

func TestCSVExport(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "vysledky.csv")
	exporter := NewCSV(telemetry.SlogAPI{})

	written, err := exporter.Export(context.Background(), district(), destination)
	require.NoError(t, err)
	require.True(t, written)

	contents, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(contents)), "\r\n"), 3)

	info, err := os.Stat(destination)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(destination))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestCSVExportKeepsExistingMode(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "vysledky.csv")
	require.NoError(t, os.WriteFile(destination, []byte("stale"), 0o600))
	require.NoError(t, os.Chmod(destination, 0o640))

	written, err := NewCSV(telemetry.SlogAPI{}).Export(context.Background(), district(), destination)
	require.NoError(t, err)
	require.True(t, written)

	info, err := os.Stat(destination)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	contents, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(contents), "code,location,"))
}

func TestCSVExportEmpty(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "vysledky.csv")
	rec := &telemetry.Recorder{}
	exporter := NewCSV(rec)

	written, err := exporter.Export(context.Background(), nil, destination)
	require.NoError(t, err)
	require.False(t, written)

	_, err = os.Stat(destination)
	require.True(t, os.IsNotExist(err))
	require.Len(t, rec.Find("warning", report_csv_export), 1)
}

func TestCSVExportMissingDirectory(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "missing", "vysledky.csv")
	exporter := NewCSV(telemetry.SlogAPI{})

	written, err := exporter.Export(context.Background(), district(), destination)
	require.Error(t, err)
	require.False(t, written)
}

func TestSQLiteExport(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	store := NewSQLite(db, telemetry.SlogAPI{})

	written, err := store.Export(ctx, district())
	require.NoError(t, err)
	require.True(t, written)

	var localities int
	require.NoError(t, db.QueryRowContext(ctx, `select count(*) from locality`).Scan(&localities))
	require.Equal(t, 2, localities)

	var valid int64
	require.NoError(t, db.QueryRowContext(
		ctx, `select valid from locality where code = ?`, "500062",
	).Scan(&valid))
	require.Equal(t, int64(398), valid)

	var votes int64
	require.NoError(t, db.QueryRowContext(
		ctx,
		`select votes from party_result where locality_code = ? and party = ?`,
		"500062", "Občanská demokratická strana",
	).Scan(&votes))
	require.Equal(t, int64(0), votes)

	// exporting again replaces instead of duplicating
	updated := []*dataset.Record{
		record("code", "500054", "location", "Libčice", "registered", "1000", "envelopes", "800", "valid", "790", "ANO 2011", "51"),
	}
	written, err = store.Export(ctx, updated)
	require.NoError(t, err)
	require.True(t, written)

	var parties int
	require.NoError(t, db.QueryRowContext(
		ctx, `select count(*) from party_result where locality_code = ?`, "500054",
	).Scan(&parties))
	require.Equal(t, 1, parties)

	written, err = store.Export(ctx, nil)
	require.NoError(t, err)
	require.False(t, written)
}

func TestPreview(t *testing.T) {
	var out bytes.Buffer
	Preview(&out, district(), 1)

	rendered := out.String()
	require.Contains(t, rendered, "LOCATION")
	require.Contains(t, rendered, "Libčice")
	require.NotContains(t, rendered, "Letky")
	require.Contains(t, strings.ToLower(rendered), "1 more")
}
