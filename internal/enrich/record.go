package enrich

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ErrMissingInput means the input file is absent or unreadable.
var ErrMissingInput = errors.New("input file missing or unreadable")

// ErrSchemaMismatch means a required input column is absent.
var ErrSchemaMismatch = errors.New("required input column missing")

// requiredColumns are the raw click-log columns, in canonical order.
var requiredColumns = []string{
	"ip", "app", "device", "os", "channel",
	"click_time", "attributed_time", "is_attributed",
}

// enrichedColumns are appended after the raw columns on output.
var enrichedColumns = []string{
	"ad_id", "user_id", "country", "device_fingerprint",
	"connection_type", "fraud_cluster_id", "is_synthetic_fraud", "email",
}

// Record is one click event, raw input fields plus enriched fields.
// A ClusterID of 0 means the row is not part of any synthetic fraud ring.
type Record struct {
	IP             string
	App            string
	Device         string
	OS             string
	Channel        string
	ClickTime      string
	AttributedTime string
	IsAttributed   string

	AdID        string
	UserID      string
	Country     string
	Fingerprint string
	ConnType    string
	ClusterID   int
	Fraud       bool
	Email       string
}

// ReadRecords loads the raw click log, validating that every required
// column is present. Column order in the file does not matter; extra
// columns are ignored.
func ReadRecords(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingInput, path, err)
	}
	defer f.Close()
	return readRecords(f)
}

func readRecords(r io.Reader) ([]*Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMissingInput, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrSchemaMismatch, col)
		}
	}

	var recs []*Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(recs)+2, err)
		}
		recs = append(recs, &Record{
			IP:             row[idx["ip"]],
			App:            row[idx["app"]],
			Device:         row[idx["device"]],
			OS:             row[idx["os"]],
			Channel:        row[idx["channel"]],
			ClickTime:      row[idx["click_time"]],
			AttributedTime: row[idx["attributed_time"]],
			IsAttributed:   row[idx["is_attributed"]],
		})
	}
	return recs, nil
}

// WriteRecords serializes the enriched rows in input order, raw columns
// first and enriched columns appended. The file is staged to a temp path
// and renamed so a failed run never leaves partial output behind.
func WriteRecords(path string, recs []*Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".enriched-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecords(tmp, recs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalizing output: %w", err)
	}
	return nil
}

func writeRecords(w io.Writer, recs []*Record) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, requiredColumns...), enrichedColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range recs {
		row := []string{
			r.IP, r.App, r.Device, r.OS, r.Channel,
			r.ClickTime, r.AttributedTime, r.IsAttributed,
			r.AdID, r.UserID, r.Country, r.Fingerprint,
			r.ConnType, strconv.Itoa(r.ClusterID), strconv.FormatBool(r.Fraud), r.Email,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
