package enrich

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHeader = "ip,app,device,os,channel,click_time,attributed_time,is_attributed"

func writeSample(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ─── ReadRecords ──────────────────────────────────────────────────────────────

func TestReadRecords(t *testing.T) {
	path := writeSample(t,
		sampleHeader,
		"87540,12,1,13,497,2017-11-07 09:30:38,,0",
		"105560,25,1,17,259,2017-11-07 13:40:27,2017-11-07 13:41:00,1",
	)
	recs, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d rows, want 2", len(recs))
	}
	r := recs[0]
	if r.IP != "87540" || r.App != "12" || r.Device != "1" || r.OS != "13" || r.Channel != "497" {
		t.Errorf("row 0 misparsed: %+v", r)
	}
	if recs[1].AttributedTime != "2017-11-07 13:41:00" || recs[1].IsAttributed != "1" {
		t.Errorf("row 1 attribution misparsed: %+v", recs[1])
	}
}

func TestReadRecords_ColumnOrderIndependent(t *testing.T) {
	path := writeSample(t,
		"channel,ip,is_attributed,app,device,os,attributed_time,click_time,extra",
		"497,87540,0,12,1,13,,2017-11-07 09:30:38,ignored",
	)
	recs, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if recs[0].IP != "87540" || recs[0].Channel != "497" {
		t.Errorf("shuffled header misparsed: %+v", recs[0])
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("error %v, want ErrMissingInput", err)
	}
}

func TestReadRecords_SchemaMismatch(t *testing.T) {
	for _, drop := range requiredColumns {
		var cols []string
		for _, c := range requiredColumns {
			if c != drop {
				cols = append(cols, c)
			}
		}
		path := writeSample(t, strings.Join(cols, ","))
		_, err := ReadRecords(path)
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("dropping %q: error %v, want ErrSchemaMismatch", drop, err)
		}
		if err != nil && !strings.Contains(err.Error(), drop) {
			t.Errorf("dropping %q: error %v should name the missing column", drop, err)
		}
	}
}

// ─── WriteRecords ─────────────────────────────────────────────────────────────

func TestWriteRecords_RoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.csv")
	recs := []*Record{
		{
			IP: "87540", App: "12", Device: "1", OS: "13", Channel: "497",
			ClickTime: "2017-11-07 09:30:38", IsAttributed: "0",
			AdID: "AD007", UserID: "U0042123", Country: "FR",
			Fingerprint: "deadbeefdeadbeef", ConnType: "wifi",
			ClusterID: 3, Fraud: true, Email: "frauder001@mail.ru",
		},
	}
	if err := WriteRecords(out, recs); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}

	got, err := ReadRecords(out)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(got) != 1 || got[0].IP != "87540" || got[0].ClickTime != "2017-11-07 09:30:38" {
		t.Errorf("round trip lost raw fields: %+v", got[0])
	}
}

func TestWriteRecords_HeaderOrder(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteRecords(out, nil); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleHeader + ",ad_id,user_id,country,device_fingerprint,connection_type,fraud_cluster_id,is_synthetic_fraud,email\n"
	if string(data) != want {
		t.Errorf("header = %q, want %q", string(data), want)
	}
}

func TestWriteRecords_EnrichedValues(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	recs := []*Record{
		{IP: "1", ClusterID: 0, Fraud: false},
		{IP: "2", ClusterID: 7, Fraud: true},
	}
	if err := WriteRecords(out, recs); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], ",0,false,") {
		t.Errorf("baseline row %q should carry cluster 0 and false", lines[1])
	}
	if !strings.Contains(lines[2], ",7,true,") {
		t.Errorf("fraud row %q should carry cluster 7 and true", lines[2])
	}
}
