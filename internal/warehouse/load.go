package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lib/pq"

	"github.com/fraudsim-project/fraudsim/internal/enrich"
)

// Loader populates the contract tables with the raw click log plus
// synthetic ads, performance stats, and connection rows. The fillers are
// deliberately imperfect (typos, NULLs, duplicates, dirty emails) so the
// clean views have real work to do.
type Loader struct {
	w     *Warehouse
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewLoader builds a loader seeded for reproducible filler data.
func NewLoader(w *Warehouse, seed int64) *Loader {
	return &Loader{
		w:     w,
		faker: gofakeit.New(uint64(seed)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

var adCategories = []string{"Retail", "Tech", "Finance", "Travel"}

// LoadAds inserts n synthetic ads (AD001..ADnnn).
func (l *Loader) LoadAds(ctx context.Context, n int) ([]string, error) {
	ids := make([]string, 0, n)
	now := time.Now()
	for i := 1; i <= n; i++ {
		adID := fmt.Sprintf("AD%03d", i)
		ids = append(ids, adID)
		_, err := l.w.db.ExecContext(ctx, `
			INSERT INTO ads (ad_id, advertiser, campaign_name, category, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (ad_id) DO NOTHING`,
			adID,
			l.faker.Company(),
			fmt.Sprintf("Campaign %d", i),
			adCategories[l.rng.Intn(len(adCategories))],
			l.faker.DateRange(now.AddDate(-1, 0, 0), now),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting ad %s: %w", adID, err)
		}
	}
	l.w.log.Info().Int("ads", n).Msg("ads loaded")
	return ids, nil
}

// clickRow is one raw_clicks row staged for bulk copy.
type clickRow struct {
	adID      string
	ip        string
	device    sql.NullString
	clickTime sql.NullTime
	referrer  string
	userAgent string
}

// LoadClicks bulk-copies the raw click log into raw_clicks, converting
// integer IPs to dotted-quad and synthesizing the columns the log does
// not carry. A slice of the rows is re-appended as logical duplicates
// and several noise passes dirty the data on purpose.
func (l *Loader) LoadClicks(ctx context.Context, csvPath string, adIDs []string) (int, error) {
	recs, err := enrich.ReadRecords(csvPath)
	if err != nil {
		return 0, err
	}

	rows := make([]clickRow, 0, len(recs)+len(recs)/20)
	for _, r := range recs {
		rows = append(rows, clickRow{
			adID:      adIDs[l.rng.Intn(len(adIDs))],
			ip:        DottedQuad(r.IP),
			device:    sql.NullString{String: r.Device, Valid: true},
			clickTime: parseClickTime(r.ClickTime),
			referrer:  l.faker.URL(),
			userAgent: l.faker.UserAgent(),
		})
	}

	// ~5% logical duplicates, then the noise passes.
	base := len(rows)
	for i := 0; i < base; i++ {
		if l.rng.Float64() < 0.05 {
			rows = append(rows, rows[i])
		}
	}
	l.messify(rows)

	n, err := l.copyClicks(ctx, rows)
	if err != nil {
		return 0, err
	}
	l.w.log.Info().Int("rows", n).Str("source", csvPath).Msg("raw clicks loaded")
	return n, nil
}

var (
	mobileTypos  = []string{"Mobile", "MOBILE", "moblie", "moible", " mobile "}
	desktopTypos = []string{"Desktop", "DESKTOP", "deskotp", " deskTop ", "desk top"}
)

// messify applies the controlled imperfections: device-type typos and
// NULLs, UTM-decorated and partially uppercased referrers, bot and empty
// user agents, out-of-range click times, and edge-case IPs.
func (l *Loader) messify(rows []clickRow) {
	now := time.Now()
	for i := range rows {
		switch {
		case l.rng.Float64() < 0.02:
			rows[i].device = sql.NullString{}
		case l.rng.Float64() < 0.10:
			typos := desktopTypos
			if strings.TrimSpace(strings.ToLower(rows[i].device.String)) == "1" {
				typos = mobileTypos
			}
			rows[i].device = sql.NullString{String: typos[l.rng.Intn(len(typos))], Valid: true}
		}

		if l.rng.Float64() < 0.08 {
			rows[i].referrer = AddUTM(rows[i].referrer)
		}
		if l.rng.Float64() < 0.05 {
			rows[i].referrer = strings.Replace(rows[i].referrer, "www.", "WWW.", 1)
		}

		if l.rng.Float64() < 0.01 {
			rows[i].userAgent = "bot/1.0"
		} else if l.rng.Float64() < 0.005 {
			rows[i].userAgent = ""
		}

		if l.rng.Float64() < 0.01 {
			rows[i].clickTime = sql.NullTime{Time: now.AddDate(0, 0, 7), Valid: true}
		} else if l.rng.Float64() < 0.005 {
			rows[i].clickTime = sql.NullTime{Time: now.AddDate(-10, 0, 0), Valid: true}
		}

		if l.rng.Float64() < 0.01 {
			rows[i].ip = "255.255.255.255"
		}
	}
}

func (l *Loader) copyClicks(ctx context.Context, rows []clickRow) (int, error) {
	txn, err := l.w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting copy transaction: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn("raw_clicks",
		"ad_id", "ip_address", "device_type", "click_time", "referrer_url", "user_agent"))
	if err != nil {
		return 0, fmt.Errorf("preparing copy: %w", err)
	}

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.adID, r.ip, r.device, r.clickTime, r.referrer, r.userAgent); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copying click row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flushing copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("closing copy: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("committing copy: %w", err)
	}
	return len(rows), nil
}

// LoadPerformance generates days of daily stats per ad, with a ~25%
// fraud flag rate.
func (l *Loader) LoadPerformance(ctx context.Context, adIDs []string, days int) (int, error) {
	txn, err := l.w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting copy transaction: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn("ad_performance",
		"ad_id", "date", "impressions", "clicks", "ctr",
		"conversions", "conversion_rate", "bounce_rate", "fraud"))
	if err != nil {
		return 0, fmt.Errorf("preparing copy: %w", err)
	}

	count := 0
	today := time.Now().Truncate(24 * time.Hour)
	for _, adID := range adIDs {
		for daysAgo := 0; daysAgo < days; daysAgo++ {
			impressions := 100 + l.rng.Intn(4901)
			clicks := l.rng.Intn(impressions + 1)
			ctr := 0.0
			if impressions > 0 {
				ctr = float64(clicks) / float64(impressions)
			}
			conversions := l.rng.Intn(clicks + 1)
			convRate := 0.0
			if clicks > 0 {
				convRate = float64(conversions) / float64(clicks)
			}
			_, err := stmt.ExecContext(ctx,
				adID,
				today.AddDate(0, 0, -daysAgo),
				impressions,
				clicks,
				round4(ctr),
				conversions,
				round4(convRate),
				round4(l.rng.Float64()),
				l.rng.Intn(4) == 0,
			)
			if err != nil {
				stmt.Close()
				return 0, fmt.Errorf("copying performance row: %w", err)
			}
			count++
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flushing copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("closing copy: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("committing copy: %w", err)
	}
	l.w.log.Info().Int("rows", count).Msg("ad performance loaded")
	return count, nil
}

// LoadConnections generates n connection rows with deliberately dirty
// emails.
func (l *Loader) LoadConnections(ctx context.Context, adIDs []string, n int) (int, error) {
	txn, err := l.w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting copy transaction: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn("ad_connections",
		"ad_id", "ip_address", "connection_datetime", "email"))
	if err != nil {
		return 0, fmt.Errorf("preparing copy: %w", err)
	}

	now := time.Now()
	for i := 0; i < n; i++ {
		email := l.dirtyEmail(l.faker.Email())
		_, err := stmt.ExecContext(ctx,
			adIDs[l.rng.Intn(len(adIDs))],
			l.faker.IPv4Address(),
			l.faker.DateRange(now.AddDate(0, 0, -30), now),
			email,
		)
		if err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copying connection row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flushing copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("closing copy: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("committing copy: %w", err)
	}
	l.w.log.Info().Int("rows", n).Msg("ad connections loaded")
	return n, nil
}

// dirtyEmail degrades a fraction of the generated emails the way real
// form input does.
func (l *Loader) dirtyEmail(email string) string {
	switch {
	case l.rng.Float64() < 0.05:
		return strings.Replace(email, "@", " (at) ", 1)
	case l.rng.Float64() < 0.03:
		return strings.Replace(email, "@", " [at] ", 1)
	case l.rng.Float64() < 0.02:
		return " " + email + " "
	default:
		return email
	}
}

// DottedQuad converts a TalkingData integer IP to IPv4 dotted-quad.
// Values already in dotted form pass through unchanged.
func DottedQuad(ip string) string {
	if strings.Contains(ip, ".") {
		return ip
	}
	n, err := strconv.ParseUint(ip, 10, 64)
	if err != nil {
		return ip
	}
	v := uint32(n)
	return fmt.Sprintf("%d.%d.%d.%d", v>>24&255, v>>16&255, v>>8&255, v&255)
}

// AddUTM appends newsletter UTM parameters to a referrer URL.
func AddUTM(u string) string {
	if u == "" {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "utm_source=NEWSLETTER&utm_medium=Email&utm_campaign=Q3"
}

func round4(f float64) float64 {
	return float64(int(f*10000+0.5)) / 10000
}

func parseClickTime(s string) sql.NullTime {
	if s == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
