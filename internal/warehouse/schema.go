package warehouse

import (
	"context"
	"fmt"
)

// Table DDL mirrors the downstream relational contract: the enriched
// flat file must stay join-compatible with these on ad_id / ip_address.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS ads (
    ad_id VARCHAR(50) PRIMARY KEY,
    advertiser VARCHAR(255),
    campaign_name VARCHAR(255),
    category VARCHAR(100),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS raw_clicks (
    click_id SERIAL PRIMARY KEY,
    ad_id VARCHAR(50) REFERENCES ads(ad_id),
    ip_address INET,
    device_type VARCHAR(50),
    click_time TIMESTAMP,
    referrer_url TEXT,
    user_agent TEXT
);

CREATE TABLE IF NOT EXISTS ad_performance (
    perf_id SERIAL PRIMARY KEY,
    ad_id VARCHAR(50) REFERENCES ads(ad_id),
    date DATE,
    impressions INT,
    clicks INT,
    ctr NUMERIC(5,4),
    conversions INT,
    conversion_rate NUMERIC(5,4),
    bounce_rate NUMERIC(5,4),
    fraud BOOLEAN
);

CREATE TABLE IF NOT EXISTS ad_connections (
    conn_id SERIAL PRIMARY KEY,
    ad_id VARCHAR(50) REFERENCES ads(ad_id),
    ip_address INET,
    connection_datetime TIMESTAMP,
    email TEXT
);
`

// The clean schema holds BI-ready materialized views over the raw
// tables, normalizing casing, trimming, and filtering malformed rows.
const cleanViewsSQL = `
CREATE SCHEMA IF NOT EXISTS clean;

DROP MATERIALIZED VIEW IF EXISTS clean.ads;
DROP MATERIALIZED VIEW IF EXISTS clean.raw_clicks;
DROP MATERIALIZED VIEW IF EXISTS clean.ad_performance;
DROP MATERIALIZED VIEW IF EXISTS clean.ad_connections;

CREATE MATERIALIZED VIEW clean.ads AS
SELECT DISTINCT
    ad_id,
    INITCAP(TRIM(advertiser))    AS advertiser,
    INITCAP(TRIM(campaign_name)) AS campaign_name,
    INITCAP(TRIM(category))      AS category,
    created_at
FROM ads
WHERE ad_id IS NOT NULL;

CREATE MATERIALIZED VIEW clean.raw_clicks AS
SELECT
    ad_id,
    NULLIF(TRIM(LOWER(device_type)), '') AS device_type,
    ip_address,
    click_time,
    referrer_url,
    user_agent
FROM raw_clicks
WHERE click_time IS NOT NULL
  AND ip_address::text ~ '^(?:\d{1,3}\.){3}\d{1,3}$';

CREATE MATERIALIZED VIEW clean.ad_performance AS
SELECT
    ad_id,
    date,
    impressions,
    clicks,
    ctr,
    conversions,
    conversion_rate,
    bounce_rate,
    fraud
FROM ad_performance
WHERE impressions >= 0 AND clicks >= 0;

CREATE MATERIALIZED VIEW clean.ad_connections AS
SELECT
    ad_id,
    ip_address,
    connection_datetime,
    CASE
        WHEN email ~ '^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$'
        THEN LOWER(TRIM(email))
        ELSE NULL
    END AS email
FROM ad_connections;
`

// cleanViews lists the refresh order (dependencies first, if any).
var cleanViews = []string{
	"clean.ads",
	"clean.raw_clicks",
	"clean.ad_performance",
	"clean.ad_connections",
}

// EnsureSchema creates the four contract tables when absent.
func (w *Warehouse) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	w.log.Info().Msg("contract tables ensured")
	return nil
}

// CreateCleanViews builds (or rebuilds) the clean schema and its
// materialized views.
func (w *Warehouse) CreateCleanViews(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, cleanViewsSQL); err != nil {
		return fmt.Errorf("creating clean views: %w", err)
	}
	w.log.Info().Msg("clean schema and materialized views created")
	return nil
}

// RefreshCleanViews refreshes every clean materialized view in order.
func (w *Warehouse) RefreshCleanViews(ctx context.Context) error {
	for _, view := range cleanViews {
		w.log.Info().Str("view", view).Msg("refreshing materialized view")
		if _, err := w.db.ExecContext(ctx, "REFRESH MATERIALIZED VIEW "+view); err != nil {
			return fmt.Errorf("refreshing %s: %w", view, err)
		}
	}
	return nil
}
