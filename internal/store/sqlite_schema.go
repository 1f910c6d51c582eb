package store

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    budget      REAL NOT NULL DEFAULT 0,
    start_date  TEXT NOT NULL,
    end_date    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS line_items (
    id           TEXT PRIMARY KEY,
    campaign_id  TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    name         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS hourly_usage (
    campaign_id   TEXT NOT NULL,
    line_item_id  TEXT NOT NULL,
    utc_year      INTEGER NOT NULL,
    utc_month     INTEGER NOT NULL,
    utc_day       INTEGER NOT NULL,
    utc_hour      INTEGER NOT NULL,
    spend         REAL NOT NULL DEFAULT 0,
    impressions   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour)
);

CREATE INDEX IF NOT EXISTS idx_usage_date
    ON hourly_usage(utc_year, utc_month, utc_day);
CREATE INDEX IF NOT EXISTS idx_line_items_campaign
    ON line_items(campaign_id);
`
