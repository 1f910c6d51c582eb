package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore is the local, file-backed usage store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the usage database at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening usage db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// campaignFilter builds an optional "AND campaign_id IN (...)" clause.
func campaignFilter(campaignIDs []uuid.UUID, args []any) (string, []any) {
	if len(campaignIDs) == 0 {
		return "", args
	}
	ph := make([]string, len(campaignIDs))
	for i, id := range campaignIDs {
		ph[i] = "?"
		args = append(args, id.String())
	}
	return " AND campaign_id IN (" + strings.Join(ph, ",") + ")", args
}

// HourlyUsage returns hour-grain records within the UTC date bounds.
func (s *SQLiteStore) HourlyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error) {
	args := []any{fromDate, toDate}
	filter, args := campaignFilter(campaignIDs, args)

	rows, err := s.db.QueryContext(ctx, `SELECT
		campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour, spend, impressions
		FROM hourly_usage
		WHERE (utc_year*10000 + utc_month*100 + utc_day) BETWEEN ? AND ?`+filter, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanUsageRows(rows)
}

// DailyUsage returns records pre-summed per UTC day, labeled hour 0.
func (s *SQLiteStore) DailyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error) {
	args := []any{fromDate, toDate}
	filter, args := campaignFilter(campaignIDs, args)

	rows, err := s.db.QueryContext(ctx, `SELECT
		campaign_id, line_item_id, utc_year, utc_month, utc_day, 0, SUM(spend), SUM(impressions)
		FROM hourly_usage
		WHERE (utc_year*10000 + utc_month*100 + utc_day) BETWEEN ? AND ?`+filter+`
		GROUP BY campaign_id, line_item_id, utc_year, utc_month, utc_day`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanUsageRows(rows)
}

func scanUsageRows(rows *sql.Rows) ([]model.HourlyUsageRecord, error) {
	var records []model.HourlyUsageRecord
	for rows.Next() {
		var r model.HourlyUsageRecord
		var campaignID, lineItemID string
		if err := rows.Scan(&campaignID, &lineItemID,
			&r.Year, &r.Month, &r.Day, &r.Hour, &r.Spend, &r.Impressions); err != nil {
			return nil, err
		}
		var err error
		if r.CampaignID, err = uuid.Parse(campaignID); err != nil {
			return nil, fmt.Errorf("bad campaign id %q: %w", campaignID, err)
		}
		if r.LineItemID, err = uuid.Parse(lineItemID); err != nil {
			return nil, fmt.Errorf("bad line item id %q: %w", lineItemID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Campaigns returns campaign metadata with line items and lifetime spend.
func (s *SQLiteStore) Campaigns(ctx context.Context, campaignIDs []uuid.UUID) ([]model.CampaignMeta, error) {
	query := `SELECT
		c.id, c.name, c.budget, c.start_date, c.end_date,
		COALESCE((SELECT SUM(u.spend) FROM hourly_usage u WHERE u.campaign_id = c.id), 0)
		FROM campaigns c`
	var args []any
	if len(campaignIDs) > 0 {
		ph := make([]string, len(campaignIDs))
		for i, id := range campaignIDs {
			ph[i] = "?"
			args = append(args, id.String())
		}
		query += " WHERE c.id IN (" + strings.Join(ph, ",") + ")"
	}
	query += " ORDER BY c.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var campaigns []model.CampaignMeta
	idx := make(map[uuid.UUID]int)
	for rows.Next() {
		var c model.CampaignMeta
		var id, startStr, endStr string
		if err := rows.Scan(&id, &c.Name, &c.Budget, &startStr, &endStr, &c.SpentToDate); err != nil {
			return nil, err
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad campaign id %q: %w", id, err)
		}
		if c.StartDate, err = time.Parse("2006-01-02", startStr); err != nil {
			return nil, fmt.Errorf("bad start date %q: %w", startStr, err)
		}
		if c.EndDate, err = time.Parse("2006-01-02", endStr); err != nil {
			return nil, fmt.Errorf("bad end date %q: %w", endStr, err)
		}
		idx[c.ID] = len(campaigns)
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	liRows, err := s.db.QueryContext(ctx, `SELECT id, campaign_id, name FROM line_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = liRows.Close() }()

	for liRows.Next() {
		var liID, campID, name string
		if err := liRows.Scan(&liID, &campID, &name); err != nil {
			return nil, err
		}
		cid, err := uuid.Parse(campID)
		if err != nil {
			continue
		}
		lid, err := uuid.Parse(liID)
		if err != nil {
			continue
		}
		if i, ok := idx[cid]; ok {
			campaigns[i].LineItems = append(campaigns[i].LineItems, model.LineItem{ID: lid, Name: name})
		}
	}
	return campaigns, liRows.Err()
}

// UpsertCampaign stores campaign metadata and its line items.
func (s *SQLiteStore) UpsertCampaign(ctx context.Context, meta model.CampaignMeta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO campaigns
		(id, name, budget, start_date, end_date) VALUES (?, ?, ?, ?, ?)`,
		meta.ID.String(), meta.Name, meta.Budget,
		meta.StartDate.Format("2006-01-02"), meta.EndDate.Format("2006-01-02"))
	if err != nil {
		return err
	}

	for _, li := range meta.LineItems {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO line_items
			(id, campaign_id, name) VALUES (?, ?, ?)`,
			li.ID.String(), meta.ID.String(), li.Name)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertHourlyUsage stores a batch of hourly records in one transaction.
func (s *SQLiteStore) InsertHourlyUsage(ctx context.Context, records []model.HourlyUsageRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO hourly_usage
		(campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour, spend, impressions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.CampaignID.String(), r.LineItemID.String(),
			r.Year, r.Month, r.Day, r.Hour, r.Spend, r.Impressions); err != nil {
			return err
		}
	}
	return tx.Commit()
}
