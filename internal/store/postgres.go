package store

import (
	"context"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements UsageStore against the shared reporting database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a connection pool for the given address and verifies
// connectivity with a short ping. The caller owns Close.
func OpenPostgres(ctx context.Context, addr string) (*PostgresStore, error) {
	conf, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, err
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// idStrings converts UUIDs to the text form the queries filter on.
func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// HourlyUsage returns hour-grain records within the UTC date bounds.
func (s *PostgresStore) HourlyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error) {
	query := `SELECT
		campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour, spend, impressions
		FROM hourly_usage
		WHERE (utc_year*10000 + utc_month*100 + utc_day) BETWEEN $1 AND $2
		  AND ($3::text[] IS NULL OR campaign_id::text = ANY($3))`
	rows, err := s.pool.Query(ctx, query, fromDate, toDate, textArray(campaignIDs))
	if err != nil {
		return nil, err
	}
	return collectUsage(rows)
}

// DailyUsage returns records pre-summed per UTC day, labeled hour 0.
func (s *PostgresStore) DailyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error) {
	query := `SELECT
		campaign_id, line_item_id, utc_year, utc_month, utc_day, 0, SUM(spend), SUM(impressions)
		FROM hourly_usage
		WHERE (utc_year*10000 + utc_month*100 + utc_day) BETWEEN $1 AND $2
		  AND ($3::text[] IS NULL OR campaign_id::text = ANY($3))
		GROUP BY campaign_id, line_item_id, utc_year, utc_month, utc_day`
	rows, err := s.pool.Query(ctx, query, fromDate, toDate, textArray(campaignIDs))
	if err != nil {
		return nil, err
	}
	return collectUsage(rows)
}

// textArray yields nil for an empty filter so the SQL guard short-circuits.
func textArray(ids []uuid.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	return idStrings(ids)
}

func collectUsage(rows pgx.Rows) ([]model.HourlyUsageRecord, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.HourlyUsageRecord, error) {
		var r model.HourlyUsageRecord
		err := row.Scan(&r.CampaignID, &r.LineItemID,
			&r.Year, &r.Month, &r.Day, &r.Hour, &r.Spend, &r.Impressions)
		return r, err
	})
}

// Campaigns returns campaign metadata with line items and lifetime spend.
func (s *PostgresStore) Campaigns(ctx context.Context, campaignIDs []uuid.UUID) ([]model.CampaignMeta, error) {
	query := `SELECT
		c.id, c.name, c.budget, c.start_date, c.end_date,
		COALESCE((SELECT SUM(u.spend) FROM hourly_usage u WHERE u.campaign_id = c.id), 0)
		FROM campaigns c
		WHERE ($1::text[] IS NULL OR c.id::text = ANY($1))
		ORDER BY c.name`
	rows, err := s.pool.Query(ctx, query, textArray(campaignIDs))
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CampaignMeta, error) {
		var c model.CampaignMeta
		err := row.Scan(&c.ID, &c.Name, &c.Budget, &c.StartDate, &c.EndDate, &c.SpentToDate)
		return c, err
	})
	if err != nil {
		return nil, err
	}

	idx := make(map[uuid.UUID]int, len(campaigns))
	for i, c := range campaigns {
		idx[c.ID] = i
	}

	liRows, err := s.pool.Query(ctx, `SELECT id, campaign_id, name FROM line_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	type liRow struct {
		ID         uuid.UUID
		CampaignID uuid.UUID
		Name       string
	}
	items, err := pgx.CollectRows(liRows, func(row pgx.CollectableRow) (liRow, error) {
		var li liRow
		err := row.Scan(&li.ID, &li.CampaignID, &li.Name)
		return li, err
	})
	if err != nil {
		return nil, err
	}
	for _, li := range items {
		if i, ok := idx[li.CampaignID]; ok {
			campaigns[i].LineItems = append(campaigns[i].LineItems, model.LineItem{ID: li.ID, Name: li.Name})
		}
	}
	return campaigns, nil
}

// UpsertCampaign stores campaign metadata and its line items.
func (s *PostgresStore) UpsertCampaign(ctx context.Context, meta model.CampaignMeta) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `INSERT INTO campaigns (id, name, budget, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, budget = EXCLUDED.budget,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`,
		meta.ID, meta.Name, meta.Budget, meta.StartDate, meta.EndDate)
	if err != nil {
		return err
	}

	for _, li := range meta.LineItems {
		_, err = tx.Exec(ctx, `INSERT INTO line_items (id, campaign_id, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
			li.ID, meta.ID, li.Name)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// InsertHourlyUsage stores a batch of hourly records in one transaction.
func (s *PostgresStore) InsertHourlyUsage(ctx context.Context, records []model.HourlyUsageRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, r := range records {
		_, err = tx.Exec(ctx, `INSERT INTO hourly_usage
			(campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour, spend, impressions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (campaign_id, line_item_id, utc_year, utc_month, utc_day, utc_hour)
			DO UPDATE SET spend = EXCLUDED.spend, impressions = EXCLUDED.impressions`,
			r.CampaignID, r.LineItemID, r.Year, r.Month, r.Day, r.Hour, r.Spend, r.Impressions)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
