// Package store provides access to hourly usage records and campaign
// metadata. Two implementations exist: a SQLite file for local use and a
// Postgres database for shared deployments, both behind the same port.
package store

import (
	"context"

	"adpace/internal/model"

	"github.com/google/uuid"
)

// UsageStore is the engine's view of the data-store collaborator. Date bounds
// are inclusive YYYYMMDD integers in UTC. An empty campaign ID list means all
// campaigns.
type UsageStore interface {
	// HourlyUsage returns hour-grain records, required whenever the
	// reporting timezone is not UTC.
	HourlyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error)

	// DailyUsage returns records pre-summed per UTC day (hour 0),
	// sufficient when reporting in UTC.
	DailyUsage(ctx context.Context, campaignIDs []uuid.UUID, fromDate, toDate int) ([]model.HourlyUsageRecord, error)

	// Campaigns returns campaign metadata with line-item names and
	// lifetime spend-to-date filled in.
	Campaigns(ctx context.Context, campaignIDs []uuid.UUID) ([]model.CampaignMeta, error)

	Close() error
}

// Writer is implemented by stores that accept data, used by seeding and
// ingest tooling.
type Writer interface {
	UpsertCampaign(ctx context.Context, meta model.CampaignMeta) error
	InsertHourlyUsage(ctx context.Context, records []model.HourlyUsageRecord) error
}
