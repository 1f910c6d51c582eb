package model

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyAllocationRow assigns part of a campaign's remaining budget to one
// future Monday-Sunday window. Campaigns with no remaining budget or no
// overlap with a week simply have no row: a zero allocation is never emitted.
type WeeklyAllocationRow struct {
	WeekStart    time.Time
	WeekEnd      time.Time
	CampaignID   uuid.UUID
	CampaignName string
	WeeklyBudget float64
}
