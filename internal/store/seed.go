package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"adpace/internal/model"

	"github.com/google/uuid"
)

// seedID derives a stable UUID from a label so reseeding is idempotent.
func seedID(label string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("adpace/"+label))
}

// Seed fills a writable store with a deterministic demo portfolio: three
// campaigns with two line items each and hourly usage covering the given
// number of days back from today. Hours near UTC midnight get the heaviest
// spend so non-UTC reporting visibly redistributes across day boundaries.
func Seed(ctx context.Context, w Writer, today time.Time, days int) error {
	day := model.DateOnly(today)
	start := day.AddDate(0, 0, -days)

	campaigns := []model.CampaignMeta{
		{
			ID:        seedID("campaign/brand-awareness"),
			Name:      "Brand Awareness Q4",
			Budget:    466000,
			StartDate: start,
			EndDate:   day.AddDate(0, 0, 33),
			LineItems: []model.LineItem{
				{ID: seedID("line/brand-video"), Name: "Brand Video 30s"},
				{ID: seedID("line/brand-display"), Name: "Brand Display 300x250"},
			},
		},
		{
			ID:        seedID("campaign/retargeting"),
			Name:      "Retargeting Always-On",
			Budget:    120000,
			StartDate: start,
			EndDate:   day.AddDate(0, 0, 61),
			LineItems: []model.LineItem{
				{ID: seedID("line/retarget-native"), Name: "Retargeting Native"},
				{ID: seedID("line/retarget-display"), Name: "Retargeting Display"},
			},
		},
		{
			ID:        seedID("campaign/holiday-push"),
			Name:      "Holiday Push",
			Budget:    85000,
			StartDate: start.AddDate(0, 0, 7),
			EndDate:   day.AddDate(0, 0, 10),
			LineItems: []model.LineItem{
				{ID: seedID("line/holiday-video"), Name: "Holiday Video 15s"},
				{ID: seedID("line/holiday-social"), Name: "Holiday Social"},
			},
		},
	}

	var records []model.HourlyUsageRecord
	for ci, c := range campaigns {
		base := c.Budget / float64(days*30)
		for d := 0; d < days; d++ {
			date := c.StartDate.AddDate(0, 0, d)
			if date.After(day) || date.After(c.EndDate) {
				break
			}
			for li, item := range c.LineItems {
				for hour := 0; hour < 24; hour += 2 {
					// Sine wave over the day, peaking near midnight UTC.
					weight := 1.5 + math.Cos(2*math.Pi*float64(hour)/24)
					spend := base * weight * (1 + 0.25*float64(li))
					records = append(records, model.HourlyUsageRecord{
						CampaignID:  c.ID,
						LineItemID:  item.ID,
						Year:        date.Year(),
						Month:       int(date.Month()),
						Day:         date.Day(),
						Hour:        hour,
						Spend:       math.Round(spend*100) / 100,
						Impressions: int64(1000*(ci+1)) + int64(50*hour),
					})
				}
			}
		}
	}

	for _, c := range campaigns {
		if err := w.UpsertCampaign(ctx, c); err != nil {
			return fmt.Errorf("seeding campaign %s: %w", c.Name, err)
		}
	}
	if err := w.InsertHourlyUsage(ctx, records); err != nil {
		return fmt.Errorf("seeding usage: %w", err)
	}
	return nil
}
