package domain

import "time"

// CampaignRecord is a generated campaign ID together with the criteria it
// was derived from. Records are never mutated after insertion.
type CampaignRecord struct {
	ID        string    `json:"campaign_id"`
	Criteria  Criteria  `json:"criteria"`
	CreatedAt time.Time `json:"creation_date"`
}
