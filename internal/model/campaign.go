package model

import "time"

// CampaignStatus is the lifecycle status of a committed campaign.
type CampaignStatus string

const (
	CampaignActive   CampaignStatus = "ACTIVE"
	CampaignFinished CampaignStatus = "FINISHED"
	CampaignCanceled CampaignStatus = "CANCELED"
)

// TicketStatus is the sale state of a single ticket number.
type TicketStatus string

const (
	TicketAvailable TicketStatus = "AVAILABLE"
	TicketReserved  TicketStatus = "RESERVED"
	TicketPaid      TicketStatus = "PAID"
)

// PrizeType distinguishes cash pools from physical item prizes.
type PrizeType string

const (
	PrizeMoney PrizeType = "MONEY"
	PrizeItem  PrizeType = "ITEM"
)

// Campaign is a raffle over the ticket number space [0, TotalNumbers).
type Campaign struct {
	ID           int64          `json:"-"`
	CampaignCode string         `json:"campaign_code"`
	CreatorID    int64          `json:"-"`
	Title        string         `json:"title"`
	TotalNumbers int            `json:"total_numbers"`
	Status       CampaignStatus `json:"status"`
	CreatedAt    time.Time      `json:"-"`
}

// Ticket is one number of a campaign's space. Created in bulk as AVAILABLE
// at campaign creation; sale flows mutate the status later.
type Ticket struct {
	CampaignID int64
	Number     int
	Status     TicketStatus
}

// InstantPrize is one committed (category, ticket number) assignment.
// Immutable after campaign creation.
type InstantPrize struct {
	ID         int64
	CampaignID int64
	CategoryID string
	Type       PrizeType
	Number     int
	Value      float64
	ItemID     *int64
	ItemCode   string
	ItemName   string
}
