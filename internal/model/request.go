package model

// PrizeEntry is one raw entry of an instant-prize request. A MONEY entry
// carries a quantity of equally valued cash prizes to be drawn randomly.
// An ITEM entry carries either a caller-fixed ticket number or an empty
// number meaning "assign randomly".
type PrizeEntry struct {
	Type       string  `json:"type" validate:"required,oneof=money item"`
	CategoryID string  `json:"category_id" validate:"required,notblank,max=64"`
	Quantity   int     `json:"quantity" validate:"omitempty,gte=1"`
	Number     string  `json:"number" validate:"omitempty,ticketnumber"`
	Value      float64 `json:"value" validate:"required,gt=0"`
	ItemCode   string  `json:"item_code" validate:"omitempty,max=64"`
	Name       string  `json:"name" validate:"omitempty,max=255"`
}

// CreateCampaignRequest is the DTO for creating a campaign with its
// instant-prize request. Monetary/business fields beyond these are validated
// upstream and opaque to this service.
type CreateCampaignRequest struct {
	Title        string       `json:"title" validate:"required,notblank,max=255"`
	TotalNumbers *int         `json:"total_numbers" validate:"required,gte=1"`
	CreatorCode  string       `json:"creator_code" validate:"required,notblank,max=64"`
	Prizes       []PrizeEntry `json:"prizes" validate:"omitempty,dive"`
}

// PrizeResponse is the API view of one committed assignment.
type PrizeResponse struct {
	CategoryID string  `json:"category_id"`
	Type       string  `json:"type"`
	Number     string  `json:"number"`
	Value      float64 `json:"value"`
	ItemCode   string  `json:"item_code,omitempty"`
	ItemName   string  `json:"item_name,omitempty"`
}

// WarningResponse surfaces a capacity shortfall alongside a successful
// creation.
type WarningResponse struct {
	CategoryID string `json:"category_id"`
	Type       string `json:"type"`
	Requested  int    `json:"requested"`
	Assigned   int    `json:"assigned"`
}

// CreateCampaignResponse is returned by POST /api/campaigns.
type CreateCampaignResponse struct {
	CampaignCode string            `json:"campaign_code"`
	Title        string            `json:"title"`
	TotalNumbers int               `json:"total_numbers"`
	Status       string            `json:"status"`
	Prizes       []PrizeResponse   `json:"prizes"`
	Warnings     []WarningResponse `json:"warnings,omitempty"`
}

// CampaignPrizesResponse is returned by GET /api/campaigns/:code/prizes.
type CampaignPrizesResponse struct {
	CampaignCode string          `json:"campaign_code"`
	TotalNumbers int             `json:"total_numbers"`
	Prizes       []PrizeResponse `json:"prizes"`
}
