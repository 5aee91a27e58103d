package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Jose00521/Raffle-sub002/internal/allocation"
	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/internal/notify"
	"github.com/Jose00521/Raffle-sub002/internal/numberspace"
	"github.com/Jose00521/Raffle-sub002/pkg/database"
)

// createState tracks where the campaign-creation unit of work is. Any
// failure in a non-terminal state rolls the whole transaction back.
type createState string

const (
	stateDraft              createState = "DRAFT"
	stateTicketsInitialized createState = "TICKETS_INITIALIZED"
	statePrizesAssigned     createState = "PRIZES_ASSIGNED"
	stateCommitted          createState = "COMMITTED"
	stateAborted            createState = "ABORTED"
)

// CampaignRepositoryInterface defines the interface for campaign data access.
type CampaignRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, c *model.Campaign) error
	GetByCode(ctx context.Context, code string) (*model.Campaign, error)
}

// TicketRepositoryInterface defines the interface for ticket data access.
type TicketRepositoryInterface interface {
	BulkInit(ctx context.Context, tx database.TxQuerier, campaignID int64, total int) error
}

// PrizeRepositoryInterface defines the interface for instant-prize data access.
type PrizeRepositoryInterface interface {
	InsertAll(ctx context.Context, tx database.TxQuerier, campaignID int64, prizes []model.InstantPrize) error
	ListByCampaign(ctx context.Context, campaignID int64) ([]model.InstantPrize, error)
}

// ReferenceResolverInterface translates external codes to internal ids.
type ReferenceResolverInterface interface {
	ResolveUser(ctx context.Context, code string) (int64, error)
	ResolveItems(ctx context.Context, codes []string) ([]int64, error)
}

// Notifier announces committed campaigns. Delivery failures never fail the
// creation.
type Notifier interface {
	CampaignCreated(ctx context.Context, ev notify.Event) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CampaignService owns the campaign-creation transaction: campaign record,
// ticket-space initialization and instant-prize allocation commit as one
// atomic unit or not at all.
type CampaignService struct {
	pool         TxBeginner
	campaignRepo CampaignRepositoryInterface
	ticketRepo   TicketRepositoryInterface
	prizeRepo    PrizeRepositoryInterface
	references   ReferenceResolverInterface
	allocator    *allocation.Allocator
	notifier     Notifier
}

// NewCampaignService creates a CampaignService wired to a pgx pool.
func NewCampaignService(
	pool *pgxpool.Pool,
	campaignRepo CampaignRepositoryInterface,
	ticketRepo TicketRepositoryInterface,
	prizeRepo PrizeRepositoryInterface,
	references ReferenceResolverInterface,
	allocator *allocation.Allocator,
	notifier Notifier,
) *CampaignService {
	return &CampaignService{
		pool:         pool,
		campaignRepo: campaignRepo,
		ticketRepo:   ticketRepo,
		prizeRepo:    prizeRepo,
		references:   references,
		allocator:    allocator,
		notifier:     notifier,
	}
}

// NewCampaignServiceWithTxBeginner creates a CampaignService with a custom
// TxBeginner. Primarily used for testing.
func NewCampaignServiceWithTxBeginner(
	pool TxBeginner,
	campaignRepo CampaignRepositoryInterface,
	ticketRepo TicketRepositoryInterface,
	prizeRepo PrizeRepositoryInterface,
	references ReferenceResolverInterface,
	allocator *allocation.Allocator,
	notifier Notifier,
) *CampaignService {
	return &CampaignService{
		pool:         pool,
		campaignRepo: campaignRepo,
		ticketRepo:   ticketRepo,
		prizeRepo:    prizeRepo,
		references:   references,
		allocator:    allocator,
		notifier:     notifier,
	}
}

// Create runs the full campaign-creation flow.
//
// References are resolved before any write; a transient store failure rolls
// back and is retried exactly once; every other failure aborts with nothing
// persisted. Capacity shortfalls ride along as warnings on a successful
// result. Re-invoking after a successful commit creates a second campaign.
func (s *CampaignService) Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error) {
	if req == nil || req.TotalNumbers == nil {
		return nil, ErrInvalidRequest
	}

	space, err := numberspace.New(*req.TotalNumbers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// Validate the prize request before touching the store so input bugs
	// (out-of-range or duplicated fixed numbers) fail fast.
	norm, err := allocation.Normalize(space, req.Prizes)
	if err != nil {
		return nil, err
	}

	// Step 1: resolve external references; no write has happened yet.
	creatorID, err := s.references.ResolveUser(ctx, req.CreatorCode)
	if err != nil {
		return nil, err
	}
	itemCodes := norm.ItemCodes()
	itemIDs, err := s.references.ResolveItems(ctx, itemCodes)
	if err != nil {
		return nil, err
	}
	itemsByCode := make(map[string]int64, len(itemCodes))
	for i, code := range itemCodes {
		itemsByCode[code] = itemIDs[i]
	}

	var result *model.CreateCampaignResponse
	var campaign *model.Campaign
	var categories int
	for attempt := 0; ; attempt++ {
		result, campaign, categories, err = s.createOnce(ctx, space, req, creatorID, itemsByCode)
		if err == nil {
			break
		}
		if attempt == 0 && database.IsTransient(err) {
			log.Warn().Err(err).Msg("transient store failure during campaign creation, retrying once")
			continue
		}
		return nil, err
	}

	// Post-commit announcement. Best effort only.
	ev := notify.Event{
		EventID:            uuid.NewString(),
		CampaignID:         campaign.ID,
		CampaignCode:       campaign.CampaignCode,
		TicketCount:        campaign.TotalNumbers,
		PrizeCategoryCount: categories,
		CommittedAt:        time.Now().UTC(),
	}
	if nerr := s.notifier.CampaignCreated(ctx, ev); nerr != nil {
		log.Warn().Err(nerr).
			Str("campaign_code", campaign.CampaignCode).
			Msg("campaign created but notification failed")
	}

	return result, nil
}

// createOnce executes one attempt of the atomic unit of work. The exclusion
// set is rebuilt per attempt so a retried allocation never sees stale draws.
func (s *CampaignService) createOnce(
	ctx context.Context,
	space numberspace.Space,
	req *model.CreateCampaignRequest,
	creatorID int64,
	itemsByCode map[string]int64,
) (*model.CreateCampaignResponse, *model.Campaign, int, error) {
	norm, err := allocation.Normalize(space, req.Prizes)
	if err != nil {
		return nil, nil, 0, err
	}

	campaign := &model.Campaign{
		CampaignCode: uuid.NewString(),
		CreatorID:    creatorID,
		Title:        req.Title,
		TotalNumbers: space.Capacity(),
		Status:       model.CampaignActive,
	}
	s.logState(campaign.CampaignCode, stateDraft)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	// Step 2: campaign record.
	if err := s.campaignRepo.Insert(ctx, tx, campaign); err != nil {
		return nil, nil, 0, s.abort(campaign.CampaignCode, err)
	}

	// Step 3: bulk ticket initialization, the dominant cost at scale.
	if err := s.ticketRepo.BulkInit(ctx, tx, campaign.ID, campaign.TotalNumbers); err != nil {
		return nil, nil, 0, s.abort(campaign.CampaignCode, err)
	}
	s.logState(campaign.CampaignCode, stateTicketsInitialized)

	// Step 4: allocation.
	assignments, warnings, err := s.allocator.Allocate(space, norm)
	if err != nil {
		return nil, nil, 0, s.abort(campaign.CampaignCode, err)
	}

	// Step 5: persist the assignment set.
	prizes := make([]model.InstantPrize, len(assignments))
	for i, asg := range assignments {
		p := model.InstantPrize{
			CampaignID: campaign.ID,
			CategoryID: asg.CategoryID,
			Type:       asg.Type,
			Number:     asg.Number,
			Value:      asg.Value,
			ItemCode:   asg.ItemCode,
			ItemName:   asg.Name,
		}
		if asg.ItemCode != "" {
			if id, ok := itemsByCode[asg.ItemCode]; ok {
				itemID := id
				p.ItemID = &itemID
			}
		}
		prizes[i] = p
	}
	if err := s.prizeRepo.InsertAll(ctx, tx, campaign.ID, prizes); err != nil {
		return nil, nil, 0, s.abort(campaign.CampaignCode, err)
	}
	s.logState(campaign.CampaignCode, statePrizesAssigned)

	// Step 6: commit.
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, 0, s.abort(campaign.CampaignCode, fmt.Errorf("commit campaign: %w", err))
	}
	s.logState(campaign.CampaignCode, stateCommitted)

	categories := make(map[string]struct{})
	for _, asg := range assignments {
		categories[asg.CategoryID] = struct{}{}
	}

	resp := &model.CreateCampaignResponse{
		CampaignCode: campaign.CampaignCode,
		Title:        campaign.Title,
		TotalNumbers: campaign.TotalNumbers,
		Status:       string(campaign.Status),
		Prizes:       prizeResponses(space, prizes),
		Warnings:     warningResponses(warnings),
	}
	return resp, campaign, len(categories), nil
}

// GetPrizes returns the committed assignment list of a campaign.
// Returns ErrCampaignNotFound if the campaign doesn't exist.
func (s *CampaignService) GetPrizes(ctx context.Context, code string) (*model.CampaignPrizesResponse, error) {
	campaign, err := s.campaignRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	prizes, err := s.prizeRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("list prizes: %w", err)
	}

	space, err := numberspace.New(campaign.TotalNumbers)
	if err != nil {
		return nil, fmt.Errorf("campaign %s has invalid number space: %w", code, err)
	}

	return &model.CampaignPrizesResponse{
		CampaignCode: campaign.CampaignCode,
		TotalNumbers: campaign.TotalNumbers,
		Prizes:       prizeResponses(space, prizes),
	}, nil
}

func (s *CampaignService) logState(code string, st createState) {
	log.Info().Str("campaign_code", code).Str("state", string(st)).Msg("campaign creation state")
}

func (s *CampaignService) abort(code string, err error) error {
	log.Error().Err(err).Str("campaign_code", code).Str("state", string(stateAborted)).
		Msg("campaign creation aborted, rolling back")
	return err
}

func prizeResponses(space numberspace.Space, prizes []model.InstantPrize) []model.PrizeResponse {
	out := make([]model.PrizeResponse, len(prizes))
	for i, p := range prizes {
		out[i] = model.PrizeResponse{
			CategoryID: p.CategoryID,
			Type:       string(p.Type),
			Number:     space.Format(p.Number),
			Value:      p.Value,
			ItemCode:   p.ItemCode,
			ItemName:   p.ItemName,
		}
	}
	return out
}

func warningResponses(warnings []allocation.ShortfallWarning) []model.WarningResponse {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]model.WarningResponse, len(warnings))
	for i, w := range warnings {
		out[i] = model.WarningResponse{
			CategoryID: w.CategoryID,
			Type:       string(w.Type),
			Requested:  w.Requested,
			Assigned:   w.Assigned,
		}
	}
	return out
}
