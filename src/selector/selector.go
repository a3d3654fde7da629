package selector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/strikepick/strikepick/src/eventpubsub"
	"github.com/strikepick/strikepick/src/models"
)

// RecordSink receives the audit row for each selection call. Implementations
// must not block: a slow store should enqueue or fail fast, never stall the
// selection path.
type RecordSink interface {
	Write(ctx context.Context, record *models.SelectionRecord) error
}

type ContractSelector struct {
	policy models.SelectionPolicyYAML
	sink   RecordSink
}

func NewContractSelector(policy models.SelectionPolicyYAML, sink RecordSink) *ContractSelector {
	return &ContractSelector{
		policy: policy,
		sink:   sink,
	}
}

func (s *ContractSelector) Policy() models.SelectionPolicyYAML {
	return s.policy
}

// Select runs one request end-to-end: normalize, filter, score, explain,
// persist. The caller always gets either a concrete selection or an explicit
// empty outcome with the full funnel tally; a failing sink only adds a
// warning, it never fails the call.
func (s *ContractSelector) Select(ctx context.Context, req *models.SelectionRequest, entries []models.ChainEntry) (*models.SelectionResult, error) {
	if req == nil {
		return nil, fmt.Errorf("ContractSelector.Select: request is required")
	}

	if req.RequestID == uuid.Nil {
		req.RequestID = uuid.New()
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("ContractSelector.Select: %w", err)
	}

	start := time.Now()

	deduped := models.DedupeChainEntries(entries)
	candidates, drops := NormalizeEntries(deduped, req)
	funnel := RunFunnel(candidates, req, s.policy, drops)
	winner := PickBest(funnel.Survivors)

	result := s.assembleResult(req, winner, funnel)
	result.SelectionTimeMs = time.Since(start).Milliseconds()

	if err := s.persist(ctx, result); err != nil {
		log.WithFields(log.Fields{
			"request_id": req.RequestID,
			"ticker":     req.Ticker,
		}).Warnf("ContractSelector.Select: audit record not persisted: %v", err)

		result.Warnings = append(result.Warnings, fmt.Sprintf("audit record not persisted: %v", err))
	}

	eventpubsub.PublishSelectionCompleted(result)

	return result, nil
}

func (s *ContractSelector) assembleResult(req *models.SelectionRequest, winner *models.Candidate, funnel FunnelResult) *models.SelectionResult {
	result := &models.SelectionResult{
		RequestID:    req.RequestID,
		Timestamp:    req.Timestamp,
		Ticker:       req.Ticker,
		Side:         req.Side,
		CurrentPrice: req.CurrentPrice,
		MaxPrice:     s.policy.MaxPrice.Ceiling(req.Side, req.CurrentPrice),
		MarketOpen:   req.MarketOpen,
		FilterStats:  funnel.Stats,
	}

	if winner == nil {
		return result
	}

	expiration := winner.Entry.Expiration

	result.Selected = true
	result.OptionSymbol = winner.Entry.Symbol
	result.Strike = winner.Entry.Strike
	result.Expiration = &expiration
	result.DTE = winner.DTE
	result.OptionType = winner.Entry.OptionType
	result.Price = winner.Price
	result.Bid = winner.Entry.Bid
	result.Ask = winner.Entry.Ask
	result.SpreadPct = winner.SpreadPct
	result.Volume = winner.Entry.Volume
	result.OpenInterest = winner.Entry.OpenInterest
	result.StrikeDistancePct = models.RoundPct(winner.StrikeDistancePct)
	result.PriceSource = winner.PriceSource
	result.Reasoning = BuildReasoning(winner, req, s.policy)

	return result
}

func (s *ContractSelector) persist(ctx context.Context, result *models.SelectionResult) error {
	if s.sink == nil {
		return nil
	}

	record, err := models.NewSelectionRecord(result)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	if err := s.sink.Write(ctx, record); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	return nil
}
