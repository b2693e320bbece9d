package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/domain/providers"
	"github.com/healthflow/backend/internal/infrastructure/observability"
)

// FallbackAnswer is returned whenever the advisory backend fails, times out,
// or answers empty. The endpoint is advisory, never load-bearing: callers
// always get text, never an error.
const FallbackAnswer = "I could not reach the advisory service just now. " +
	"Your cost estimate above is complete and unaffected; please review the " +
	"listed figures and hidden cost items, or try asking again in a moment."

const defaultAdvisoryTimeout = 10 * time.Second

// AdvisoryService answers free-text questions grounded in a previously
// resolved pathway. The grounding context it builds is the correctness
// boundary: the model only ever sees facts from the pathway.
type AdvisoryService struct {
	provider providers.AdvisoryProvider
	timeout  time.Duration
}

// NewAdvisoryService creates a new advisory service. A nil provider means the
// advisory backend is not configured.
func NewAdvisoryService(provider providers.AdvisoryProvider, timeout time.Duration) *AdvisoryService {
	if timeout <= 0 {
		timeout = defaultAdvisoryTimeout
	}
	return &AdvisoryService{
		provider: provider,
		timeout:  timeout,
	}
}

// Configured reports whether an advisory backend is available.
func (s *AdvisoryService) Configured() bool {
	return s.provider != nil
}

// Answer invokes the advisory model under a hard timeout and substitutes a
// deterministic fallback on any failure. The call runs in its own goroutine
// so a hung backend can never delay or corrupt the already-computed pathway.
func (s *AdvisoryService) Answer(ctx context.Context, pathway *entities.Pathway, question string) string {
	if s.provider == nil {
		return FallbackAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	grounding := BuildGroundingContext(pathway)

	type answerResult struct {
		text string
		err  error
	}
	results := make(chan answerResult, 1)

	go func() {
		text, err := s.provider.Answer(ctx, grounding, question)
		results <- answerResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		observability.LoggerFromContext(ctx).Warn().
			Err(ctx.Err()).
			Msg("advisory call timed out, serving fallback")
		return FallbackAnswer
	case res := <-results:
		if res.err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(res.err).
				Msg("advisory call failed, serving fallback")
			return FallbackAnswer
		}
		answer := strings.TrimSpace(res.text)
		if answer == "" {
			return FallbackAnswer
		}
		return answer
	}
}

// BuildGroundingContext serializes a resolved pathway into the compact text
// block the advisory model is bound to.
func BuildGroundingContext(p *entities.Pathway) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Procedure: %s\n", p.Procedure.Name)
	fmt.Fprintf(&b, "Average private cost: %s%.0f\n", p.CurrencySymbol, p.Procedure.AvgPrivateCost)
	if p.Procedure.PmjayRate > 0 {
		fmt.Fprintf(&b, "PMJAY scheme rate: %s%.0f\n", p.CurrencySymbol, p.Procedure.PmjayRate)
	}
	if p.Procedure.RecoveryDays > 0 {
		fmt.Fprintf(&b, "Typical recovery: %d days\n", p.Procedure.RecoveryDays)
	}
	fmt.Fprintf(&b, "Income level: %s\n", p.IncomeLevel)
	fmt.Fprintf(&b, "Estimate confidence: %s\n", p.ResolutionTier)

	if len(p.HiddenCosts) == 0 {
		b.WriteString("Hidden costs: none on record\n")
	} else {
		b.WriteString("Hidden costs:\n")
		for _, hc := range p.HiddenCosts {
			fmt.Fprintf(&b, "- %s: %s%.0f", hc.ItemName, p.CurrencySymbol, hc.AvgCost)
			if hc.Description != "" {
				fmt.Fprintf(&b, " (%s)", hc.Description)
			}
			if hc.IsAvoidable {
				b.WriteString(" [avoidable]")
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "Eligible hospitals: %d\n", len(p.Hospitals))

	return b.String()
}
