package services

import (
	"context"
	"strings"

	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/domain/repositories"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// nationalAverageCost is the fixed placeholder figure used when neither the
// store nor the catalog knows the procedure.
const nationalAverageCost = 200000

// defaultCurrencySymbol labels store-resolved amounts when the catalog cannot
// supply a symbol. Store prices are rupee figures.
const defaultCurrencySymbol = "₹"

// PathwayService resolves a free-text procedure query into a Pathway by
// walking an ordered fallback chain: relational store, then reference
// catalog, then a synthesized national average. The first tier that answers
// wins; later tiers never overwrite an earlier partial result.
type PathwayService struct {
	procedures  repositories.ProcedureRepository
	hiddenCosts repositories.HiddenCostRepository
	hospitals   repositories.HospitalRepository
	catalog     *catalog.Catalog
	eligibility *EligibilityFilter
}

// NewPathwayService creates a new pathway service
func NewPathwayService(
	procedures repositories.ProcedureRepository,
	hiddenCosts repositories.HiddenCostRepository,
	hospitals repositories.HospitalRepository,
	cat *catalog.Catalog,
	eligibility *EligibilityFilter,
) *PathwayService {
	return &PathwayService{
		procedures:  procedures,
		hiddenCosts: hiddenCosts,
		hospitals:   hospitals,
		catalog:     cat,
		eligibility: eligibility,
	}
}

// resolveRequest carries the validated inputs through the lookup chain.
// country and state are nil when the catalog is running empty.
type resolveRequest struct {
	query   string
	country *catalog.Country
	state   *catalog.State
	income  entities.IncomeLevel
}

func (r resolveRequest) currencySymbol() string {
	if r.country != nil {
		return r.country.CurrencySymbol
	}
	return defaultCurrencySymbol
}

func (r resolveRequest) stateName() string {
	if r.state != nil {
		return r.state.Name
	}
	return ""
}

// lookupStep is one fallible tier of the fallback chain. It reports whether
// it resolved the request; a hard store failure aborts the walk.
type lookupStep func(ctx context.Context, req resolveRequest) (*entities.Pathway, bool, error)

// Resolve produces a Pathway for the query, or a not-found error when the
// country or state is unknown before the chain even starts. When the catalog
// is running empty the country/state gate cannot be applied and only the
// store tier serves; the catalog-backed fallbacks are unavailable, not fatal.
func (s *PathwayService) Resolve(ctx context.Context, query, countryName, stateName string, income entities.IncomeLevel) (*entities.Pathway, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("procedure query is required")
	}

	if s.catalog.IsEmpty() {
		return s.resolveWithoutCatalog(ctx, resolveRequest{query: query, income: income})
	}

	country, ok := s.catalog.Country(countryName)
	if !ok {
		return nil, apperrors.NewNotFoundError("Country not found")
	}
	state, ok := country.State(stateName)
	if !ok {
		return nil, apperrors.NewNotFoundError("State not found")
	}

	req := resolveRequest{
		query:   query,
		country: country,
		state:   state,
		income:  income,
	}

	steps := []lookupStep{
		s.resolveFromStore,
		s.resolveFromCatalog,
		s.resolveNationalAverage,
	}

	for _, step := range steps {
		pathway, found, err := step(ctx, req)
		if err != nil {
			return nil, err
		}
		if found {
			return pathway, nil
		}
	}

	// Unreachable: the national-average step always resolves.
	return nil, apperrors.NewInternalError("resolution chain exhausted", nil)
}

// resolveWithoutCatalog serves degraded mode: reference data failed to load,
// so only the relational store can answer and a miss is a miss.
func (s *PathwayService) resolveWithoutCatalog(ctx context.Context, req resolveRequest) (*entities.Pathway, error) {
	pathway, found, err := s.resolveFromStore(ctx, req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Procedure not found in our database yet.")
	}
	return pathway, nil
}

// resolveFromStore is tier 1: the canonical relational store.
func (s *PathwayService) resolveFromStore(ctx context.Context, req resolveRequest) (*entities.Pathway, bool, error) {
	procedure, err := s.procedures.SearchByName(ctx, req.query)
	if apperrors.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	hiddenCosts, err := s.hiddenCosts.ListByProcedure(ctx, procedure.ID)
	if err != nil {
		return nil, false, err
	}
	if hiddenCosts == nil {
		hiddenCosts = []entities.HiddenCost{}
	}

	hospitals, err := s.hospitals.List(ctx, repositories.HospitalFilter{})
	if err != nil {
		return nil, false, err
	}

	return &entities.Pathway{
		Procedure: entities.ResolvedProcedure{
			Name:           procedure.Name,
			AvgPrivateCost: procedure.AvgPrivateCost,
			PmjayRate:      procedure.PmjayRate,
			RecoveryDays:   procedure.RecoveryDays,
		},
		HiddenCosts:    hiddenCosts,
		Hospitals:      s.eligibility.Filter(hospitals, req.income, req.stateName()),
		CurrencySymbol: req.currencySymbol(),
		IncomeLevel:    req.income,
		ResolutionTier: entities.TierStore,
	}, true, nil
}

// resolveFromCatalog is tier 2: the state-level reference catalog.
func (s *PathwayService) resolveFromCatalog(_ context.Context, req resolveRequest) (*entities.Pathway, bool, error) {
	procedure, ok := req.state.FindProcedure(req.query)
	if !ok {
		return nil, false, nil
	}

	hiddenCosts := make([]entities.HiddenCost, 0, len(procedure.HiddenCosts))
	for _, item := range procedure.HiddenCosts {
		hiddenCosts = append(hiddenCosts, entities.HiddenCost{
			ItemName:    item.Item,
			AvgCost:     item.Cost,
			Description: item.Note,
			IsAvoidable: true,
		})
	}

	hospitals := make([]*entities.Hospital, 0, len(req.state.Hospitals))
	for _, hosp := range req.state.Hospitals {
		hospitals = append(hospitals, &entities.Hospital{
			Name:             hosp.Name,
			Location:         hosp.City + ", " + req.state.Name,
			IsPmjayEmpaneled: hosp.Type == "Government",
			Rating:           hosp.Rating,
		})
	}

	return &entities.Pathway{
		Procedure: entities.ResolvedProcedure{
			Name:           procedure.Name,
			AvgPrivateCost: procedure.AvgCostPrivate,
			PmjayRate:      procedure.AvgCostGovt,
		},
		HiddenCosts:    hiddenCosts,
		Hospitals:      s.eligibility.Filter(hospitals, req.income, ""),
		CurrencySymbol: req.currencySymbol(),
		IncomeLevel:    req.income,
		ResolutionTier: entities.TierCatalog,
	}, true, nil
}

// resolveNationalAverage is tier 3: a synthesized estimate with degraded
// confidence. It never fails, carries no hidden costs, and recommends no
// hospitals.
func (s *PathwayService) resolveNationalAverage(_ context.Context, req resolveRequest) (*entities.Pathway, bool, error) {
	return &entities.Pathway{
		Procedure: entities.ResolvedProcedure{
			Name:           req.query,
			AvgPrivateCost: nationalAverageCost,
		},
		HiddenCosts:    []entities.HiddenCost{},
		Hospitals:      []*entities.Hospital{},
		CurrencySymbol: req.currencySymbol(),
		IncomeLevel:    req.income,
		ResolutionTier: entities.TierNationalAverage,
	}, true, nil
}
