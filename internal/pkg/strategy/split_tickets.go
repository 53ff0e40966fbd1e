package strategy

import (
	"context"
	"sync"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/app/dto"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/airport"
	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/flightprovider"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const SplitTicketsName = "SplitTickets"

// SplitTicketNote warns about the risks of separately booked legs.
const SplitTicketNote = "SPLIT TICKETS: legs are booked separately. " +
	"Check connection time and baggage re-check rules; missed connections are not protected."

// SplitTickets routes one-way searches through major hubs, searching both
// legs independently and combining the cheapest offer of each leg into a
// synthetic through-offer. Round-trip split ticketing is unsupported.
type SplitTickets struct {
	factory         *flightprovider.FlightProviderFactory
	sem             *semaphore.Weighted
	hubs            []string
	maxCombinations int
}

func NewSplitTickets(factory *flightprovider.FlightProviderFactory,
	sem *semaphore.Weighted, hubs []string, maxCombinations int,
) *SplitTickets {
	return &SplitTickets{
		factory:         factory,
		sem:             sem,
		hubs:            hubs,
		maxCombinations: maxCombinations,
	}
}

func (s *SplitTickets) Name() string {
	return SplitTicketsName
}

func (s *SplitTickets) Execute(ctx context.Context, criteria dto.SearchCriteria) (Outcome, error) {
	if criteria.IsRoundTrip() {
		return Outcome{}, nil
	}

	combinations := airport.HubCombinations(criteria.Origin, criteria.Destination, s.hubs)
	if len(combinations) > s.maxCombinations {
		combinations = combinations[:s.maxCombinations]
	}

	outcomes := make([]Outcome, len(combinations))

	var waitGroup sync.WaitGroup
	for i, combination := range combinations {
		waitGroup.Add(1)

		go func(slot int, combination airport.HubCombination) {
			defer waitGroup.Done()

			outcomes[slot] = s.searchCombination(ctx, criteria, combination)
		}(i, combination)
	}

	waitGroup.Wait()

	// merge in hub order so dedup order stays deterministic
	var merged Outcome
	for _, outcome := range outcomes {
		merged.Offers = append(merged.Offers, outcome.Offers...)
		merged.CallsIssued += outcome.CallsIssued
		merged.CallsFailed += outcome.CallsFailed
	}

	return merged, nil
}

// searchCombination runs both leg searches in parallel, then combines the
// cheapest offer of each leg. Either leg coming back empty, or the summed
// price breaking the max-price constraint, yields nothing.
func (s *SplitTickets) searchCombination(ctx context.Context,
	criteria dto.SearchCriteria, combination airport.HubCombination,
) Outcome {
	departDates := []string{criteria.FirstDepartDate()}

	firstLeg := criteria.WithRoute(combination.Origin, combination.Hub).WithDates(departDates, nil)
	secondLeg := criteria.WithRoute(combination.Hub, combination.Destination).WithDates(departDates, nil)

	providers := s.factory.GetAllProviders()

	var firstOutcome, secondOutcome Outcome

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		firstOutcome = fanOut(groupCtx, providers, s.sem, []dto.SearchCriteria{firstLeg})

		return nil
	})
	group.Go(func() error {
		secondOutcome = fanOut(groupCtx, providers, s.sem, []dto.SearchCriteria{secondLeg})

		return nil
	})
	_ = group.Wait()

	outcome := Outcome{
		CallsIssued: firstOutcome.CallsIssued + secondOutcome.CallsIssued,
		CallsFailed: firstOutcome.CallsFailed + secondOutcome.CallsFailed,
	}

	combined, ok := s.combineLegs(firstOutcome.Offers, secondOutcome.Offers, criteria)
	if ok {
		outcome.Offers = []dto.FlightOffer{combined}
	}

	return outcome
}

func (s *SplitTickets) combineLegs(firstLeg, secondLeg []dto.FlightOffer,
	criteria dto.SearchCriteria,
) (dto.FlightOffer, bool) {
	if len(firstLeg) == 0 || len(secondLeg) == 0 {
		return dto.FlightOffer{}, false
	}

	bestFirst := cheapestOffer(firstLeg)
	bestSecond := cheapestOffer(secondLeg)

	totalPrice := bestFirst.PriceTotal + bestSecond.PriceTotal
	if criteria.MaxPrice != nil && totalPrice > *criteria.MaxPrice {
		return dto.FlightOffer{}, false
	}

	segments := make([]dto.FlightSegment, 0, len(bestFirst.Segments)+len(bestSecond.Segments))
	segments = append(segments, bestFirst.Segments...)
	segments = append(segments, bestSecond.Segments...)

	return dto.FlightOffer{
		Provider:        SplitTicketsName,
		PriceTotal:      totalPrice,
		Currency:        bestFirst.Currency,
		BaggageIncluded: bestFirst.BaggageIncluded && bestSecond.BaggageIncluded,
		CabinClass:      criteria.CabinClass,
		Segments:        segments,
		Notes:           SplitTicketNote,
	}, true
}
