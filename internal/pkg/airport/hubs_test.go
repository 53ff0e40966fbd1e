//go:build unit

package airport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestHubCombinations_ExcludesDegenerateHubs(t *testing.T) {
	combinations := HubCombinations("LIS", "DOH", MajorHubs)

	assert.Len(t, combinations, len(MajorHubs)-2)

	for _, combination := range combinations {
		assert.NotEqual(t, combination.Origin, combination.Hub)
		assert.NotEqual(t, combination.Destination, combination.Hub)
		assert.Equal(t, "LIS", combination.Origin)
		assert.Equal(t, "DOH", combination.Destination)
	}
}

func TestHubCombinations_DeterministicOrder(t *testing.T) {
	hubs := []string{"MAD", "AMS", "CDG"}

	first := HubCombinations("GRU", "FCO", hubs)
	second := HubCombinations("GRU", "FCO", []string{"CDG", "MAD", "AMS"})

	// hubs are sorted before enumeration so truncation is reproducible
	want := []HubCombination{
		{Origin: "GRU", Hub: "AMS", Destination: "FCO"},
		{Origin: "GRU", Hub: "CDG", Destination: "FCO"},
		{Origin: "GRU", Hub: "MAD", Destination: "FCO"},
	}

	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("HubCombinations mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("hub set ordering leaked into result (-first +second):\n%s", diff)
	}
}
