package selection

import (
	"testing"

	"go-warehouse-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []model.Location {
	return []model.Location{
		{LocationID: "B-01-01-1", Zone: "B", ProductType: "Jeans", Quantity: 8},
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 3},
		{LocationID: "A-01-02-1", Zone: "A", ProductType: "T-shirts", Quantity: 0},
		{LocationID: "K-101", Zone: "K", ProductType: "Premium Apparel", Quantity: 17},
		{LocationID: "B-01-02-1", Zone: "B", ProductType: "Jeans", Quantity: 3},
	}
}

func TestApplyNoCriteriaKeepsCatalogOrder(t *testing.T) {
	out, err := Apply(fixture(), Criteria{})
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, "B-01-01-1", out[0].LocationID)
	assert.Equal(t, "B-01-02-1", out[4].LocationID)
}

func TestApplyFilters(t *testing.T) {
	max := 10

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "zone filter",
			criteria: Criteria{Zones: []model.Zone{"A"}},
			want:     []string{"A-01-01-1", "A-01-02-1"},
		},
		{
			name:     "product type filter",
			criteria: Criteria{ProductTypes: []model.ProductType{"Jeans"}},
			want:     []string{"B-01-01-1", "B-01-02-1"},
		},
		{
			name:     "quantity range",
			criteria: Criteria{MinQuantity: 1, MaxQuantity: &max},
			want:     []string{"B-01-01-1", "A-01-01-1", "B-01-02-1"},
		},
		{
			name:     "filters AND-compose",
			criteria: Criteria{Zones: []model.Zone{"A", "B"}, MinQuantity: 4},
			want:     []string{"B-01-01-1"},
		},
		{
			name:     "empty only focus",
			criteria: Criteria{FocusMode: FocusEmptyOnly},
			want:     []string{"A-01-02-1"},
		},
		{
			name:     "overstock only focus",
			criteria: Criteria{FocusMode: FocusOverstockOnly, FocusThreshold: 10},
			want:     []string{"K-101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply(fixture(), tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestApplySortKeys(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []string
	}{
		{
			name: "quantity desc with id tie-break",
			key:  SortQuantityDesc,
			want: []string{"K-101", "B-01-01-1", "A-01-01-1", "B-01-02-1", "A-01-02-1"},
		},
		{
			name: "quantity asc with id tie-break",
			key:  SortQuantityAsc,
			want: []string{"A-01-02-1", "A-01-01-1", "B-01-02-1", "B-01-01-1", "K-101"},
		},
		{
			name: "zone",
			key:  SortZone,
			want: []string{"A-01-01-1", "A-01-02-1", "B-01-01-1", "B-01-02-1", "K-101"},
		},
		{
			name: "location id",
			key:  SortLocationID,
			want: []string{"A-01-01-1", "A-01-02-1", "B-01-01-1", "B-01-02-1", "K-101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply(fixture(), Criteria{SortKey: tt.key})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestApplyDeterministic(t *testing.T) {
	criteria := Criteria{Zones: []model.Zone{"A", "B"}, SortKey: SortQuantityDesc}

	first, err := Apply(fixture(), criteria)
	require.NoError(t, err)
	second, err := Apply(fixture(), criteria)
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	input := fixture()
	_, err := Apply(input, Criteria{SortKey: SortQuantityAsc})
	require.NoError(t, err)

	assert.Equal(t, ids(fixture()), ids(input))
}

func TestApplyInvalidCriteria(t *testing.T) {
	_, err := Apply(fixture(), Criteria{FocusMode: FocusOverstockOnly})
	assert.ErrorIs(t, err, ErrInvalidFocus)

	_, err = Apply(fixture(), Criteria{FocusMode: FocusMode("lowstock")})
	assert.ErrorIs(t, err, ErrUnknownFocus)

	_, err = Apply(fixture(), Criteria{SortKey: SortKey("random")})
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func ids(locations []model.Location) []string {
	out := make([]string, 0, len(locations))
	for i := range locations {
		out = append(out, locations[i].LocationID)
	}
	return out
}
