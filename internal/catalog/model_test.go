package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		stock    int
		minStock int
		want     StockStatus
	}{
		{"zero stock", 0, 10, StockStatusLow},
		{"below threshold", 5, 10, StockStatusLow},
		{"exactly at threshold", 10, 10, StockStatusLow},
		{"just above threshold", 11, 10, StockStatusMedium},
		{"exactly double threshold", 20, 10, StockStatusMedium},
		{"above double threshold", 21, 10, StockStatusGood},
		{"zero threshold zero stock", 0, 0, StockStatusLow},
		{"zero threshold with stock", 1, 0, StockStatusGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.stock, tc.minStock))
		})
	}
}

func TestPriceFor(t *testing.T) {
	p := Product{RegularPrice: 1200, RandomPrice: 1500}
	require.Equal(t, int64(1200), p.PriceFor("regular"))
	require.Equal(t, int64(1500), p.PriceFor("random"))
	require.Equal(t, int64(1500), p.PriceFor(""))
}
