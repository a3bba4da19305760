package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundList_Decode(t *testing.T) {
	payload := `{
		"funds": [{
			"name": "Bandhan Small Cap Fund",
			"code": "147946",
			"year_breakdown": {
				"5year": {
					"year1": 10.5,
					"year2": 0,
					"year4": -3.2,
					"max_dd_5y": 24.1,
					"year3_max_dd": 12
				}
			}
		}]
	}`

	var list FundList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list.Funds, 1)

	fund := list.Funds[0]
	assert.Equal(t, "Bandhan Small Cap Fund", fund.Name)

	b, ok := fund.Breakdown("5year")
	require.True(t, ok)

	require.NotNil(t, b.Return(1))
	assert.Equal(t, 10.5, *b.Return(1))
	require.NotNil(t, b.Return(2), "explicit zero is present, not missing")
	assert.Equal(t, 0.0, *b.Return(2))
	assert.Nil(t, b.Return(3))
	assert.Equal(t, -3.2, *b.Return(4))
	assert.Nil(t, b.Return(5))
	assert.Nil(t, b.Return(6))

	assert.Equal(t, 24.1, *b.MaxDrawdown5Y)
	assert.Nil(t, b.MaxDrawdown2Y)
	assert.Equal(t, 12.0, *b.YearMaxDrawdown(3))
	assert.Nil(t, b.YearMaxDrawdown(1))

	_, ok = fund.Breakdown("3year")
	assert.False(t, ok)
}

func TestFundList_MissingFundsKey(t *testing.T) {
	var list FundList
	require.NoError(t, json.Unmarshal([]byte(`{"status":"ok"}`), &list))
	assert.Empty(t, list.Funds)
}

func TestFundRecord_BreakdownNilMap(t *testing.T) {
	fund := FundRecord{Name: "No Data Fund"}
	_, ok := fund.Breakdown("5year")
	assert.False(t, ok)
}

func TestRankedFund_IsTopRanked(t *testing.T) {
	tests := []struct {
		rank int
		n    int
		want bool
	}{
		{1, 3, true},
		{3, 3, true},
		{4, 3, false},
		{0, 3, false},
	}

	for _, tt := range tests {
		r := RankedFund{Rank: tt.rank}
		assert.Equal(t, tt.want, r.IsTopRanked(tt.n), "rank=%d n=%d", tt.rank, tt.n)
	}
}
