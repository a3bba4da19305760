package selection

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/config"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

func scored(name string, raw float64, norm int) contracts.ScoredFund {
	return contracts.ScoredFund{
		FundStats:       contracts.FundStats{FundName: name},
		RawScore:        raw,
		NormalizedScore: norm,
	}
}

func names(ranked []contracts.RankedFund) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.FundName
	}
	return out
}

func TestRank_Normalized(t *testing.T) {
	input := []contracts.ScoredFund{
		scored("Low", 1, 0),
		scored("High", 9, 100),
		scored("Mid", 5, 50),
	}

	ranked := NewRanker(logger.NewNop()).Rank(input, BasisNormalized)
	require.Len(t, ranked, 3)

	assert.Equal(t, []string{"High", "Mid", "Low"}, names(ranked))
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}

	// input untouched
	assert.Equal(t, "Low", input[0].FundName)
}

func TestRank_StableTies(t *testing.T) {
	input := []contracts.ScoredFund{
		scored("First", 3.01, 50),
		scored("Second", 2.99, 50),
		scored("Top", 8, 100),
		scored("Third", 3.00, 50),
	}

	ranked := NewRanker(logger.NewNop()).Rank(input, BasisNormalized)
	assert.Equal(t, []string{"Top", "First", "Second", "Third"}, names(ranked))
	assert.Equal(t, []int{1, 2, 3, 4}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank, ranked[3].Rank})
}

func TestRank_Raw(t *testing.T) {
	input := []contracts.ScoredFund{
		scored("A", -2.5, 0),
		scored("B", 7.25, 0),
		scored("C", 0.1, 0),
	}

	ranked := NewRanker(logger.NewNop()).Rank(input, BasisRaw)
	assert.Equal(t, []string{"B", "C", "A"}, names(ranked))
}

func TestBasis_Score(t *testing.T) {
	sf := scored("A", 7.25, 40)
	assert.Equal(t, 7.25, BasisRaw.Score(sf))
	assert.Equal(t, 40.0, BasisNormalized.Score(sf))
}

func TestRank_LogsScoreOfBasis(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"}, &buf)

	NewRanker(log).Rank([]contracts.ScoredFund{
		scored("Low", 1.5, 100),
		scored("High", 9.75, 0),
	}, BasisRaw)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "raw", entry["basis"])
	assert.Equal(t, "High", entry["top_fund"])
	assert.Equal(t, 9.75, entry["top_score"])
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, NewRanker(logger.NewNop()).Rank(nil, BasisNormalized))
}

func TestInTopKAndRankOf(t *testing.T) {
	ranked := NewRanker(logger.NewNop()).Rank([]contracts.ScoredFund{
		scored("Bandhan Small Cap Fund", 0, 100),
		scored("Nippon India Growth", 0, 90),
		scored("Quant Mid Cap", 0, 80),
		scored("Motilal Oswal Midcap", 0, 70),
	}, BasisNormalized)

	assert.True(t, InTopK(ranked, "Bandhan", 3))
	assert.False(t, InTopK(ranked, "Motilal", 3))
	assert.True(t, InTopK(ranked, "Motilal", 4))
	assert.False(t, InTopK(ranked, "bandhan", 3))
	assert.False(t, InTopK(ranked, "", 3))

	assert.Equal(t, 1, RankOf(ranked, "Bandhan"))
	assert.Equal(t, 4, RankOf(ranked, "Motilal"))
	assert.Equal(t, 0, RankOf(ranked, "HDFC"))
}

func TestTop(t *testing.T) {
	ranked := make([]contracts.RankedFund, 4)

	assert.Len(t, Top(ranked, 3), 3)
	assert.Len(t, Top(ranked, 10), 4)
	assert.Len(t, Top(ranked, -1), 0)
}

func TestBasis_String(t *testing.T) {
	assert.Equal(t, "normalized", BasisNormalized.String())
	assert.Equal(t, "raw", BasisRaw.String())
}
