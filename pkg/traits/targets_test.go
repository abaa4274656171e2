package traits_test

import (
	"strings"
	"testing"

	"github.com/gnames/gntraits/pkg/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargets(t *testing.T) {
	targets := traits.Targets()
	require.Len(t, targets, 6)

	files := make([]string, len(targets))
	for i, tgt := range targets {
		files[i] = tgt.File
		assert.NotEmpty(t, tgt.Name)
		assert.NotEmpty(t, tgt.Columns, tgt.Name)
	}
	assert.Equal(t, []string{
		"pages.csv", "terms.csv", "term_parents.csv",
		"inferred.csv", "traits.csv", "metadata.csv",
	}, files)
}

func TestTargetStrategies(t *testing.T) {
	partitioned := map[string]bool{
		"traits":   true,
		"metadata": true,
	}
	for _, tgt := range traits.Targets() {
		if partitioned[tgt.Name] {
			assert.Equal(t, traits.StrategyByPredicate, tgt.Strategy,
				tgt.Name)
		} else {
			assert.Equal(t, traits.StrategyNone, tgt.Strategy, tgt.Name)
		}
	}
}

func TestUnpartitionedQueries(t *testing.T) {
	for _, tgt := range traits.Targets() {
		if tgt.Strategy != traits.StrategyNone {
			continue
		}

		t.Run(tgt.Name+" without clade", func(t *testing.T) {
			q := tgt.Query(0)
			assert.NotEmpty(t, q.Text())
			assert.Equal(t, tgt.Columns, q.Columns())
			assert.NotContains(t, q.Text(), "parent*0..")
			// as many RETURN expressions as declared columns
			assert.Equal(t, len(tgt.Columns), returnArity(q.Text()),
				tgt.Name)
		})
	}

	t.Run("pages restricted by clade", func(t *testing.T) {
		var pages traits.Target
		for _, tgt := range traits.Targets() {
			if tgt.Name == "pages" {
				pages = tgt
			}
		}
		q := pages.Query(2774383)
		assert.Contains(t, q.Text(), "parent*0..")
		assert.Contains(t, q.Text(), "2774383")
	})

	t.Run("terms ignore the clade", func(t *testing.T) {
		for _, tgt := range traits.Targets() {
			if tgt.Name != "terms" && tgt.Name != "term_parents" {
				continue
			}
			q := tgt.Query(2774383)
			assert.NotContains(t, q.Text(), "2774383", tgt.Name)
		}
	})
}

func TestPartitionQueries(t *testing.T) {
	pred := "http://purl.obolibrary.org/obo/VT_0001259"

	for _, tgt := range traits.Targets() {
		if tgt.Strategy != traits.StrategyByPredicate {
			continue
		}

		t.Run(tgt.Name, func(t *testing.T) {
			disc := tgt.DiscoveryQuery()
			assert.Contains(t, disc.Text(), "DISTINCT")
			assert.Contains(t, disc.Text(), "ORDER BY",
				"discovery order must be stable across runs")

			q, err := tgt.PartitionQuery(pred, 0)
			require.NoError(t, err)
			assert.Contains(t, q.Text(), pred)
			assert.NotContains(t, q.Text(), "{predicate}")
			assert.Equal(t, len(tgt.Columns), returnArity(q.Text()),
				tgt.Name)
		})

		t.Run(tgt.Name+" rejects unsafe predicate", func(t *testing.T) {
			_, err := tgt.PartitionQuery("x'; MATCH (n) DELETE n", 0)
			require.Error(t, err)
		})
	}
}

// returnArity counts comma-separated expressions in the RETURN clause.
func returnArity(text string) int {
	idx := strings.Index(text, "RETURN ")
	if idx < 0 {
		return 0
	}
	clause := text[idx+len("RETURN "):]
	if i := strings.Index(clause, "\nORDER BY"); i >= 0 {
		clause = clause[:i]
	}
	return len(strings.Split(clause, ","))
}
