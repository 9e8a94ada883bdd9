package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesForSameWorkplaceExcludingSubject(t *testing.T) {
	c := loadedCatalog()

	candidates, err := CandidatesFor(Supermarket(1, ""), 11, c)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 12}, ids(candidates))
	for _, cand := range candidates {
		assert.Equal(t, "Centrum", cand.Place.Name)
	}
}

func TestCandidatesForNewDraftIncludesEveryone(t *testing.T) {
	c := loadedCatalog()

	candidates, err := CandidatesFor(Supermarket(1, ""), 0, c)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, ids(candidates))

	warehouse, err := CandidatesFor(Warehouse(1, ""), 0, c)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, ids(warehouse))
}

func TestCandidatesForNeverContainsSubject(t *testing.T) {
	c := loadedCatalog()
	for _, e := range c.Employees() {
		candidates, err := CandidatesFor(e.Workplace, e.ID, c)
		require.NoError(t, err)
		assert.NotContains(t, ids(candidates), e.ID)
	}
}

func TestCandidatesForNoWorkplaceIsEmpty(t *testing.T) {
	candidates, err := CandidatesFor(NoWorkplace(), 0, loadedCatalog())
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = CandidatesFor(NoWorkplace(), 0, NewCatalog())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCandidatesForStaleCatalog(t *testing.T) {
	c := NewCatalog()
	c.SetEmployees([]Employee{{ID: 1, Workplace: Supermarket(1, "")}})
	c.SetSupermarkets([]Workplace{Supermarket(1, "Centrum")})

	candidates, err := CandidatesFor(Supermarket(1, ""), 0, c)
	assert.ErrorIs(t, err, ErrCatalogNotReady)
	assert.Empty(t, candidates)
}
