package organization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIndexSalariesSpreadsBand(t *testing.T) {
	employees := []Employee{
		{ID: 3, Salary: salary("40000")},
		{ID: 1, Salary: salary("20000")},
		{ID: 4},
		{ID: 2, Salary: salary("30000")},
	}

	changes, err := IndexSalaries(employees, pct("2"), pct("6"))
	require.NoError(t, err)
	require.Len(t, changes, 3)

	want := []struct {
		id      int64
		percent string
		after   string
	}{
		{1, "6.00", "21200.00"},
		{2, "4.00", "31200.00"},
		{3, "2.00", "40800.00"},
	}
	for i, w := range want {
		assert.Equal(t, w.id, changes[i].EmployeeID)
		assert.Equal(t, w.percent, changes[i].Percent.StringFixed(2), "employee %d", w.id)
		assert.Equal(t, w.after, changes[i].After.StringFixed(2), "employee %d", w.id)
	}
	assert.Equal(t, "30000", changes[1].Before.String())
}

func TestIndexSalariesUniformWhenNoSpread(t *testing.T) {
	changes, err := IndexSalaries([]Employee{
		{ID: 1, Salary: salary("33333.33")},
		{ID: 2, Salary: salary("33333.33")},
	}, pct("1"), pct("3"))
	require.NoError(t, err)
	require.Len(t, changes, 2)
	for _, c := range changes {
		assert.Equal(t, "3", c.Percent.String())
		assert.Equal(t, "34333.33", c.After.StringFixed(2))
	}
}

func TestIndexSalariesRejectsBadBand(t *testing.T) {
	cases := []struct {
		name     string
		min, max string
		code     string
	}{
		{"negative min", "-1", "5", CodeNegative},
		{"max above hundred", "0", "101", CodeOutOfRange},
		{"min above max", "5", "3", CodeOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := IndexSalaries(loadedCatalog().Employees(), pct(tc.min), pct(tc.max))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, []string{tc.code}, ve.Violations.Codes(FieldSalary))
		})
	}
}

func TestIndexSalariesWithoutSalaries(t *testing.T) {
	changes, err := IndexSalaries([]Employee{{ID: 1}}, pct("0"), pct("0"))
	require.NoError(t, err)
	assert.Empty(t, changes)
}
