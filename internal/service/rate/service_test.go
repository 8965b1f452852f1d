package rate

import (
	"context"
	"testing"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateRepo struct {
	records map[string][]rate.Record
	calls   int
}

func (f *fakeRateRepo) ListForEmployeeUpTo(_ context.Context, employeeID string, asOf time.Time) ([]rate.Record, error) {
	f.calls++
	var result []rate.Record
	for _, rec := range f.records[employeeID] {
		if !rec.EffectiveDate.After(asOf) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolver_PicksLatestEffectiveRate(t *testing.T) {
	repo := &fakeRateRepo{records: map[string][]rate.Record{
		"emp-1": {
			{EmployeeID: "emp-1", EffectiveDate: day(2024, 1, 1), Type: rate.TypeHourly, HourlyRate: 18},
			{EmployeeID: "emp-1", EffectiveDate: day(2024, 3, 1), Type: rate.TypeHourly, HourlyRate: 20},
			{EmployeeID: "emp-1", EffectiveDate: day(2024, 6, 1), Type: rate.TypeHourly, HourlyRate: 22},
		},
	}}
	resolver := NewResolver(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		asOf     time.Time
		expected *float64
	}{
		{"before first record", day(2023, 12, 31), nil},
		{"on first effective date", day(2024, 1, 1), ptr(18.0)},
		{"between first and second", day(2024, 2, 15), ptr(18.0)},
		{"on second effective date", day(2024, 3, 1), ptr(20.0)},
		{"between second and third", day(2024, 5, 31), ptr(20.0)},
		{"after third", day(2024, 7, 1), ptr(22.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := resolver.Resolve(ctx, "emp-1", tt.asOf)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, snapshot)
				return
			}
			require.NotNil(t, snapshot)
			assert.Equal(t, rate.TypeHourly, snapshot.Type)
			assert.Equal(t, *tt.expected, snapshot.Amount)
		})
	}
}

func TestResolver_LegacyRecordDefaultsToHourly(t *testing.T) {
	repo := &fakeRateRepo{records: map[string][]rate.Record{
		"emp-legacy": {
			{EmployeeID: "emp-legacy", EffectiveDate: day(2022, 5, 1), HourlyRate: 16.5},
		},
	}}
	resolver := NewResolver(repo)

	snapshot, err := resolver.Resolve(context.Background(), "emp-legacy", day(2024, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, rate.TypeHourly, snapshot.Type)
	assert.Equal(t, 16.5, snapshot.Amount)
}

func TestResolver_PerVisitWithoutAmountIsUnresolvable(t *testing.T) {
	repo := &fakeRateRepo{records: map[string][]rate.Record{
		"emp-2": {
			{EmployeeID: "emp-2", EffectiveDate: day(2024, 1, 1), Type: rate.TypePerVisit, PerVisitRate: 0},
		},
	}}
	resolver := NewResolver(repo)

	snapshot, err := resolver.Resolve(context.Background(), "emp-2", day(2024, 2, 1))
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestResolver_MonthlyCarriesPayDay(t *testing.T) {
	payDay := 25
	repo := &fakeRateRepo{records: map[string][]rate.Record{
		"emp-3": {
			{EmployeeID: "emp-3", EffectiveDate: day(2024, 1, 1), Type: rate.TypeMonthly, MonthlyRate: 3200, MonthlyPayDay: &payDay},
		},
	}}
	resolver := NewResolver(repo)

	snapshot, err := resolver.Resolve(context.Background(), "emp-3", day(2024, 2, 1))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, rate.TypeMonthly, snapshot.Type)
	assert.Equal(t, 3200.0, snapshot.Amount)
	require.NotNil(t, snapshot.MonthlyPayDay)
	assert.Equal(t, 25, *snapshot.MonthlyPayDay)
}

func TestResolver_EmptyEmployeeID(t *testing.T) {
	resolver := NewResolver(&fakeRateRepo{})

	_, err := resolver.Resolve(context.Background(), "", day(2024, 1, 1))
	assert.ErrorIs(t, err, rate.ErrEmployeeIDRequired)
}

func TestCache_BoundsQueriesToDistinctBuckets(t *testing.T) {
	repo := &fakeRateRepo{records: map[string][]rate.Record{
		"emp-1": {
			{EmployeeID: "emp-1", EffectiveDate: day(2024, 1, 1), Type: rate.TypeHourly, HourlyRate: 20},
		},
	}}
	cache := NewCache(NewResolver(repo))
	ctx := context.Background()

	// Same employee/instant bucket: one underlying query.
	for i := 0; i < 5; i++ {
		snapshot, err := cache.Resolve(ctx, "emp-1", day(2024, 1, 5))
		require.NoError(t, err)
		require.NotNil(t, snapshot)
	}
	assert.Equal(t, 1, repo.calls)

	// Distinct instant: one more.
	_, err := cache.Resolve(ctx, "emp-1", day(2024, 1, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCache_CachesMisses(t *testing.T) {
	repo := &fakeRateRepo{records: map[string][]rate.Record{}}
	cache := NewCache(NewResolver(repo))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		snapshot, err := cache.Resolve(ctx, "emp-unknown", day(2024, 1, 5))
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	}
	assert.Equal(t, 1, repo.calls)
}

func ptr(v float64) *float64 { return &v }
