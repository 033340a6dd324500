package services

import (
	"testing"

	"github.com/expertdev121/pledges-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAllocationService(rates map[string]float64) *AllocationService {
	return NewAllocationService(NewRateService(&fakeRateSource{rates: rates}))
}

func testPledges() map[int]*models.Pledge {
	return map[int]*models.Pledge{
		1: {ID: 1, ContactID: 10, Currency: "USD", Balance: 1000},
		2: {ID: 2, ContactID: 10, Currency: "USD", Balance: 500},
		3: {ID: 3, ContactID: 20, Currency: "EUR", Balance: 200},
	}
}

func TestAllocationService_Normalize_BalancedSplit(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 100},
		{PledgeID: 2, Amount: 200},
	}

	result, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	assert.True(t, result.Balanced)
	assert.Equal(t, 0.0, result.Remainder)
	require.Len(t, result.Allocations, 2)

	var sum float64
	for _, a := range result.Allocations {
		sum += a.Amount
	}
	assert.Equal(t, 300.0, sum, "allocations must sum to the payment amount")
}

func TestAllocationService_Normalize_UnbalancedReportsRemainder(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 100},
		{PledgeID: 2, Amount: 150},
	}

	result, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	assert.False(t, result.Balanced)
	assert.Equal(t, 50.0, result.Remainder, "the signed remainder is reported exactly")
}

func TestAllocationService_Normalize_OverAllocatedRemainderIsNegative(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 250},
		{PledgeID: 2, Amount: 100},
	}

	result, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	assert.False(t, result.Balanced)
	assert.Equal(t, -50.0, result.Remainder)
}

func TestAllocationService_Normalize_WithinEpsilonBalances(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 100.004},
		{PledgeID: 2, Amount: 200},
	}

	result, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	assert.True(t, result.Balanced, "a sub-cent difference is within tolerance")
}

func TestAllocationService_Normalize_RejectsMissingPledge(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 99, Amount: 300},
	}

	_, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pledge 99 not found")
}

func TestAllocationService_Normalize_RejectsNonPositiveAmount(t *testing.T) {
	service := newTestAllocationService(nil)

	for _, amount := range []float64{0, -50} {
		lines := []models.AllocationInput{
			{PledgeID: 1, Amount: amount},
		}
		_, err := service.Normalize(300, "USD", testDate(), lines, testPledges())
		assert.Error(t, err, "amount %v must be rejected", amount)
	}
}

func TestAllocationService_Normalize_RejectsZeroPledgeID(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 0, Amount: 300},
	}

	_, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pledgeId is required")
}

func TestAllocationService_Normalize_RejectsEmptyLines(t *testing.T) {
	service := newTestAllocationService(nil)

	_, err := service.Normalize(300, "USD", testDate(), nil, testPledges())

	assert.Error(t, err)
}

func TestAllocationService_Normalize_RejectsUnsupportedCurrency(t *testing.T) {
	service := newTestAllocationService(nil)

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 300},
	}

	_, err := service.Normalize(300, "XXX", testDate(), lines, testPledges())

	assert.Error(t, err)
}

func TestAllocationService_Normalize_DerivesPledgeCurrencyAmount(t *testing.T) {
	// 0.90 EUR per USD: a 100 USD allocation displays as 90.00 EUR
	service := newTestAllocationService(map[string]float64{"EUR": 0.9})

	lines := []models.AllocationInput{
		{PledgeID: 3, Amount: 100},
	}

	result, err := service.Normalize(100, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	alloc := result.Allocations[0]
	assert.Equal(t, 100.0, alloc.Amount, "the payment-currency amount is the unit of record and stays unchanged")
	assert.Equal(t, 90.0, alloc.AmountInPledgeCurrency)
	assert.Equal(t, "EUR", alloc.PledgeCurrency)
	assert.Equal(t, 110.0, alloc.RemainingBalance)
	assert.False(t, alloc.ExceedsBalance)
}

func TestAllocationService_Normalize_FlagsOverBalanceAllocation(t *testing.T) {
	service := newTestAllocationService(map[string]float64{"EUR": 0.9})

	// Pledge 3 has a 200 EUR balance; 300 USD converts to 270 EUR
	lines := []models.AllocationInput{
		{PledgeID: 3, Amount: 300},
	}

	result, err := service.Normalize(300, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	alloc := result.Allocations[0]
	assert.Equal(t, -70.0, alloc.RemainingBalance, "the would-be balance is computed, not enforced")
	assert.True(t, alloc.ExceedsBalance)
	assert.True(t, result.Balanced, "an over-balance allocation is a warning, not a hard stop")
}

func TestAllocationService_Normalize_MissingRateSurfacesWarning(t *testing.T) {
	service := newTestAllocationService(map[string]float64{})

	lines := []models.AllocationInput{
		{PledgeID: 3, Amount: 100},
	}

	result, err := service.Normalize(100, "USD", testDate(), lines, testPledges())

	require.NoError(t, err)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "EUR")
}

func TestAllocationService_Normalize_Deterministic(t *testing.T) {
	service := newTestAllocationService(map[string]float64{"EUR": 0.9, "ILS": 3.5})

	lines := []models.AllocationInput{
		{PledgeID: 1, Amount: 120.5},
		{PledgeID: 3, Amount: 79.5},
	}

	first, err := service.Normalize(200, "USD", testDate(), lines, testPledges())
	require.NoError(t, err)
	second, err := service.Normalize(200, "USD", testDate(), lines, testPledges())
	require.NoError(t, err)

	assert.Equal(t, first, second, "normalization is pure and re-runnable")
}
