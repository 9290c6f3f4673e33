package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/fieldecon/internal/domain/dto"
)

const snapshotFile = `
name: Tie-back
project:
  oil_price_usd: 50
  exchange_rate_usd_to_local: 10
profiles:
  cessation_wells_cost:
    base: {start_year: 2040, values: [7]}
    override: {start_year: 2041, values: [9], override: true}
surf:
  profiles:
    cost_profile:
      base: {start_year: 2030, values: [20, 30]}
drainage_strategy:
  profiles:
    production_profile_oil:
      base: {start_year: 2032, values: [2]}
`

func runCalc(t *testing.T, args ...string) (calcOutput, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotFile), 0o600))

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"calc", "--file", path}, args...))

	var result calcOutput
	if err := cmd.Execute(); err != nil {
		return result, err
	}
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &result))
	return result, nil
}

func TestCalc(t *testing.T) {
	out, err := runCalc(t, "--breakdown")
	require.NoError(t, err)

	assert.Equal(t, dto.SeriesResponse{StartYear: 2041, Values: []float64{9}, Sum: 9}, out.Totals.CessationCost)
	assert.Equal(t, dto.SeriesResponse{StartYear: 2030, Values: []float64{20, 30}, Sum: 50}, out.Totals.OffshoreFacilityCost)
	assert.Equal(t, 2030, out.Totals.TotalCost.StartYear)
	assert.Len(t, out.Totals.TotalCost.Values, 12)
	assert.Equal(t, 59.0, out.Totals.TotalCost.Sum)

	assert.Equal(t, 2032, out.Totals.TotalIncome.StartYear)
	assert.InDelta(t, 2*6.29*50*10/1e6, out.Totals.TotalIncome.Values[0], 1e-12)

	require.NotEmpty(t, out.Breakdown)
	assert.Equal(t, "study", out.Breakdown[0].Category)
}

func TestCalc_USDRounded(t *testing.T) {
	out, err := runCalc(t, "--currency", "USD", "--precision", "1")
	require.NoError(t, err)

	assert.Equal(t, "USD", out.Totals.Currency)
	assert.Equal(t, []float64{2, 3}, out.Totals.OffshoreFacilityCost.Values)
	assert.Nil(t, out.Breakdown)
}

func TestCalc_Errors(t *testing.T) {
	_, err := runCalc(t, "--currency", "EUR")
	assert.Error(t, err)

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"calc", "--file", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, cmd.Execute())
}
