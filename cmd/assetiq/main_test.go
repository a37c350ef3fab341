package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/prefs"
	"github.com/jask/assetiq/internal/service"
)

func TestApplyFlags(t *testing.T) {
	cat := catalog.Default()
	saved := prefs.Selection{Category: "ETF", InstrumentA: "Gold ETF", InstrumentB: "BankBees"}

	require.Equal(t, saved, applyFlags(cat, saved, "", "", ""))

	got := applyFlags(cat, saved, "Stocks", "", "")
	require.Equal(t, prefs.Selection{Category: "Stocks"}, got)

	got = applyFlags(cat, prefs.Selection{}, "", "tcs", "Infosys")
	require.Equal(t, prefs.Selection{Category: "Stocks", InstrumentA: "TCS", InstrumentB: "Infosys"}, got)

	got = applyFlags(cat, saved, "Crypto", "", "")
	require.Equal(t, saved, got)
}

func TestFailureHint(t *testing.T) {
	const api = "http://localhost:8000"

	got := failureHint(service.ErrIncompleteSelection, api)
	require.Contains(t, got, service.ErrIncompleteSelection.Error())
	require.Contains(t, got, "--a and --b")
	require.NotContains(t, got, "backend server")

	wrapped := fmt.Errorf("compare: %w", service.ErrIncompleteSelection)
	require.NotContains(t, failureHint(wrapped, api), "backend server")

	got = failureHint(errors.New("connection refused"), api)
	require.Contains(t, got, service.FailureText(api))
	require.Contains(t, got, "connection refused")
}
