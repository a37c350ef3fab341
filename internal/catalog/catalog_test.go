package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/dropdown"
)

func TestDefaultOrder(t *testing.T) {
	c := Default()
	require.Equal(t, []string{"Mutual Fund", "ETF", "Stocks"}, c.Categories())
	require.Equal(t, []string{"HDFC Equity Fund", "ICICI Bluechip Fund", "SBI Small Cap"}, c.Instruments("Mutual Fund"))
	require.Equal(t, []string{"NIFTY50 ETF", "BankBees", "Gold ETF"}, c.Instruments("ETF"))
	require.Equal(t, []string{"Reliance", "Infosys", "TCS"}, c.Instruments("Stocks"))
	require.Nil(t, c.Instruments("Bonds"))
}

func TestInstrumentsReturnsCopy(t *testing.T) {
	c := Default()
	got := c.Instruments("Stocks")
	got[0] = "changed"
	require.Equal(t, "Reliance", c.Instruments("Stocks")[0])
}

func TestCategoryOf(t *testing.T) {
	c := Default()
	cat, ok := c.CategoryOf("Gold ETF")
	require.True(t, ok)
	require.Equal(t, "ETF", cat)
	_, ok = c.CategoryOf("Gold")
	require.False(t, ok)
}

func TestResolve(t *testing.T) {
	c := Default()
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"TCS", "TCS", true},
		{"infosys", "Infosys", true},
		{"Relianse", "Reliance", true},
		{"  gold etf ", "Gold ETF", true},
		{"Bitcoin", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := c.Resolve(tc.in)
		require.Equal(t, tc.ok, ok, "Resolve(%q)", tc.in)
		require.Equal(t, tc.want, got, "Resolve(%q)", tc.in)
	}
}

func TestResolveCountsRunes(t *testing.T) {
	c, err := New([]Category{{Name: "Stocks", Instruments: []string{"Сбербанк"}}})
	require.NoError(t, err)

	got, ok := c.Resolve("сбербнк")
	require.True(t, ok)
	require.Equal(t, "Сбербанк", got)

	// half of the name missing is too far, however many bytes it spans
	_, ok = c.Resolve("Сбер")
	require.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	src := `
- name: Bonds
  instruments: [GSec 2033, SDL 2030]
- name: Stocks
  instruments:
    - Reliance
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, []string{"Bonds", "Stocks"}, c.Categories())
	require.Equal(t, []string{"GSec 2033", "SDL 2030"}, c.Instruments("Bonds"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"duplicate category":   "- name: A\n  instruments: [x]\n- name: A\n  instruments: [y]\n",
		"duplicate instrument": "- name: A\n  instruments: [x, x]\n",
		"empty name":           "- name: ''\n  instruments: [x]\n",
		"empty instrument":     "- name: A\n  instruments: ['']\n",
		"not a list":           "name: A\n",
	}
	for name, src := range cases {
		_, err := Load(strings.NewReader(src))
		require.Error(t, err, name)
	}
}

func TestItems(t *testing.T) {
	got := Items([]string{"Reliance", "TCS"})
	want := []dropdown.Item{{Value: "Reliance"}, {Value: "TCS"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Items (-want +got):\n%s", diff)
	}
}
