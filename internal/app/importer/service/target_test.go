package importer_service

import (
	"testing"

	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rules = []config.TargetRule{
	{Keyword: "invoice", Database: "finance", Table: "invoices"},
	{Keyword: "stock", Database: "warehouse", Table: "stock_levels"},
	{Keyword: "price", Table: "price_list"},
}

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		name     string
		file     string
		table    string
		database string
		want     Target
	}{
		{"explicit wins", "invoice_march.xlsx", "orders", "crm", Target{"crm", "orders"}},
		{"keyword fills both", "2024_Stock_Report.xlsx", "", "", Target{"warehouse", "stock_levels"}},
		{"keyword fills table only", "invoices.xlsx", "", "archive", Target{"archive", "invoices"}},
		{"keyword fills database only", "invoice.xlsx", "payments", "", Target{"finance", "payments"}},
		{"first rule wins", "stock_price.xlsx", "", "", Target{"warehouse", "stock_levels"}},
		{"rule without database", "prices.xlsm", "", "", Target{"", "price_list"}},
		{"directory ignored", "/tmp/invoice/orders.xlsx", "orders", "", Target{"", "orders"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveTarget(rules, tc.file, tc.table, tc.database)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveTargetFailures(t *testing.T) {
	_, err := ResolveTarget(rules, "misc.xlsx", "", "")
	assert.True(t, errs.Is(err, errs.KindInvalidInput))

	_, err = ResolveTarget(rules, "misc.xlsx", "orders; drop table x", "")
	assert.True(t, errs.Is(err, errs.KindInvalidInput))

	_, err = ResolveTarget(nil, "stock.xlsx", "  ", "")
	assert.True(t, errs.Is(err, errs.KindInvalidInput))
}
