package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
)

var base = time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)

func tenRecordFixture() []models.SignalRecord {
	rec := func(id, sym string, st models.SignalStatus, hour int) models.SignalRecord {
		return models.SignalRecord{SignalID: id, Symbol: sym, Status: st, CreatedAt: base.Add(time.Duration(hour) * time.Hour)}
	}
	return []models.SignalRecord{
		rec("1", "BTCUSDT", models.StatusExecuted, 1),
		rec("2", "ETHUSDT", models.StatusExecuted, 2),
		rec("3", "BTCUSDT", models.StatusPending, 3),
		rec("4", "BTCUSDT", models.StatusExecuted, 9),
		rec("5", "SOLUSDT", models.StatusExpired, 4),
		rec("6", "BTCUSDT", models.StatusExpired, 5),
		rec("7", "ETHUSDT", models.StatusPending, 6),
		rec("8", "BTCUSDT", models.StatusExecuted, 5),
		rec("9", "BNBUSDT", models.StatusExecuted, 7),
		rec("10", "BTCUSDT", models.StatusExecuted, 5),
	}
}

func ids(rs []models.SignalRecord) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.SignalID)
	}
	return out
}

func TestFilterBySymbolAndStatus(t *testing.T) {
	got := Filter(tenRecordFixture(), "BTCUSDT", "executed")

	// 8 and 10 share a timestamp and keep their input order.
	assert.Equal(t, []string{"4", "8", "10", "1"}, ids(got))
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	assert.Len(t, Filter(tenRecordFixture(), "", ""), 10)
	assert.Len(t, Filter(tenRecordFixture(), "btcusdt", ""), 6)
}

func records(n int) []models.SignalRecord {
	out := make([]models.SignalRecord, n)
	for i := range out {
		out[i] = models.SignalRecord{SignalID: fmt.Sprint(i), Symbol: "BTCUSDT", CreatedAt: base.Add(time.Duration(-i) * time.Minute)}
	}
	return out
}

func TestQueryPagination(t *testing.T) {
	all := records(45)

	p1 := Query(all, SignalQuery{Page: 1, PageSize: 20})
	assert.Len(t, p1.Records, 20)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 45, p1.Total)
	assert.Equal(t, "0", p1.Records[0].SignalID)

	p3 := Query(all, SignalQuery{Page: 3, PageSize: 20})
	assert.Len(t, p3.Records, 5)
	assert.Equal(t, "44", p3.Records[4].SignalID)

	p4 := Query(all, SignalQuery{Page: 4, PageSize: 20})
	assert.Equal(t, 3, p4.Page)
	assert.Len(t, p4.Records, 5)

	p0 := Query(all, SignalQuery{Page: 0})
	assert.Equal(t, 1, p0.Page)
	assert.Equal(t, DefaultPageSize, p0.PageSize)
}

func TestQueryEmptyHasOnePage(t *testing.T) {
	p := Query(nil, SignalQuery{Page: 3})

	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Empty(t, p.Records)
}

func TestViewStateNavigation(t *testing.T) {
	all := records(45)
	v := NewViewState(20)

	require.True(t, v.GoToPage(all, 3))
	assert.Equal(t, 3, v.Page)

	assert.False(t, v.GoToPage(all, 4))
	assert.False(t, v.GoToPage(all, 0))
	assert.Equal(t, 3, v.Page)
	assert.Len(t, v.Current(all).Records, 5)
}

func TestViewStateFilterChangeResetsPage(t *testing.T) {
	all := records(45)
	v := NewViewState(20)
	require.True(t, v.GoToPage(all, 2))

	v.SetFilters("", "")
	assert.Equal(t, 2, v.Page, "same filters keep the page")

	v.SetFilters("BTCUSDT", "")
	assert.Equal(t, 1, v.Page)

	require.True(t, v.GoToPage(all, 2))
	v.SetFilters("BTCUSDT", "executed")
	assert.Equal(t, 1, v.Page)
}
