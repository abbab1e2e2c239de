package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recon-agent/cvekb/internal/cvejson"
)

func score(v float64) *float64 { return &v }

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func TestUpsertAndGet(t *testing.T) {
	catalog := openTestCatalog(t)

	entry := Entry{
		CVEID:            "CVE-2021-41773",
		Vendor:           "apache",
		Product:          "http_server",
		Description:      "path traversal",
		Severity:         "HIGH",
		BaseScore:        score(7.5),
		AttackVector:     "NETWORK",
		ExploitAvailable: true,
		PublishedDate:    "2021-10-05T00:00:00",
		References:       []string{"https://example.com/advisory"},
	}
	require.NoError(t, catalog.Upsert(entry))

	got, err := catalog.Get("CVE-2021-41773")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Vendor, got.Vendor)
	assert.Equal(t, entry.Severity, got.Severity)
	require.NotNil(t, got.BaseScore)
	assert.Equal(t, 7.5, *got.BaseScore)
	assert.True(t, got.ExploitAvailable)
	assert.False(t, got.PatchAvailable)
	assert.Equal(t, entry.References, got.References)
}

func TestUpsertReplacesByID(t *testing.T) {
	catalog := openTestCatalog(t)

	require.NoError(t, catalog.Upsert(Entry{CVEID: "CVE-2022-0001", Severity: "LOW", AttackVector: "LOCAL"}))
	require.NoError(t, catalog.Upsert(Entry{CVEID: "CVE-2022-0001", Severity: "CRITICAL", AttackVector: "NETWORK"}))

	count, err := catalog.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := catalog.Get("CVE-2022-0001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CRITICAL", got.Severity)
}

func TestGetMissingReturnsNil(t *testing.T) {
	catalog := openTestCatalog(t)

	got, err := catalog.Get("CVE-0000-0000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNullBaseScoreRoundTrips(t *testing.T) {
	catalog := openTestCatalog(t)

	require.NoError(t, catalog.Upsert(Entry{
		CVEID:        "CVE-2023-0001",
		Severity:     "UNKNOWN",
		AttackVector: "UNKNOWN",
	}))

	got, err := catalog.Get("CVE-2023-0001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.BaseScore)
}

func TestEntryFromRecord(t *testing.T) {
	r := &cvejson.Record{
		ID:           "CVE-2021-0001",
		Description:  "a flaw",
		Severity:     cvejson.SeverityMedium,
		BaseScore:    score(5.4),
		AttackVector: cvejson.VectorNetwork,
		Products: []cvejson.Product{
			{Vendor: "apache", Product: "tomcat"},
			{Vendor: "other", Product: "thing"},
		},
		References: []cvejson.NormalizedReference{
			{Name: "a", URL: "https://a.example"},
			{Name: "b", URL: "https://b.example"},
		},
		PatchAvailable: true,
	}

	e := EntryFromRecord(r)
	assert.Equal(t, "CVE-2021-0001", e.CVEID)
	assert.Equal(t, "apache", e.Vendor, "first affected pair wins")
	assert.Equal(t, "tomcat", e.Product)
	assert.Equal(t, "MEDIUM", e.Severity)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, e.References)
	assert.True(t, e.PatchAvailable)
}
