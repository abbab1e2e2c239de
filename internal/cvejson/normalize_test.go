package cvejson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestNormalizeSample(t *testing.T) {
	doc, err := parse("sample.json", []byte(sampleRecord))
	require.NoError(t, err)

	r := doc.Normalize()

	assert.Equal(t, "CVE-2021-41773", r.ID)
	assert.Equal(t, "A path traversal flaw in Apache HTTP Server 2.4.49.", r.Description)
	assert.Equal(t, SeverityHigh, r.Severity)
	require.NotNil(t, r.BaseScore)
	assert.Equal(t, 7.5, *r.BaseScore)
	assert.Equal(t, VectorNetwork, r.AttackVector)
	assert.Equal(t, []Product{{Vendor: "apache", Product: "http_server", Version: "2.4.49"}}, r.Products)
	assert.Equal(t, []string{"CWE-22"}, r.CWEs)
	assert.True(t, r.ExploitAvailable, "third-party-exploit tag contains exploit")
	assert.True(t, r.PatchAvailable, "vendor-advisory tag")
	assert.Equal(t, "2021-10-05T00:00:00", r.PublishedDate)
}

func TestPickDescriptionPrefersEnglish(t *testing.T) {
	descs := []Description{
		{Lang: "fr", Value: "une faille"},
		{Lang: "en-US", Value: "a flaw"},
	}
	assert.Equal(t, "a flaw", pickDescription(descs))
}

func TestPickDescriptionFallsBackToFirst(t *testing.T) {
	descs := []Description{
		{Lang: "de", Value: "ein Fehler"},
		{Lang: "ja", Value: "欠陥"},
	}
	assert.Equal(t, "ein Fehler", pickDescription(descs))
	assert.Equal(t, "", pickDescription(nil))
}

func TestPickCVSSHighestVersionWins(t *testing.T) {
	metrics := []MetricBlock{
		{CVSSV20: &CVSS{BaseScore: score(5.0), AccessVector: "NETWORK"}},
		{CVSSV31: &CVSS{BaseScore: score(9.8), BaseSeverity: "CRITICAL", AttackVector: "NETWORK"}},
	}
	chosen := pickCVSS(metrics)
	require.NotNil(t, chosen)
	assert.Equal(t, 9.8, *chosen.BaseScore)
}

func TestPickCVSSTieGoesToFirstBlock(t *testing.T) {
	metrics := []MetricBlock{
		{CVSSV31: &CVSS{BaseScore: score(4.3)}},
		{CVSSV31: &CVSS{BaseScore: score(8.8)}},
	}
	chosen := pickCVSS(metrics)
	require.NotNil(t, chosen)
	assert.Equal(t, 4.3, *chosen.BaseScore)
}

func TestNormalizeNoMetrics(t *testing.T) {
	doc := &Document{Metadata: Metadata{ID: "CVE-2024-0001", State: "PUBLISHED"}}
	r := doc.Normalize()

	assert.Equal(t, SeverityUnknown, r.Severity)
	assert.Nil(t, r.BaseScore)
	assert.Equal(t, VectorUnknown, r.AttackVector)
}

func TestNormalizeCVSSV2AccessVector(t *testing.T) {
	doc := &Document{
		Metadata: Metadata{ID: "CVE-2014-0001"},
		Containers: Containers{CNA: CNA{
			Metrics: []MetricBlock{
				{CVSSV20: &CVSS{BaseScore: score(6.8), AccessVector: "ADJACENT_NETWORK"}},
			},
		}},
	}
	r := doc.Normalize()

	// v2 carries no baseSeverity; the score stands alone.
	assert.Equal(t, SeverityUnknown, r.Severity)
	assert.Equal(t, VectorAdjacent, r.AttackVector)
	require.NotNil(t, r.BaseScore)
	assert.Equal(t, 6.8, *r.BaseScore)
}

func TestNormalizeProductsPreserveSourceOrder(t *testing.T) {
	doc := &Document{
		Metadata: Metadata{ID: "CVE-2023-0001"},
		Containers: Containers{CNA: CNA{
			Affected: []Affected{
				{Vendor: "acme", Product: "widget"},
				{Vendor: "acme", Product: "widget"},
				{Vendor: "beta", Product: "gadget", CPEs: []string{"cpe:2.3:a:beta:gadget"}},
			},
		}},
	}
	r := doc.Normalize()

	// No de-duplication, source order kept.
	require.Len(t, r.Products, 3)
	assert.Equal(t, "acme", r.Products[0].Vendor)
	assert.Equal(t, "acme", r.Products[1].Vendor)
	assert.Equal(t, "beta", r.Products[2].Vendor)
	assert.Equal(t, "N/A", r.Products[0].Version)
	assert.Equal(t, []string{"cpe:2.3:a:beta:gadget"}, r.CPEs)
}

func TestNormalizeReferenceFlags(t *testing.T) {
	doc := &Document{
		Metadata: Metadata{ID: "CVE-2023-0002"},
		Containers: Containers{CNA: CNA{
			References: []Reference{
				{URL: "https://a.example", Tags: []string{"mailing-list"}},
				{URL: "https://b.example", Tags: []string{"Exploit"}},
			},
		}},
	}
	r := doc.Normalize()

	assert.True(t, r.ExploitAvailable)
	assert.False(t, r.PatchAvailable)
	require.Len(t, r.References, 2)
	assert.Equal(t, "https://a.example", r.References[0].Name, "name defaults to URL")
}

func TestNormalizeImpactsDedupAcrossContainers(t *testing.T) {
	doc := &Document{
		Metadata: Metadata{ID: "CVE-2023-0003"},
		Containers: Containers{
			CNA: CNA{Impacts: []Impact{
				{Descriptions: []Description{{Lang: "en", Value: "Denial of service"}}},
			}},
			ADP: []ADP{
				{Impacts: []Impact{
					{Descriptions: []Description{
						{Lang: "en", Value: "Denial of service"},
						{Lang: "en", Value: "Information disclosure"},
					}},
				}},
			},
		},
	}
	r := doc.Normalize()

	assert.Equal(t, []string{"Denial of service", "Information disclosure"}, r.Impacts)
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, SeverityCritical, ParseSeverity("critical"))
	assert.Equal(t, SeverityMedium, ParseSeverity("Moderate"))
	assert.Equal(t, SeverityUnknown, ParseSeverity("SEVERE"))

	assert.Equal(t, VectorNetwork, ParseAttackVector("network"))
	assert.Equal(t, VectorAdjacent, ParseAttackVector("ADJACENT"))
	assert.Equal(t, VectorUnknown, ParseAttackVector("REMOTE"))
}
