package cvejson

import "strings"

// Product is one (vendor, product) pair from the affected list, with a
// short version summary for the retrieval document.
type Product struct {
	Vendor  string
	Product string
	Version string
}

// NormalizedReference keeps the display name alongside the URL.
type NormalizedReference struct {
	Name string
	URL  string
}

// Record is the flattened, in-memory view of one CVE used by the
// classifier and the exporter. It exists only for the duration of
// processing a single file.
type Record struct {
	ID                 string
	Title              string
	Description        string
	Severity           Severity
	BaseScore          *float64
	AttackVector       AttackVector
	AttackComplexity   string
	PrivilegesRequired string
	UserInteraction    string
	Products           []Product
	CPEs               []string
	CWEs               []string
	References         []NormalizedReference
	ExploitAvailable   bool
	PatchAvailable     bool
	PublishedDate      string
	UpdatedDate        string
	Impacts            []string
}

const maxVersionsPerProduct = 3

// Normalize flattens the document into a Record. All rules are
// deterministic and order-sensitive: source order is preserved
// everywhere, and ties go to the first element in source order.
func (d *Document) Normalize() *Record {
	r := &Record{
		ID:            d.Metadata.ID,
		Title:         d.Containers.CNA.Title,
		Description:   pickDescription(d.Containers.CNA.Descriptions),
		Severity:      SeverityUnknown,
		AttackVector:  VectorUnknown,
		PublishedDate: d.Metadata.DatePublished,
		UpdatedDate:   d.Metadata.DateUpdated,
	}

	if cvss := pickCVSS(d.Containers.CNA.Metrics); cvss != nil {
		r.BaseScore = cvss.BaseScore
		r.Severity = ParseSeverity(cvss.BaseSeverity)
		vector := cvss.AttackVector
		if vector == "" {
			vector = cvss.AccessVector
		}
		r.AttackVector = ParseAttackVector(vector)
		r.AttackComplexity = cvss.AttackComplexity
		r.PrivilegesRequired = cvss.PrivilegesRequired
		r.UserInteraction = cvss.UserInteraction
	}

	for _, affected := range d.Containers.CNA.Affected {
		r.Products = append(r.Products, Product{
			Vendor:  affected.Vendor,
			Product: affected.Product,
			Version: versionSummary(affected.Versions),
		})
		r.CPEs = append(r.CPEs, affected.CPEs...)
	}

	for _, pt := range d.Containers.CNA.ProblemTypes {
		for _, desc := range pt.Descriptions {
			if desc.CWEID != "" && !contains(r.CWEs, desc.CWEID) {
				r.CWEs = append(r.CWEs, desc.CWEID)
			}
		}
	}

	for _, ref := range d.Containers.CNA.References {
		name := ref.Name
		if name == "" {
			name = ref.URL
		}
		r.References = append(r.References, NormalizedReference{Name: name, URL: ref.URL})
		for _, tag := range ref.Tags {
			lower := strings.ToLower(tag)
			if strings.Contains(lower, "exploit") {
				r.ExploitAvailable = true
			}
			if strings.Contains(lower, "patch") || strings.Contains(lower, "vendor-advisory") {
				r.PatchAvailable = true
			}
		}
	}

	r.Impacts = collectImpacts(d)

	return r
}

// pickDescription returns the first English-tagged entry, falling back
// to the first entry of any language.
func pickDescription(descs []Description) string {
	for _, d := range descs {
		lang := strings.ToLower(d.Lang)
		if lang == "en" || strings.HasPrefix(lang, "en-") {
			return d.Value
		}
	}
	if len(descs) > 0 {
		return descs[0].Value
	}
	return ""
}

// pickCVSS chooses the metric block to trust: the highest CVSS version
// present anywhere wins, and within that version the first block in
// source order does.
func pickCVSS(metrics []MetricBlock) *CVSS {
	selectors := []func(MetricBlock) *CVSS{
		func(m MetricBlock) *CVSS { return m.CVSSV40 },
		func(m MetricBlock) *CVSS { return m.CVSSV31 },
		func(m MetricBlock) *CVSS { return m.CVSSV30 },
		func(m MetricBlock) *CVSS { return m.CVSSV20 },
	}
	for _, sel := range selectors {
		for _, m := range metrics {
			if cvss := sel(m); cvss != nil {
				return cvss
			}
		}
	}
	return nil
}

func versionSummary(versions []VersionInfo) string {
	var parts []string
	for _, v := range versions {
		if v.Version == "" {
			continue
		}
		parts = append(parts, v.Version)
		if len(parts) == maxVersionsPerProduct {
			break
		}
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

func collectImpacts(d *Document) []string {
	var out []string
	add := func(impacts []Impact) {
		for _, impact := range impacts {
			for _, desc := range impact.Descriptions {
				value := strings.TrimSpace(desc.Value)
				if value != "" && !contains(out, value) {
					out = append(out, value)
				}
			}
		}
	}
	add(d.Containers.CNA.Impacts)
	for _, adp := range d.Containers.ADP {
		add(adp.Impacts)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
