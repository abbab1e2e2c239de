// Package cvejson reads CVE JSON Record 5.x files and normalizes them
// into flat records for classification and export.
package cvejson

import "strings"

// Document is the top-level shape of a CVE Record 5.x file. Only the
// substructure the pipeline consumes is modelled; unknown fields are
// ignored by the decoder.
type Document struct {
	DataType    string     `json:"dataType"`
	DataVersion string     `json:"dataVersion"`
	Metadata    Metadata   `json:"cveMetadata"`
	Containers  Containers `json:"containers"`
}

type Metadata struct {
	ID            string `json:"cveId"`
	State         string `json:"state"`
	DatePublished string `json:"datePublished"`
	DateUpdated   string `json:"dateUpdated"`
}

type Containers struct {
	CNA CNA   `json:"cna"`
	ADP []ADP `json:"adp"`
}

type CNA struct {
	Title        string        `json:"title"`
	Descriptions []Description `json:"descriptions"`
	Metrics      []MetricBlock `json:"metrics"`
	Affected     []Affected    `json:"affected"`
	References   []Reference   `json:"references"`
	ProblemTypes []ProblemType `json:"problemTypes"`
	Impacts      []Impact      `json:"impacts"`
}

type ADP struct {
	Title   string   `json:"title"`
	Impacts []Impact `json:"impacts"`
}

type Description struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// MetricBlock carries at most one CVSS object per version key.
type MetricBlock struct {
	CVSSV40 *CVSS `json:"cvssV4_0"`
	CVSSV31 *CVSS `json:"cvssV3_1"`
	CVSSV30 *CVSS `json:"cvssV3_0"`
	CVSSV20 *CVSS `json:"cvssV2_0"`
}

type CVSS struct {
	Version      string   `json:"version"`
	BaseScore    *float64 `json:"baseScore"`
	BaseSeverity string   `json:"baseSeverity"`
	AttackVector string   `json:"attackVector"`
	// AccessVector is the CVSS v2 name for the same dimension.
	AccessVector       string `json:"accessVector"`
	AttackComplexity   string `json:"attackComplexity"`
	PrivilegesRequired string `json:"privilegesRequired"`
	UserInteraction    string `json:"userInteraction"`
	VectorString       string `json:"vectorString"`
}

type Affected struct {
	Vendor   string        `json:"vendor"`
	Product  string        `json:"product"`
	CPEs     []string      `json:"cpes"`
	Versions []VersionInfo `json:"versions"`
}

type VersionInfo struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

type Reference struct {
	URL  string   `json:"url"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type ProblemType struct {
	Descriptions []ProblemTypeDescription `json:"descriptions"`
}

type ProblemTypeDescription struct {
	CWEID       string `json:"cweId"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type Impact struct {
	CAPECID      string        `json:"capecId"`
	Descriptions []Description `json:"descriptions"`
}

// Published reports whether the record's state allows it into the
// pipeline. Rejected and reserved records never reach normalization.
func (d *Document) Published() bool {
	return strings.EqualFold(d.Metadata.State, "PUBLISHED")
}
