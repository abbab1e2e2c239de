// Package classify decides whether a CVE record is relevant to a
// web-focused knowledge base.
package classify

import (
	"strings"

	"github.com/recon-agent/cvekb/internal/cvejson"
)

// Keywords are the relevance signal sets. All matching is
// case-insensitive substring matching.
type Keywords struct {
	WebProducts      []string
	VulnClasses      []string
	GatedVulnClasses []string
	WebHints         []string
	WebCWEs          []string
}

// Classifier is pure: no I/O, no state mutation, deterministic for a
// given keyword configuration.
type Classifier struct {
	products     []string
	vulnClasses  []string
	gatedClasses []string
	hints        []string
	cwes         map[string]bool
}

func New(kw Keywords) *Classifier {
	c := &Classifier{
		products:     lowerAll(kw.WebProducts),
		vulnClasses:  lowerAll(kw.VulnClasses),
		gatedClasses: lowerAll(kw.GatedVulnClasses),
		hints:        lowerAll(kw.WebHints),
		cwes:         make(map[string]bool, len(kw.WebCWEs)),
	}
	for _, id := range kw.WebCWEs {
		c.cwes[strings.ToUpper(id)] = true
	}
	return c
}

// WebRelevant is an OR of independent signals; any single true signal
// is sufficient. The bias is recall over precision: a false positive
// costs a row, a false negative loses a record the knowledge base
// should have.
func (c *Classifier) WebRelevant(r *cvejson.Record) bool {
	return r.AttackVector == cvejson.VectorNetwork ||
		c.matchesProduct(r) ||
		c.matchesDescription(r.Description) ||
		c.matchesCWE(r)
}

func (c *Classifier) matchesProduct(r *cvejson.Record) bool {
	for _, p := range r.Products {
		vendor := strings.ToLower(p.Vendor)
		product := strings.ToLower(p.Product)
		for _, kw := range c.products {
			if strings.Contains(vendor, kw) || strings.Contains(product, kw) {
				return true
			}
		}
	}
	for _, cpe := range r.CPEs {
		lower := strings.ToLower(cpe)
		for _, kw := range c.products {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) matchesDescription(description string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)
	for _, kw := range c.vulnClasses {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// Gated classes (e.g. "remote code execution") are too broad on
	// their own; they count only alongside a web hint in the same text.
	for _, kw := range c.gatedClasses {
		if strings.Contains(lower, kw) && c.hasWebHint(lower) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasWebHint(lowerDescription string) bool {
	for _, hint := range c.hints {
		if strings.Contains(lowerDescription, hint) {
			return true
		}
	}
	for _, kw := range c.products {
		if strings.Contains(lowerDescription, kw) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesCWE(r *cvejson.Record) bool {
	for _, id := range r.CWEs {
		if c.cwes[strings.ToUpper(id)] {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
