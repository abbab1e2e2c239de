// Package export turns accepted records into the tabular file consumed
// by the knowledge-base ingestion service.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/recon-agent/cvekb/internal/cvejson"
)

// Only the first few references make it into the document; the full
// list adds noise without improving retrieval.
const maxContentReferences = 5

var tagPattern = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)

// BuildContent renders the free-text retrieval document for one record.
// The layout is stable across runs so repeated exports are
// byte-identical.
func BuildContent(r *cvejson.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CVE ID: %s\n", r.ID)
	if r.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", r.Title)
	}
	fmt.Fprintf(&b, "Severity: %s (Score: %s)\n", r.Severity, FormatScore(r.BaseScore))
	fmt.Fprintf(&b, "Description: %s\n\n", StripHTML(r.Description))

	b.WriteString("Attack Details:\n")
	fmt.Fprintf(&b, "- Vector: %s\n", r.AttackVector)
	fmt.Fprintf(&b, "- Complexity: %s\n", orUnknown(r.AttackComplexity))
	fmt.Fprintf(&b, "- Privileges: %s\n", orUnknown(r.PrivilegesRequired))
	fmt.Fprintf(&b, "- User Interaction: %s\n\n", orUnknown(r.UserInteraction))

	if len(r.Products) > 0 {
		b.WriteString("Affected Products:\n")
		for _, p := range r.Products {
			fmt.Fprintf(&b, "- %s %s %s\n", p.Vendor, p.Product, p.Version)
		}
		b.WriteString("\n")
	}

	if len(r.CWEs) > 0 {
		fmt.Fprintf(&b, "Weakness Types (CWE): %s\n\n", strings.Join(r.CWEs, ", "))
	}

	if len(r.Impacts) > 0 {
		b.WriteString("Impact:\n")
		for _, impact := range r.Impacts {
			fmt.Fprintf(&b, "- %s\n", impact)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Exploit Available: %s\n", yesNo(r.ExploitAvailable))
	fmt.Fprintf(&b, "Patch Available: %s\n", yesNo(r.PatchAvailable))
	fmt.Fprintf(&b, "Published: %s\n", r.PublishedDate)
	fmt.Fprintf(&b, "Updated: %s\n", r.UpdatedDate)

	if len(r.References) > 0 {
		b.WriteString("\nReferences:\n")
		for i, ref := range r.References {
			if i == maxContentReferences {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", ref.Name, ref.URL)
		}
	}

	return b.String()
}

// StripHTML removes markup that some CNAs embed in description text,
// keeping the rendered text. Plain text (including "<" used as a
// comparison, e.g. "versions < 2.4") passes through untouched.
func StripHTML(s string) string {
	if !tagPattern.MatchString(s) {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
