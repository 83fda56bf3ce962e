package auth

import "strings"

// Domains auto-approved by organization type: public agencies,
// universities, and military installations register without review.
var autoApproveSuffixes = []string{".gov", ".edu", ".mil"}

// Known utility and energy-research domains approved by name.
var approvedDomains = map[string]bool{
	"epri.com":          true,
	"rmi.org":           true,
	"southernco.com":    true,
	"duke-energy.com":   true,
	"aep.com":           true,
	"exeloncorp.com":    true,
	"nexteraenergy.com": true,
	"oncor.com":         true,
	"misoenergy.org":    true,
	"ercot.com":         true,
	"pjm.com":           true,
	"spp.org":           true,
}

// EmailDomain extracts the lowercased domain part of an email address,
// empty when the address has no domain.
func EmailDomain(email string) string {
	_, domain, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found || domain == "" {
		return ""
	}
	return strings.ToLower(domain)
}

// AutoApprove reports whether a registration from this domain is
// approved without review.
func AutoApprove(domain string) bool {
	domain = strings.ToLower(domain)
	if approvedDomains[domain] {
		return true
	}
	for _, suffix := range autoApproveSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}
