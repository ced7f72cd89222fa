package catalog

import "strings"

// Registrar is an entry of the registrar support directory.
type Registrar struct {
	Name       string
	SupportURL string
	// Match holds lowercase substrings that identify this registrar in WHOIS output.
	Match []string
}

var registrars = []Registrar{
	{Name: "GoDaddy", SupportURL: "https://www.godaddy.com/help", Match: []string{"godaddy", "wild west domains"}},
	{Name: "Namecheap", SupportURL: "https://www.namecheap.com/support/", Match: []string{"namecheap"}},
	{Name: "Squarespace Domains", SupportURL: "https://support.squarespace.com/hc/en-us/categories/domains", Match: []string{"squarespace", "google llc", "google domains"}},
	{Name: "Cloudflare", SupportURL: "https://dash.cloudflare.com/?to=/:account/support", Match: []string{"cloudflare"}},
	{Name: "Network Solutions", SupportURL: "https://www.networksolutions.com/support/", Match: []string{"network solutions"}},
	{Name: "Tucows", SupportURL: "https://tucowsdomains.com/contact/", Match: []string{"tucows"}},
	{Name: "eNom", SupportURL: "https://www.enom.com/support/", Match: []string{"enom"}},
	{Name: "Gandi", SupportURL: "https://help.gandi.net/", Match: []string{"gandi"}},
	{Name: "Porkbun", SupportURL: "https://kb.porkbun.com/", Match: []string{"porkbun"}},
	{Name: "Dynadot", SupportURL: "https://www.dynadot.com/help/", Match: []string{"dynadot"}},
	{Name: "Hover", SupportURL: "https://help.hover.com/", Match: []string{"hover"}},
	{Name: "Name.com", SupportURL: "https://www.name.com/support", Match: []string{"name.com"}},
	{Name: "IONOS", SupportURL: "https://www.ionos.com/help/", Match: []string{"ionos", "1&1", "1und1"}},
	{Name: "OVHcloud", SupportURL: "https://help.ovhcloud.com/", Match: []string{"ovh"}},
	{Name: "Bluehost", SupportURL: "https://www.bluehost.com/help", Match: []string{"bluehost"}},
	{Name: "MarkMonitor", SupportURL: "https://www.markmonitor.com/contact-us", Match: []string{"markmonitor"}},
	{Name: "Register.com", SupportURL: "https://www.register.com/help", Match: []string{"register.com"}},
	{Name: "Amazon Registrar", SupportURL: "https://aws.amazon.com/route53/", Match: []string{"amazon registrar", "amazon.com"}},
	{Name: "Wix", SupportURL: "https://support.wix.com/", Match: []string{"wix.com"}},
	{Name: "Alibaba Cloud", SupportURL: "https://www.alibabacloud.com/help", Match: []string{"alibaba", "hichina"}},
	{Name: "Key-Systems", SupportURL: "https://www.key-systems.net/en/contact", Match: []string{"key-systems"}},
	{Name: "PDR", SupportURL: "https://www.publicdomainregistry.com/support/", Match: []string{"publicdomainregistry", "pdr ltd"}},
}

// LookupRegistrar resolves a free-form WHOIS registrar name against the directory by
// substring match. The first matching entry wins.
func LookupRegistrar(name string) (Registrar, bool) {
	n := strings.ToLower(name)
	if strings.TrimSpace(n) == "" {
		return Registrar{}, false
	}
	for _, r := range registrars {
		for _, m := range r.Match {
			if strings.Contains(n, m) {
				return r, true
			}
		}
	}
	return Registrar{}, false
}
