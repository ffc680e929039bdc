package rules

import (
	"strings"

	"github.com/AdguardTeam/contentblocker/internal/ufnet"
	"golang.org/x/net/publicsuffix"
)

// Request represents a resource request made by a document with all the
// properties necessary to match it against the rules.
type Request struct {
	// URL is the full request URL.  Rule patterns are matched against it.
	URL string

	// Hostname is the lowercased domain name of the request URL.  It is empty
	// if the URL has no host or the host is an IP address, in which case the
	// request never belongs to any domain set.
	Hostname string

	// SourceURL is the URL of the originating document, if known.
	SourceURL string

	// ResourceType is the type of the requested resource.
	ResourceType ResourceType

	// LoadType is the relationship of the request to the originating
	// document.
	LoadType LoadType
}

// NewRequest creates a new request for the given URL and populates its
// hostname.
func NewRequest(url string, resourceType ResourceType, loadType LoadType) (r *Request) {
	return &Request{
		URL:          url,
		Hostname:     ufnet.DomainName(url),
		ResourceType: resourceType,
		LoadType:     loadType,
	}
}

// NewRequestFromSource creates a new request for the given URL made by the
// document at sourceURL.  The request is third-party if the registrable domains
// of the two URLs differ and the source domain is known.
func NewRequestFromSource(url, sourceURL string, resourceType ResourceType) (r *Request) {
	r = NewRequest(url, resourceType, LoadTypeFirstParty)
	r.SourceURL = sourceURL

	sourceDomain := registrableDomain(sourceURL)
	domain := registrableDomain(url)

	if sourceDomain != "" && sourceDomain != domain {
		r.LoadType = LoadTypeThirdParty
	}

	return r
}

// registrableDomain returns the lowercased eTLD+1 of the URL's host.  IP
// addresses and hosts without a known public suffix are returned as is.
func registrableDomain(url string) (domain string) {
	host := strings.ToLower(ufnet.ExtractHostname(url))
	if ufnet.IsIP(host) || ufnet.EndsInNumber(host) {
		return host
	}

	domain = effectiveTLDPlusOne(host)
	if domain == "" {
		return host
	}

	return domain
}

// effectiveTLDPlusOne is a faster version of publicsuffix.EffectiveTLDPlusOne
// that avoids using fmt.Errorf when the domain is less or equal the suffix.
func effectiveTLDPlusOne(hostname string) (domain string) {
	hostnameLen := len(hostname)
	if hostnameLen < 1 {
		return ""
	}

	if hostname[0] == '.' || hostname[hostnameLen-1] == '.' {
		return ""
	}

	suffix, _ := publicsuffix.PublicSuffix(hostname)

	i := hostnameLen - len(suffix) - 1
	if i < 0 || hostname[i] != '.' {
		return ""
	}

	return hostname[1+strings.LastIndex(hostname[:i], "."):]
}
