// Package ufnet contains utilities for URL and hostname parsing.
package ufnet

import (
	"net/netip"
	"strings"
)

// ExtractHostname quickly retrieves the hostname from the given URL.  It
// returns an empty string if the URL has no authority part, that is if the
// scheme is not immediately followed by "//".  Non-hierarchical URLs such as
// "data:", "about:", "blob:", and "javascript:" ones therefore have no
// hostname even if "//" appears later in them.  The user information and the
// port are stripped, and the brackets are removed from IPv6 hosts.
//
// NOTE: ExtractHostname is an optimized, best-effort function.  The result is
// not guaranteed to be correct for malformed URLs.
func ExtractHostname(url string) (hostname string) {
	schemeEnd := strings.IndexByte(url, ':')
	if schemeEnd == -1 || !isValidScheme(url[:schemeEnd]) {
		return ""
	}

	authority, ok := strings.CutPrefix(url[schemeEnd+1:], "//")
	if !ok {
		return ""
	}

	if end := strings.IndexAny(authority, "/?#"); end != -1 {
		authority = authority[:end]
	}

	if at := strings.LastIndexByte(authority, '@'); at != -1 {
		authority = authority[at+1:]
	}

	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end == -1 {
			return ""
		}

		return authority[1:end]
	}

	hostname, _, _ = strings.Cut(authority, ":")

	return hostname
}

// isValidScheme returns true if s is a valid URL scheme: a letter followed by
// letters, digits, "+", "-", or ".".
func isValidScheme(s string) (ok bool) {
	if s == "" {
		return false
	}

	for i, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			// Go on.
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
			// Go on.
		default:
			return false
		}
	}

	return true
}

// DomainName returns the lowercased hostname of url if it is a domain name.
// It returns an empty string if the URL has no hostname or if the hostname is
// an IP address, including the IPv4 shorthands such as "127.1" and
// "0x7f.0.0.1" that browsers resolve as addresses.
func DomainName(url string) (domain string) {
	host := ExtractHostname(url)
	if host == "" || IsIP(host) || EndsInNumber(host) {
		return ""
	}

	return strings.ToLower(host)
}

// EndsInNumber returns true if the last label of host, ignoring a single
// trailing dot, is a decimal number or a "0x"-prefixed hexadecimal one.  Such
// hosts are parsed by browsers as IPv4 addresses and never as domain names.
func EndsInNumber(host string) (ok bool) {
	host = strings.TrimSuffix(host, ".")
	label := host[strings.LastIndexByte(host, '.')+1:]
	if label == "" {
		return false
	}

	if hex, isHex := strings.CutPrefix(strings.ToLower(label), "0x"); isHex {
		return strings.Trim(hex, "0123456789abcdef") == ""
	}

	return strings.Trim(label, "0123456789") == ""
}

// IsIP returns true if s is a textual representation of an IP address.
func IsIP(s string) (ok bool) {
	if !IsProbablyIP(s) {
		return false
	}

	_, err := netip.ParseAddr(s)

	return err == nil
}

// isAddrRune returns true if r is a valid rune of string representation of an
// IP address.
func isAddrRune(r rune) (ok bool) {
	switch {
	case r == '.', r == ':',
		r >= '0' && r <= '9',
		r >= 'A' && r <= 'F',
		r >= 'a' && r <= 'f',
		r == '[', r == ']':
		return true
	default:
		return false
	}
}

// IsProbablyIP returns true if s only contains characters that can be part of
// an IP address.  It's needed to avoid unnecessary allocations when parsing
// with [netip.ParseAddr].
func IsProbablyIP(s string) (ok bool) {
	for _, r := range s {
		if !isAddrRune(r) {
			return false
		}
	}

	return len(s) >= len("::")
}
