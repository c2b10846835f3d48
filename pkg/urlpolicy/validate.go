package urlpolicy

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks rawURL against policy and returns nil when every enabled
// check passes. It returns ErrEmptyURL for blank input, a MalformedURLError
// when the URL cannot be parsed, or a RejectionError naming the first check
// that failed. Checks run in a fixed order and short-circuit: file/share
// addressing, scheme, dangerous hostname, domain allowlist, IP-literal
// classification, then port range/allowlist/blocklist/well-known-service.
//
// Validate is a pure function of its inputs: no DNS resolution, no network
// I/O, no logging, no shared state. A nil policy is a programming error and
// panics.
func Validate(rawURL string, policy *Policy) error {
	if policy == nil {
		panic("urlpolicy: nil policy")
	}

	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ErrEmptyURL
	}

	if !policy.Enabled {
		return nil
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return &MalformedURLError{URL: rawURL, Cause: err}
	}

	if isFileOrShare(trimmed, u) {
		return newRejection(ReasonFileProtocol, trimmed,
			"file and network share paths are not allowed")
	}

	if !containsString(policy.AllowedSchemes, u.Scheme) {
		return newRejection(ReasonSchemeNotAllowed, u.Scheme,
			"scheme %q is not allowed", u.Scheme)
	}

	// hostport keeps brackets and port for the bracketed-IPv6 loopback
	// checks; hostname is the bare lowercased host.
	hostport := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())

	if isDangerousHost(hostport, hostname) {
		return newRejection(ReasonDangerousHostname, hostname,
			"host %q addresses the local machine", hostname)
	}

	if len(policy.AllowedDomains) > 0 && !domainAllowed(hostname, policy.AllowedDomains) {
		return newRejection(ReasonDomainNotAllowed, hostname,
			"host %q is not in the domain allowlist", hostname)
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if isPrivateIP(ip) {
			return newRejection(ReasonPrivateIP, ip.String(),
				"IP %s is in a private range", ip)
		}
		if isReservedIP(ip) {
			return newRejection(ReasonReservedIP, ip.String(),
				"IP %s is in a reserved range", ip)
		}
	}

	port, ok := resolvePort(u, policy)
	if !ok {
		// No explicit port and no standard port for the scheme: nothing
		// left to check.
		return nil
	}

	return checkPort(port, policy)
}

// isFileOrShare reports whether the URL addresses a local file path or a
// UNC/network share rather than a network host. A scheme-relative "//host"
// URL is treated as share-style addressing: it has no scheme of its own and
// is how UNC paths are written with forward slashes.
func isFileOrShare(raw string, u *url.URL) bool {
	if u.Scheme == "file" {
		return true
	}
	return strings.HasPrefix(raw, `\\`) || strings.HasPrefix(raw, "//")
}

// isDangerousHost performs the purely lexical loopback check. It runs before
// IP-literal parsing so that bracketed IPv6 loopback forms with ports or
// zones ("[::1]:8080") are caught on the raw host string.
func isDangerousHost(hostport, hostname string) bool {
	switch hostname {
	case "localhost", "localhost.localdomain", "ip6-localhost", "::1":
		return true
	}
	if strings.HasPrefix(hostname, "127.") {
		return true
	}
	return hostport == "[::1]" || strings.HasPrefix(hostport, "[::1")
}

// domainAllowed reports whether host matches any allowlist entry. Entries are
// compared case-insensitively; a "*.suffix" entry matches any subdomain depth
// but not the bare suffix itself.
func domainAllowed(host string, domains []string) bool {
	for _, domain := range domains {
		domain = strings.ToLower(domain)
		if strings.HasPrefix(domain, "*.") {
			// "*" never crosses "/" in doublestar and hostnames contain no
			// "/", so "*.example.com" matches "a.b.example.com" too.
			if ok, err := doublestar.Match(domain, host); err == nil && ok {
				return true
			}
			continue
		}
		if host == domain {
			return true
		}
	}
	return false
}

var (
	privateIPv4Blocks = mustParseCIDRs("10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16")
	siteLocalIPv6     = mustParseCIDRs("fec0::/10")
)

// isPrivateIP reports whether ip is in a private range: RFC 1918 for IPv4,
// link-local or site-local for IPv6.
func isPrivateIP(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		return containsIP(privateIPv4Blocks, v4)
	}
	return ip.IsLinkLocalUnicast() || containsIP(siteLocalIPv6, ip)
}

// isReservedIP reports whether ip is in a reserved range: unspecified,
// limited broadcast, loopback, or link-local for IPv4; link-local,
// site-local, loopback, or multicast for IPv6.
func isReservedIP(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		return v4.IsUnspecified() ||
			v4.Equal(net.IPv4bcast) ||
			v4.IsLoopback() ||
			v4.IsLinkLocalUnicast()
	}
	return ip.IsLinkLocalUnicast() ||
		containsIP(siteLocalIPv6, ip) ||
		ip.IsLoopback() ||
		ip.IsMulticast()
}

// resolvePort returns the port to check: the explicit URL port if present,
// otherwise the standard port for the scheme. The second return value is
// false when neither exists, in which case the port checks are skipped.
func resolvePort(u *url.URL, policy *Policy) (int, bool) {
	if s := u.Port(); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			return port, true
		}
	}
	if port, ok := policy.StandardPorts[u.Scheme]; ok {
		return port, true
	}
	return 0, false
}

// checkPort runs the port checks in their fixed order: range, allowlist,
// blocklist, well-known services. Each check short-circuits; the allowlist
// only rejects non-members, it does not exempt a port from the blocklist or
// the well-known table.
func checkPort(port int, policy *Policy) error {
	if port < policy.MinPort || port > policy.MaxPort {
		return newRejection(ReasonPortOutOfRange, strconv.Itoa(port),
			"port %d is outside the allowed range %d-%d", port, policy.MinPort, policy.MaxPort)
	}
	if len(policy.AllowedPorts) > 0 && !containsInt(policy.AllowedPorts, port) {
		return newRejection(ReasonPortNotAllowed, strconv.Itoa(port),
			"port %d is not in the port allowlist", port)
	}
	if containsInt(policy.BlockedPorts, port) {
		return newRejection(ReasonPortBlocked, strconv.Itoa(port),
			"port %d is blocked", port)
	}
	if policy.BlockWellKnownServices {
		if service, ok := wellKnownServicePorts[port]; ok {
			return newRejection(ReasonWellKnownPort, strconv.Itoa(port),
				"port %d is reserved for %s", port, service)
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func containsIP(blocks []*net.IPNet, ip net.IP) bool {
	for _, block := range blocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, block := range blocks {
		_, n, err := net.ParseCIDR(block)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}
