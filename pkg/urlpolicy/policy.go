package urlpolicy

import "fmt"

// Policy is the full set of rules governing which outbound URLs are
// acceptable. Construct it once and treat it as read-only afterwards;
// Validate never mutates it, so a single Policy is safe to share across
// goroutines.
type Policy struct {
	// Enabled turns validation on. When false every syntactically usable URL
	// passes, which is intended for development environments only.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedSchemes lists URL schemes that may be used. The parser lowercases
	// schemes, so entries should be lowercase.
	// Default: http, https
	AllowedSchemes []string `yaml:"allowed_schemes,omitempty"`

	// AllowedDomains restricts destinations to the listed hosts when
	// non-empty. Entries are matched case-insensitively and may use a
	// leading wildcard: "*.example.com" matches any subdomain of example.com
	// (but not example.com itself).
	// Default: empty (no domain restriction)
	AllowedDomains []string `yaml:"allowed_domains,omitempty"`

	// AllowedPorts restricts destinations to the listed ports when non-empty.
	// Default: empty (no port allowlist)
	AllowedPorts []int `yaml:"allowed_ports,omitempty"`

	// BlockedPorts lists ports that are always rejected.
	// Default: empty
	BlockedPorts []int `yaml:"blocked_ports,omitempty"`

	// BlockWellKnownServices rejects ports conventionally used by internal
	// backend services (databases, directory services, remote access). See
	// wellknown.go for the table; 8080 and 8443 are deliberately not in it.
	// Default: true
	BlockWellKnownServices bool `yaml:"block_well_known_services"`

	// StandardPorts maps a scheme to its default port, used only to resolve
	// URLs that carry no explicit port. A URL whose scheme has no entry here
	// and no explicit port skips the port checks entirely.
	// Default: http:80, https:443
	StandardPorts map[string]int `yaml:"standard_ports,omitempty"`

	// MinPort and MaxPort bound acceptable ports, inclusive.
	// Defaults: 1 and 65535
	MinPort int `yaml:"min_port"`
	MaxPort int `yaml:"max_port"`
}

// Default returns a Policy with the documented defaults: http/https only,
// well-known service ports blocked, no domain or port allowlists.
func Default() *Policy {
	return &Policy{
		Enabled:                true,
		AllowedSchemes:         []string{"http", "https"},
		BlockWellKnownServices: true,
		StandardPorts:          map[string]int{"http": 80, "https": 443},
		MinPort:                1,
		MaxPort:                65535,
	}
}

// Validate checks that the policy configuration itself is coherent.
// It does not inspect any URL.
func (p *Policy) Validate() error {
	if p.MinPort < 1 || p.MinPort > 65535 {
		return fmt.Errorf("min_port must be in 1-65535, got %d", p.MinPort)
	}
	if p.MaxPort < 1 || p.MaxPort > 65535 {
		return fmt.Errorf("max_port must be in 1-65535, got %d", p.MaxPort)
	}
	if p.MinPort > p.MaxPort {
		return fmt.Errorf("min_port (%d) must be <= max_port (%d)", p.MinPort, p.MaxPort)
	}
	for _, port := range p.AllowedPorts {
		if port < 1 || port > 65535 {
			return fmt.Errorf("allowed_ports entry %d is not a valid port", port)
		}
	}
	for _, port := range p.BlockedPorts {
		if port < 1 || port > 65535 {
			return fmt.Errorf("blocked_ports entry %d is not a valid port", port)
		}
	}
	for scheme, port := range p.StandardPorts {
		if port < 1 || port > 65535 {
			return fmt.Errorf("standard_ports entry %s:%d is not a valid port", scheme, port)
		}
	}
	return nil
}
