// Package urlpolicy implements an outbound-request firewall decision function.
//
// The package answers one question: is this URL safe for the service to fetch
// on behalf of possibly attacker-controlled input? It rejects URLs that would
// let a caller reach loopback or private addresses, internal service ports,
// file or network-share paths, or hosts outside a configured allowlist
// (Server-Side Request Forgery).
//
// The core is a single pure function:
//
//	policy := urlpolicy.Default()
//	if err := urlpolicy.Validate("https://api.example.com/data", policy); err != nil {
//	    var rej *urlpolicy.RejectionError
//	    if errors.As(err, &rej) {
//	        // rej.Reason identifies the failing check, rej.Value the offending
//	        // scheme, host, IP, or port.
//	    }
//	    return err
//	}
//
// Validate performs no I/O: no DNS lookups, no network calls, no logging. It
// classifies the literal host in the URL, so it does not defend against DNS
// rebinding; callers that follow redirects must re-validate every hop (the
// httpclient package in this repository does both of these things for you).
//
// A Policy is constructed once, typically at service startup, and shared
// read-only across any number of concurrent Validate calls.
package urlpolicy
