package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// emailDomain returns the part after the last "@", or "" when absent.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

// DomainResolves reports whether the email domain has an MX record or,
// failing that, any address. Lookup errors count as "does not resolve".
func DomainResolves(ctx context.Context, r *net.Resolver, email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsEmailDomainValid uses the default resolver with a short timeout so a
// slow DNS never holds a booking request.
func IsEmailDomainValid(email string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	return DomainResolves(ctx, net.DefaultResolver, email)
}
