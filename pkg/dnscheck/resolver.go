package dnscheck

import (
	"context"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

const (
	DefaultTimeout    = 5 * time.Second
	DefaultResolvConf = "/etc/resolv.conf"
)

var (
	ErrServFail = errors.New("dns: server failure")
	ErrRefused  = errors.New("dns: query refused")
)

//go:generate mockgen -source=./resolver.go --destination=./resolver_mock_test.go --package=dnscheck

// Resolver looks up the resource records of one type at a name. A name that does not exist
// yields no records and no error.
type Resolver interface {
	Lookup(ctx context.Context, name string, qtype uint16) ([]dns.RR, error)
}

type ResolverConfig struct {
	// Nameservers are queried in order, e.g. "8.8.8.8:53". Empty means the servers in
	// /etc/resolv.conf.
	Nameservers []string
	Timeout     time.Duration
	Retries     int
}

// DNSResolver queries nameservers directly so that results are not served from a local cache
// that predates the deployment.
type DNSResolver struct {
	config ResolverConfig
	client *dns.Client
}

func NewResolver(config ResolverConfig) *DNSResolver {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if len(config.Nameservers) == 0 {
		config.Nameservers = SystemNameservers(DefaultResolvConf)
	}
	servers := make([]string, len(config.Nameservers))
	for i, s := range config.Nameservers {
		servers[i] = withPort(s)
	}
	config.Nameservers = servers
	return &DNSResolver{
		config: config,
		client: &dns.Client{Timeout: config.Timeout},
	}
}

// SystemNameservers reads the nameservers from a resolv.conf, falling back to public resolvers.
func SystemNameservers(path string) []string {
	conf, err := dns.ClientConfigFromFile(path)
	if err != nil || len(conf.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, withPort(s))
	}
	return servers
}

func withPort(server string) string {
	if strings.HasPrefix(server, "[") || strings.Count(server, ":") == 1 {
		return server
	}
	if strings.Contains(server, ":") {
		// bare IPv6
		return "[" + server + "]:53"
	}
	return server + ":53"
}

func (r *DNSResolver) Lookup(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for i := 0; i <= r.config.Retries; i++ {
		for _, server := range r.config.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			resp, _, err := r.client.ExchangeContext(ctx, m, server)
			if err != nil {
				lastErr = errors.Wrapf(err, "query %s", server)
				continue
			}
			switch resp.Rcode {
			case dns.RcodeSuccess:
				return answersOfType(resp.Answer, qtype), nil
			case dns.RcodeNameError:
				return nil, nil
			case dns.RcodeServerFailure:
				lastErr = ErrServFail
			case dns.RcodeRefused:
				lastErr = ErrRefused
			default:
				lastErr = errors.Errorf("dns: unexpected rcode %s", dns.RcodeToString[resp.Rcode])
			}
		}
	}
	if lastErr == nil {
		lastErr = ErrServFail
	}
	return nil, errors.Wrapf(lastErr, "lookup %s %s", dns.TypeToString[qtype], name)
}

// answersOfType drops the CNAME chain a recursive server includes for non-CNAME questions.
func answersOfType(answer []dns.RR, qtype uint16) []dns.RR {
	var rrs []dns.RR
	for _, rr := range answer {
		if rr.Header().Rrtype == qtype {
			rrs = append(rrs, rr)
		}
	}
	return rrs
}
