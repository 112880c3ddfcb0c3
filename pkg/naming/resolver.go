package naming

import (
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

var (
	ErrEmptyBaseDomain  = errors.New("base domain must not be empty")
	ErrEmptyEnvironment = errors.New("environment must not be empty")
	ErrInvalidDomain    = errors.New("invalid domain")
)

// Names are the environment-qualified names shared by every part of an email domain.
type Names struct {
	BaseDomain  string
	Environment string
	// ResourcePrefix is `<base domain>-<environment>`.
	ResourcePrefix string
	// SendDomain is the base domain in production, `<environment>.<base domain>` otherwise.
	SendDomain string
	// AllowedSender is the wildcard `*@<send domain>` matched against the From address.
	AllowedSender string
}

// Resolve derives the environment-qualified names using the default conventions.
func Resolve(baseDomain, environment string) (Names, error) {
	return Default().Resolve(baseDomain, environment)
}

func (c Conventions) Resolve(baseDomain, environment string) (Names, error) {
	if baseDomain == "" {
		return Names{}, ErrEmptyBaseDomain
	}
	if environment == "" {
		return Names{}, ErrEmptyEnvironment
	}
	sendDomain := baseDomain
	if !c.IsProduction(environment) {
		sendDomain = environment + "." + baseDomain
	}
	return Names{
		BaseDomain:     baseDomain,
		Environment:    environment,
		ResourcePrefix: baseDomain + "-" + environment,
		SendDomain:     sendDomain,
		AllowedSender:  "*@" + sendDomain,
	}, nil
}

// ValidateDomain rejects names that are not valid DNS domain names or that are a public
// suffix on their own (e.g. "co.uk"), since no sending identity can be verified for those.
func ValidateDomain(domain string) error {
	if domain == "" {
		return ErrEmptyBaseDomain
	}
	if strings.HasSuffix(domain, ".") || !strings.Contains(domain, ".") {
		return errors.Wrapf(ErrInvalidDomain, "%q is not a fully qualified name without trailing dot", domain)
	}
	if _, ok := dns.IsDomainName(domain); !ok {
		return errors.Wrapf(ErrInvalidDomain, "%q is not a valid domain name", domain)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return errors.Wrapf(ErrInvalidDomain, "%q: %v", domain, err)
	}
	return nil
}

// ValidateEnvironment checks that the environment can be used as a single DNS label.
func ValidateEnvironment(environment string) error {
	if environment == "" {
		return ErrEmptyEnvironment
	}
	if strings.Contains(environment, ".") {
		return errors.Wrapf(ErrInvalidDomain, "environment %q must be a single label", environment)
	}
	if _, ok := dns.IsDomainName(environment); !ok {
		return errors.Wrapf(ErrInvalidDomain, "environment %q is not a valid DNS label", environment)
	}
	return nil
}
