package records

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

type Type string

const (
	TXT   Type = "TXT"
	CNAME Type = "CNAME"
	MX    Type = "MX"
)

// Record is a DNS record as declared against the hosted zone. Name may be relative to the zone
// (see [ExpandName]).
type Record struct {
	// Key identifies the record within one email domain, e.g. "verification" or "dkim-1".
	Key    string
	Name   string
	Type   Type
	TTL    int
	Values []string
}

func (r Record) String() string {
	return fmt.Sprintf("%s %d %s %s", r.Name, r.TTL, r.Type, strings.Join(r.Values, ","))
}

// ExpandName qualifies a record name with the zone apex the same way the Route53 provider does:
// names not already ending in the zone name get the zone appended.
func ExpandName(name, zone string) string {
	zone = strings.ToLower(strings.TrimSuffix(zone, "."))
	rn := strings.ToLower(strings.TrimSuffix(name, "."))
	switch {
	case rn == "":
		return zone
	case zone == "" || strings.HasSuffix(rn, zone):
		return rn
	default:
		return rn + "." + zone
	}
}

// RRs converts the record into its resource records, with the name expanded against zone.
func (r Record) RRs(zone string) ([]dns.RR, error) {
	name := ExpandName(r.Name, zone)
	if _, ok := dns.IsDomainName(name); !ok {
		return nil, errors.Errorf("record %s: invalid name %q", r.Key, name)
	}
	hdr := func(rrtype uint16) dns.RR_Header {
		return dns.RR_Header{Name: dns.Fqdn(name), Rrtype: rrtype, Class: dns.ClassINET, Ttl: uint32(r.TTL)}
	}
	rrs := make([]dns.RR, 0, len(r.Values))
	for _, v := range r.Values {
		switch r.Type {
		case TXT:
			rrs = append(rrs, &dns.TXT{Hdr: hdr(dns.TypeTXT), Txt: []string{v}})

		case CNAME:
			rrs = append(rrs, &dns.CNAME{Hdr: hdr(dns.TypeCNAME), Target: dns.Fqdn(v)})

		case MX:
			pref, host, ok := strings.Cut(v, " ")
			if !ok {
				return nil, errors.Errorf("record %s: MX value %q must be '<preference> <host>'", r.Key, v)
			}
			p, err := strconv.ParseUint(pref, 10, 16)
			if err != nil {
				return nil, errors.Wrapf(err, "record %s: MX preference", r.Key)
			}
			rrs = append(rrs, &dns.MX{Hdr: hdr(dns.TypeMX), Preference: uint16(p), Mx: dns.Fqdn(host)})

		default:
			return nil, errors.Errorf("record %s: unsupported type %s", r.Key, r.Type)
		}
	}
	return rrs, nil
}

// QType is the DNS query type used to look the record up.
func (r Record) QType() uint16 {
	switch r.Type {
	case TXT:
		return dns.TypeTXT
	case CNAME:
		return dns.TypeCNAME
	case MX:
		return dns.TypeMX
	}
	return dns.TypeNone
}

// WriteZone writes the records as a zone-file fragment.
func WriteZone(w io.Writer, zone string, recs []Record) error {
	if zone != "" {
		if _, err := fmt.Fprintf(w, "$ORIGIN %s\n", dns.Fqdn(zone)); err != nil {
			return err
		}
	}
	for _, r := range recs {
		rrs, err := r.RRs(zone)
		if err != nil {
			return err
		}
		for _, rr := range rrs {
			if _, err := fmt.Fprintln(w, rr.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
