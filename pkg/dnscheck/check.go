package dnscheck

import (
	"context"
	"strings"

	"github.com/alitto/pond"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Status string

const (
	StatusOK       Status = "OK"
	StatusMissing  Status = "MISSING"
	StatusMismatch Status = "MISMATCH"
	// StatusError means the lookup itself failed; the record's state is unknown.
	StatusError Status = "ERROR"
)

var ErrMismatch = errors.New("published records do not match")

type Result struct {
	Record records.Record
	// Name is the fully qualified name that was queried.
	Name     string
	Status   Status
	Expected []string
	Found    []string
	Err      error
}

// Workers bounds the number of lookups in flight.
const Workers = 4

// Check looks up every record and compares what is published with what is declared. It
// returns ErrMismatch if any record is not OK; the results are complete either way and in the
// order of recs.
func Check(ctx context.Context, resolver Resolver, zone string, recs []records.Record) ([]Result, error) {
	log := zap.L().Named("dnscheck")

	results := make([]Result, len(recs))
	pool := pond.New(Workers, len(recs))
	for i, rec := range recs {
		pool.Submit(func() {
			res := checkRecord(ctx, resolver, zone, rec)
			log.Debug("checked record",
				zap.String("key", rec.Key),
				zap.String("name", res.Name),
				zap.String("status", string(res.Status)),
				zap.Strings("found", res.Found),
				zap.Error(res.Err),
			)
			results[i] = res
		})
	}
	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	failed := 0
	for _, res := range results {
		if res.Status != StatusOK {
			failed++
		}
	}
	if failed > 0 {
		return results, errors.Wrapf(ErrMismatch, "%d of %d records", failed, len(recs))
	}
	return results, nil
}

func checkRecord(ctx context.Context, resolver Resolver, zone string, rec records.Record) Result {
	res := Result{Record: rec, Name: dns.Fqdn(records.ExpandName(rec.Name, zone))}

	want, err := rec.RRs(zone)
	if err != nil {
		res.Status, res.Err = StatusError, err
		return res
	}
	for _, rr := range want {
		res.Expected = append(res.Expected, rdata(rr))
	}

	got, err := resolver.Lookup(ctx, res.Name, rec.QType())
	if err != nil {
		res.Status, res.Err = StatusError, err
		return res
	}
	for _, rr := range got {
		res.Found = append(res.Found, rdata(rr))
	}

	switch {
	case len(res.Found) == 0:
		res.Status = StatusMissing
	case containsAll(res.Found, res.Expected, rec.Type != records.TXT):
		res.Status = StatusOK
	default:
		res.Status = StatusMismatch
	}
	return res
}

// rdata is the presentation form of the record data, without the header.
func rdata(rr dns.RR) string {
	if txt, ok := rr.(*dns.TXT); ok {
		// long TXT values are split into several strings on the wire
		return strings.Join(txt.Txt, "")
	}
	return strings.TrimPrefix(rr.String(), rr.Header().String())
}

// containsAll reports whether every expected value was found. Other values at the same name
// (e.g. an unrelated TXT record) are allowed.
func containsAll(found, expected []string, foldCase bool) bool {
	for _, e := range expected {
		ok := false
		for _, f := range found {
			if f == e || (foldCase && strings.EqualFold(f, e)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
