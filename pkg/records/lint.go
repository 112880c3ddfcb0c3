package records

import (
	"strings"

	"github.com/emersion/go-msgauth/dmarc"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Lint checks that each record renders to valid resource records and that the reporting policy
// parses as a DMARC record with at least one mailto aggregate destination.
func Lint(zone string, recs []Record) error {
	var errs error
	for _, r := range recs {
		if _, err := r.RRs(zone); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if r.Key == KeyReporting {
			errs = multierr.Append(errs, lintReporting(r))
		}
	}
	return errs
}

func lintReporting(r Record) error {
	if len(r.Values) != 1 {
		return errors.Errorf("record %s: expected a single value, got %d", r.Key, len(r.Values))
	}
	rec, err := dmarc.Parse(r.Values[0])
	if err != nil {
		return errors.Wrapf(err, "record %s", r.Key)
	}
	for _, uri := range rec.ReportURIAggregate {
		if strings.HasPrefix(uri, "mailto:") {
			return nil
		}
	}
	return errors.Errorf("record %s: no mailto aggregate report destination", r.Key)
}
