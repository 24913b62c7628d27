package spec

import (
	"math"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// problems collects every structural issue of one file so a single run
// reports them all.
type problems struct {
	err *multierror.Error
}

func (p *problems) addf(format string, args ...interface{}) {
	p.err = multierror.Append(p.err, errors.Wrapf(common.ErrFatalConfiguration, format, args...))
}

func (p *problems) add(err error) {
	p.err = multierror.Append(p.err, err)
}

func (p *problems) errorOrNil() error {
	return p.err.ErrorOrNil()
}

// float parses a required numeric attribute.
func (p *problems) float(v *string, what string) float64 {
	if v == nil {
		p.addf("missing attribute %s", what)
		return 0
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		p.addf("attribute %s: %q is not a number", what, *v)
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		p.addf("attribute %s: %q is not a finite number", what, *v)
		return 0
	}
	return f
}

// weight parses a required non-negative integer attribute.
func (p *problems) weight(v *string, what string) uint {
	if v == nil {
		p.addf("missing attribute %s", what)
		return 0
	}
	w, err := strconv.ParseUint(*v, 10, 0)
	if err != nil {
		p.addf("attribute %s: %q is not a non-negative integer", what, *v)
		return 0
	}
	return uint(w)
}

func (p *problems) checkCategories(n int, what string) {
	if n == 0 {
		p.addf("no %s categories", what)
	}
}

func (p *problems) checkDelta(delta uint) {
	if delta > MaxDelta {
		p.add(errors.Wrapf(common.ErrInvalidSpecification, "delta %d exceeds %d", delta, MaxDelta))
	}
}
