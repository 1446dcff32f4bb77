package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
)

// SuiteService runs several validators back to back.
type SuiteService struct {
	validators []Validator
	byName     map[string]Validator
	logger     hclog.Logger
}

func NewSuiteService(logger hclog.Logger, validators ...Validator) *SuiteService {
	byName := make(map[string]Validator, len(validators))
	for _, v := range validators {
		byName[v.Name()] = v
	}
	return &SuiteService{validators: validators, byName: byName, logger: named(logger, "suite")}
}

// Names lists the registered validators in run order.
func (s *SuiteService) Names() []string {
	names := make([]string, 0, len(s.validators))
	for _, v := range s.validators {
		names = append(names, v.Name())
	}
	return names
}

// Get returns the named validator.
func (s *SuiteService) Get(name string) (Validator, error) {
	v, ok := s.byName[name]
	if !ok {
		known := s.Names()
		sort.Strings(known)
		return nil, fmt.Errorf("unknown validator %q (valid: %v)", name, known)
	}
	return v, nil
}

// Run executes the named validators, or all of them when names is empty.
// A validator that cannot run does not stop the others; its error is
// joined into the returned error.
func (s *SuiteService) Run(ctx context.Context, projectPath string, names ...string) ([]*domain.Report, error) {
	selected := s.validators
	if len(names) > 0 {
		selected = make([]Validator, 0, len(names))
		for _, n := range names {
			v, err := s.Get(n)
			if err != nil {
				return nil, err
			}
			selected = append(selected, v)
		}
	}

	var (
		reports []*domain.Report
		errs    []error
	)
	for _, v := range selected {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		s.logger.Debug("running validator", "name", v.Name())
		r, err := v.Validate(ctx, projectPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name(), err))
			continue
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}
