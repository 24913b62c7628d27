package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// YAML documents mirror the XML schema. Scalars are decoded as strings so
// they share the XML attribute checks.

type yamlWindow struct {
	Opens       *string `yaml:"opens"`
	Closes      *string `yaml:"closes"`
	Probability *string `yaml:"probability"`
}

type yamlCategory struct {
	Type        *string `yaml:"type"`
	Probability *string `yaml:"probability"`
}

type yamlTimeWindowSpec struct {
	Depot       *yamlWindow  `yaml:"depot"`
	TimeWindows []yamlWindow `yaml:"timeWindows"`
}

type yamlDemandSpec struct {
	Delta   *string        `yaml:"delta"`
	Demands []yamlCategory `yaml:"demands"`
}

type yamlServiceTimeSpec struct {
	ServiceTimes []yamlCategory `yaml:"serviceTimes"`
}

func unmarshalYAML(data []byte, v interface{}) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return common.Classify(common.ErrFatalConfiguration, err, "malformed yaml")
	}
	return nil
}

func parseTimeWindowsYAML(data []byte) (*TimeWindowSpec, error) {
	var raw yamlTimeWindowSpec
	if err := unmarshalYAML(data, &raw); err != nil {
		return nil, err
	}

	var p problems
	s := &TimeWindowSpec{}
	if raw.Depot == nil {
		p.addf("missing key depot")
	} else {
		s.Depot.Opens = p.float(raw.Depot.Opens, "depot.opens")
		s.Depot.Closes = p.float(raw.Depot.Closes, "depot.closes")
	}
	for i, w := range raw.TimeWindows {
		at := fmt.Sprintf("timeWindows[%d]", i)
		s.Customers = append(s.Customers, CustomerWindow{
			Opens:  p.float(w.Opens, at+".opens"),
			Closes: p.float(w.Closes, at+".closes"),
			Weight: p.weight(w.Probability, at+".probability"),
		})
	}
	p.checkCategories(len(s.Customers), "time-window")
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseDemandsYAML(data []byte) (*DemandSpec, error) {
	var raw yamlDemandSpec
	if err := unmarshalYAML(data, &raw); err != nil {
		return nil, err
	}

	var p problems
	s := &DemandSpec{
		Delta:      p.weight(raw.Delta, "delta"),
		Categories: categoriesFromYAML(&p, raw.Demands, "demands"),
	}
	p.checkDelta(s.Delta)
	p.checkCategories(len(s.Categories), "demand")
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseServiceTimesYAML(data []byte) (*ServiceTimeSpec, error) {
	var raw yamlServiceTimeSpec
	if err := unmarshalYAML(data, &raw); err != nil {
		return nil, err
	}

	var p problems
	s := &ServiceTimeSpec{Categories: categoriesFromYAML(&p, raw.ServiceTimes, "serviceTimes")}
	p.checkCategories(len(s.Categories), "service-time")
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func categoriesFromYAML(p *problems, items []yamlCategory, key string) []Category {
	var out []Category
	for i, c := range items {
		at := fmt.Sprintf("%s[%d]", key, i)
		out = append(out, Category{
			Value:  p.float(c.Type, at+".type"),
			Weight: p.weight(c.Probability, at+".probability"),
		})
	}
	return out
}
