package spec

import (
	"encoding/xml"
	"fmt"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// Attribute fields are pointers so an absent attribute can be told apart
// from a zero value.

type xmlWindow struct {
	Opens       *string `xml:"opens,attr"`
	Closes      *string `xml:"closes,attr"`
	Probability *string `xml:"probability,attr"`
}

type xmlTimeWindowSpec struct {
	XMLName xml.Name   `xml:"time-windows-specification"`
	Depot   *xmlWindow `xml:"depot"`
	Windows *struct {
		Items []xmlWindow `xml:"time-window"`
	} `xml:"time-windows"`
}

type xmlCategory struct {
	Type        *string `xml:"type,attr"`
	Probability *string `xml:"probability,attr"`
}

type xmlDemandSpec struct {
	XMLName xml.Name `xml:"demands-specifications"`
	Delta   *struct {
		Value *string `xml:"value,attr"`
	} `xml:"delta"`
	Demands *struct {
		Items []xmlCategory `xml:"demand"`
	} `xml:"demands"`
}

type xmlServiceTimeSpec struct {
	XMLName      xml.Name `xml:"service-times-specifications"`
	ServiceTimes *struct {
		Items []xmlCategory `xml:"service-time"`
	} `xml:"service-times"`
}

func unmarshalXML(data []byte, v interface{}, root string) error {
	if err := xml.Unmarshal(data, v); err != nil {
		return common.Classify(common.ErrFatalConfiguration, err, "missing root element <%s>", root)
	}
	return nil
}

func parseTimeWindowsXML(data []byte) (*TimeWindowSpec, error) {
	var raw xmlTimeWindowSpec
	if err := unmarshalXML(data, &raw, "time-windows-specification"); err != nil {
		return nil, err
	}

	var p problems
	s := &TimeWindowSpec{}
	if raw.Depot == nil {
		p.addf("missing element <depot>")
	} else {
		s.Depot.Opens = p.float(raw.Depot.Opens, "depot/opens")
		s.Depot.Closes = p.float(raw.Depot.Closes, "depot/closes")
	}
	if raw.Windows == nil {
		p.addf("missing element <time-windows>")
	} else {
		for i, w := range raw.Windows.Items {
			at := fmt.Sprintf("time-window[%d]", i)
			s.Customers = append(s.Customers, CustomerWindow{
				Opens:  p.float(w.Opens, at+"/opens"),
				Closes: p.float(w.Closes, at+"/closes"),
				Weight: p.weight(w.Probability, at+"/probability"),
			})
		}
		p.checkCategories(len(s.Customers), "time-window")
	}
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseDemandsXML(data []byte) (*DemandSpec, error) {
	var raw xmlDemandSpec
	if err := unmarshalXML(data, &raw, "demands-specifications"); err != nil {
		return nil, err
	}

	var p problems
	s := &DemandSpec{}
	if raw.Delta == nil {
		p.addf("missing element <delta>")
	} else {
		s.Delta = p.weight(raw.Delta.Value, "delta/value")
		p.checkDelta(s.Delta)
	}
	if raw.Demands == nil {
		p.addf("missing element <demands>")
	} else {
		s.Categories = categoriesFromXML(&p, raw.Demands.Items, "demand")
		p.checkCategories(len(s.Categories), "demand")
	}
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseServiceTimesXML(data []byte) (*ServiceTimeSpec, error) {
	var raw xmlServiceTimeSpec
	if err := unmarshalXML(data, &raw, "service-times-specifications"); err != nil {
		return nil, err
	}

	var p problems
	s := &ServiceTimeSpec{}
	if raw.ServiceTimes == nil {
		p.addf("missing element <service-times>")
	} else {
		s.Categories = categoriesFromXML(&p, raw.ServiceTimes.Items, "service-time")
		p.checkCategories(len(s.Categories), "service-time")
	}
	if err := p.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func categoriesFromXML(p *problems, items []xmlCategory, element string) []Category {
	var out []Category
	for i, c := range items {
		at := fmt.Sprintf("%s[%d]", element, i)
		out = append(out, Category{
			Value:  p.float(c.Type, at+"/type"),
			Weight: p.weight(c.Probability, at+"/probability"),
		})
	}
	return out
}
