package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/grok-skills/grokkit/internal/checker"
)

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Time     string       `xml:"time,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Time     string      `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit renders s as JUnit XML with one testsuite per rule category
// and one testcase per outcome.
func WriteJUnit(w io.Writer, s *checker.Summary) error {
	doc := junitSuites{
		Name:     "grokkit " + s.RunID,
		Tests:    s.Total,
		Failures: s.Failed,
		Time:     seconds(s.Duration.Seconds()),
	}

	for _, c := range checker.Categories {
		suite := junitSuite{Name: string(c)}
		var elapsed float64
		for _, o := range s.Outcomes {
			if o.Rule.Category != c {
				continue
			}
			tc := junitCase{
				Name:      o.Rule.ID + " " + o.Rule.Target,
				Classname: string(c) + "." + string(o.Rule.Kind),
				Time:      seconds(o.Duration.Seconds()),
			}
			if !o.Passed {
				tc.Failure = &junitFailure{
					Message: o.Reason,
					Type:    string(o.Rule.Kind),
					Body:    strings.Join(o.Details, "\n"),
				}
				suite.Failures++
			}
			elapsed += o.Duration.Seconds()
			suite.Cases = append(suite.Cases, tc)
		}
		if len(suite.Cases) == 0 {
			continue
		}
		suite.Tests = len(suite.Cases)
		suite.Time = seconds(elapsed)
		doc.Suites = append(doc.Suites, suite)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing JUnit report: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JUnit report: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing JUnit report: %w", err)
	}
	return nil
}

// WriteJUnitFile writes the JUnit report to path.
func WriteJUnitFile(path string, s *checker.Summary) error {
	return writeFile(path, func(w io.Writer) error { return WriteJUnit(w, s) })
}

func seconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
