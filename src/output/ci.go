package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", time.Now().Unix(), id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
}

// Outcome is one reported unit of work, e.g. a target's image build.
type Outcome struct {
	Name     string
	Status   string // "success", "failed", "skipped"
	Detail   string
	Duration time.Duration
	Err      error
}

// JUnit XML types for CI test reporting.

type JUnitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *struct{}     `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes outcomes as a JUnit test suite to path.
func WriteJUnit(path, suite string, outcomes []Outcome, elapsed time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	s := JUnitTestSuite{
		Name: suite,
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	for _, o := range outcomes {
		tc := JUnitTestCase{
			Name:      o.Name,
			Classname: suite,
			Time:      fmt.Sprintf("%.3f", o.Duration.Seconds()),
		}
		switch o.Status {
		case "failed":
			msg := o.Detail
			if o.Err != nil {
				msg = o.Err.Error()
			}
			tc.Failure = &JUnitFailure{Message: msg, Body: msg}
			s.Failures++
		case "skipped":
			tc.Skipped = &struct{}{}
			s.Skipped++
		}
		s.Cases = append(s.Cases, tc)
		s.Tests++
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err = io.WriteString(f, "\n")
	return err
}
