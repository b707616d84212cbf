package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"

	"github.com/fatih/color"
)

// printer renders outcomes for people. Colours are only used on terminals.
type printer struct {
	w      io.Writer
	pass   *color.Color
	fail   *color.Color
	path   *color.Color
	header *color.Color
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:      w,
		pass:   color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		path:   color.New(color.FgCyan),
		header: color.New(color.Bold),
	}

	if !isTerminal(w) {
		for _, c := range []*color.Color{p.pass, p.fail, p.path, p.header} {
			c.DisableColor()
		}
	}

	return p
}

func (p *printer) outcome(o engine.Outcome) {
	mark := p.pass.Sprint("✔")
	if !o.Passed {
		mark = p.fail.Sprint("✘")
	}

	fmt.Fprintf(p.w, "%s %s %s: %s\n", mark, p.path.Sprint(o.Path), o.Name, o.Message)
}

func (p *printer) report(name string, report engine.Report) {
	p.header.Fprintf(p.w, "%s\n", name) //nolint:errcheck

	for _, o := range report {
		p.outcome(o)
	}

	failures := len(report.Failures())

	switch failures {
	case 0:
		p.pass.Fprintf(p.w, "%d checks passed\n", len(report)) //nolint:errcheck
	default:
		p.fail.Fprintf(p.w, "%d of %d checks failed\n", failures, len(report)) //nolint:errcheck
	}
}

// jsonReport is the machine-readable examine output.
type jsonReport struct {
	Document string        `json:"document"`
	OK       bool          `json:"ok"`
	Outcomes engine.Report `json:"outcomes"`
}

func writeJSONReport(w io.Writer, name string, report engine.Report) error {
	if report == nil {
		report = engine.Report{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(jsonReport{Document: name, OK: report.OK(), Outcomes: report})
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
