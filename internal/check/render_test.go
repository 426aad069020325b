package check

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender_FailuresAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), RenderOptions{})

	out := buf.String()
	if !strings.Contains(out, "FAIL") {
		t.Fatalf("failed entry missing from output:\n%s", out)
	}
	if !strings.Contains(out, "no resolver") {
		t.Fatalf("failure diagnosis missing:\n%s", out)
	}
	if !strings.Contains(out, "fix: edit resolv.conf") {
		t.Fatalf("remediation missing:\n%s", out)
	}
	if strings.Contains(out, "daemon up") {
		t.Fatalf("passed step shown without ShowPassed:\n%s", out)
	}
}

func TestRender_ShowPassed(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), RenderOptions{ShowPassed: true})

	if !strings.Contains(buf.String(), "daemon up") {
		t.Fatalf("passed step missing with ShowPassed:\n%s", buf.String())
	}
}

func TestRender_EntryLabels(t *testing.T) {
	report := &Report{Entries: []Entry{
		{Name: "ssh", Outcomes: []Outcome{Pass("fine").withStep("probe")}},
		{Name: "dns", Outcomes: []Outcome{Fail("down", "").withStep("probe")}},
		{Name: "ftp", Outcomes: []Outcome{Skip("nothing to do").withStep("ftp")}},
	}}

	var buf bytes.Buffer
	Render(&buf, report, RenderOptions{})

	out := buf.String()
	for _, want := range []string{"pass", "FAIL", "skip"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q entry label:\n%s", want, out)
		}
	}
}

func TestRender_ShowSkipped(t *testing.T) {
	report := &Report{Entries: []Entry{
		{Name: "ftp", Outcomes: []Outcome{Skip("not supported on this platform").withStep("ftp")}},
	}}

	var buf bytes.Buffer
	Render(&buf, report, RenderOptions{})
	if strings.Contains(buf.String(), "not supported") {
		t.Fatalf("skip reason shown without ShowSkipped:\n%s", buf.String())
	}

	buf.Reset()
	Render(&buf, report, RenderOptions{ShowSkipped: true})
	if !strings.Contains(buf.String(), "not supported on this platform") {
		t.Fatalf("skip reason missing with ShowSkipped:\n%s", buf.String())
	}
}
