package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/sim"
	"github.com/san-kum/wolfca/internal/viz"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

var runIDPattern = regexp.MustCompile(`run id: (\S+)`)

func TestRunThenInspect(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "rule90.gif")

	out, err := execute(t, "run", "90", "--data", dir, "--width", "9", "--generations", "4",
		"--init", "single", "--out", img)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	m := runIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no run id in output:\n%s", out)
	}
	runID := m[1]
	if !strings.HasPrefix(runID, "rule90_") {
		t.Errorf("run id = %q", runID)
	}
	if _, err := os.Stat(img); err != nil {
		t.Errorf("image not written: %v", err)
	}

	out, err = execute(t, "list", "--data", dir)
	if err != nil || !strings.Contains(out, runID) {
		t.Errorf("list: %v\n%s", err, out)
	}

	out, err = execute(t, "export-json", runID, "--data", dir)
	if err != nil {
		t.Fatalf("export-json: %v", err)
	}
	var data struct {
		History []string `json:"history"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	want := []string{"000010000", "000101000", "001000100", "010101010"}
	if diff := cmp.Diff(want, data.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	for _, args := range [][]string{
		{"show", runID},
		{"show", runID, "--braille"},
		{"plot", runID},
		{"analyze", runID},
		{"export-svg", runID},
	} {
		if out, err := execute(t, append(args, "--data", dir)...); err != nil {
			t.Errorf("%v: %v\n%s", args, err, out)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"rule out of range", []string{"run", "256", "--out", ""}, automaton.ErrOutOfRange},
		{"malformed rule", []string{"run", "abc", "--out", ""}, automaton.ErrInvalidArgument},
		{"narrow", []string{"run", "30", "--width", "1", "--out", ""}, nil},
		{"unknown preset", []string{"run", "--preset", "nope", "--out", ""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "--data", dir)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun_ConfigFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ca.yaml")
	yaml := "rule: \"30\"\nstates: 2\nneighbors: 1\nwidth: 7\ngenerations: 3\nseed: 5\ninit: {mode: single}\noutput: \"\"\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--config", cfgPath, "--generations", "5", "--data", dir)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "running rule 30") {
		t.Errorf("config rule not used:\n%s", out)
	}
	if !strings.Contains(out, "generations: 5 x 7 cells") {
		t.Errorf("flag did not override config:\n%s", out)
	}
	if strings.Contains(out, "image:") {
		t.Errorf("image written despite empty output:\n%s", out)
	}
}

func TestRuleCommand(t *testing.T) {
	out, err := execute(t, "rule", "110")
	if err != nil {
		t.Fatalf("rule: %v", err)
	}
	for _, line := range []string{`111\s+0`, `110\s+1`, `000\s+0`} {
		if !regexp.MustCompile(line).MatchString(out) {
			t.Errorf("missing %q in:\n%s", line, out)
		}
	}

	out, err = execute(t, "rule", "--outputs", "01011010")
	if err != nil {
		t.Fatalf("rule --outputs: %v", err)
	}
	if !strings.Contains(out, "rule 90") {
		t.Errorf("outputs 01011010 should be rule 90:\n%s", out)
	}

	if _, err := execute(t, "rule", "--outputs", "0102"); err == nil {
		t.Error("expected error for digit outside states")
	}
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		in      string
		want    []uint64
		wantErr bool
	}{
		{in: "30", want: []uint64{30}},
		{in: "0-3", want: []uint64{0, 1, 2, 3}},
		{in: "30, 90,100-101", want: []uint64{30, 90, 100, 101}},
		{in: "5-2", wantErr: true},
		{in: "x", wantErr: true},
		{in: ",", wantErr: true},
		{in: "0-4294967295", wantErr: true},
		{in: "0-65535,7", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseRules(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRules(%q) err = %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseRules(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSortSurvey(t *testing.T) {
	results := []sim.SurveyResult{
		{Rule: 2, Metrics: map[string]float64{"density": 0.1}},
		{Rule: 0, Metrics: map[string]float64{"density": 0.9}},
		{Rule: 1, Metrics: map[string]float64{"density": 0.5}},
	}
	if err := sortSurvey(results, "density"); err != nil {
		t.Fatal(err)
	}
	if results[0].Rule != 0 || results[2].Rule != 2 {
		t.Errorf("density order = %d,%d,%d", results[0].Rule, results[1].Rule, results[2].Rule)
	}
	if err := sortSurvey(results, "rule"); err != nil {
		t.Fatal(err)
	}
	if results[0].Rule != 0 || results[1].Rule != 1 {
		t.Errorf("rule order = %d,%d,%d", results[0].Rule, results[1].Rule, results[2].Rule)
	}
	if err := sortSurvey(results, "bogus"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSurveyCommand(t *testing.T) {
	out, err := execute(t, "survey", "--rules", "0,90,255", "--width", "9", "--generations", "4",
		"--init", "single", "--workers", "2")
	if err != nil {
		t.Fatalf("survey: %v\n%s", err, out)
	}
	if !strings.Contains(out, "surveying 3 rules") {
		t.Errorf("unexpected output:\n%s", out)
	}
	// Rule 255 turns every cell on.
	if !strings.Contains(out, "111111111") {
		t.Errorf("rule 255 final row missing:\n%s", out)
	}
}

func TestParseRules_Limit(t *testing.T) {
	rules, err := parseRules("0-65535")
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if len(rules) != maxSurveyRules {
		t.Errorf("got %d rules, want %d", len(rules), maxSurveyRules)
	}
}

func TestCheckRuleSpace(t *testing.T) {
	tests := []struct {
		rules     []uint64
		states    int
		neighbors int
		wantErr   bool
	}{
		{[]uint64{0, 255}, 2, 1, false},
		{[]uint64{30, 256}, 2, 1, true},
		{[]uint64{1<<32 - 1}, 2, 2, false},
		{[]uint64{1 << 32}, 2, 2, true},
		{[]uint64{1<<64 - 1}, 2, 3, false},
	}
	for _, tt := range tests {
		err := checkRuleSpace(tt.rules, tt.states, tt.neighbors)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkRuleSpace(%v, %d, %d) = %v", tt.rules, tt.states, tt.neighbors, err)
		}
		if err != nil && !errors.Is(err, automaton.ErrOutOfRange) {
			t.Errorf("err = %v, want ErrOutOfRange", err)
		}
	}
}

func TestSurveyCommand_OutOfRange(t *testing.T) {
	_, err := execute(t, "survey", "--rules", "250-260", "--width", "9", "--generations", "2")
	if !errors.Is(err, automaton.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestRun_LargeRule(t *testing.T) {
	dir := t.TempDir()
	rule := new(big.Int).Exp(big.NewInt(4), big.NewInt(1023), nil).String()

	out, err := execute(t, "run", rule, "--states", "4", "--neighbors", "2", "--width", "8",
		"--generations", "3", "--seed", "1", "--data", dir, "--out", filepath.Join(dir, "big.png"))
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	m := runIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no run id in output:\n%s", out)
	}

	out, err = execute(t, "export-json", m[1], "--data", dir)
	if err != nil {
		t.Fatalf("export-json: %v", err)
	}
	var data struct {
		Rule string `json:"rule"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if data.Rule != rule {
		t.Errorf("stored rule has %d digits, want %d", len(data.Rule), len(rule))
	}
}

func TestRun_ImageFailureRemovesRun(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "90", "--width", "9", "--generations", "3", "--data", dir,
		"--out", filepath.Join(dir, "rule90.jpg"))
	if err == nil {
		t.Fatal("expected error for unsupported image format")
	}

	out, err := execute(t, "list", "--data", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "no runs found") {
		t.Errorf("failed run was kept:\n%s", out)
	}
}

func TestLive_UnknownTheme(t *testing.T) {
	_, err := execute(t, "live", "90", "--theme", "bogus", "--width", "9")
	if !errors.Is(err, viz.ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}
