// Package rules loads rule files and reports the substrings of their
// expressions.
//
// A rule file is YAML:
//
//	rules:
//	  - id: aws-access-key
//	    regex: (AKIA|ASIA)[0-9A-Z]{16}
//	    description: AWS access key ID
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is a named expression.
type Rule struct {
	ID          string `yaml:"id"`
	Regex       string `yaml:"regex"`
	Description string `yaml:"description,omitempty"`
}

type file struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a rule file. Every rule needs an id, and ids must be unique.
// Unknown fields are an error.
func Load(r io.Reader) ([]Rule, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("rules: %w", err)
	}
	seen := make(map[string]bool, len(f.Rules))
	for i, rule := range f.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("rules: rule %d has no id", i+1)
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("rules: duplicate id %q", rule.ID)
		}
		seen[rule.ID] = true
	}
	return f.Rules, nil
}

// LoadFile is like Load, reading from the named file.
func LoadFile(fname string) ([]Rule, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rules, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return rules, nil
}

// Result is the outcome for one rule.
type Result struct {
	ID           string     `json:"id,omitempty" yaml:"id,omitempty"`
	Expr         string     `json:"expr" yaml:"expr"`
	Substrings   []string   `json:"substrings" yaml:"substrings"`
	Alternatives [][]string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Tree         string     `json:"tree,omitempty" yaml:"tree,omitempty"`
	Error        string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report holds results in rule order.
type Report []Result

// Failed returns the number of results with an error.
func (r Report) Failed() int {
	n := 0
	for _, res := range r {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// Extractor computes the result for one expression. Only the Substrings,
// Alternatives and Tree fields of the returned Result are used.
type Extractor func(expr string) (Result, error)

// Analyze runs extract on every rule. An error is recorded in the result of
// its rule and does not stop the others.
func Analyze(rules []Rule, extract Extractor) Report {
	report := make(Report, len(rules))
	for i, rule := range rules {
		res, err := extract(rule.Regex)
		if err != nil {
			res = Result{Error: err.Error()}
		}
		res.ID, res.Expr = rule.ID, rule.Regex
		report[i] = res
	}
	return report
}
