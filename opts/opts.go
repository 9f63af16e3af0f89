// Package opts parses the constraint mini-language used by the schema factories.
//
// An option string is a comma separated list of clauses:
//
//	uniq | unique        uniqueness flag
//	1 < len <= 10        range bound to a name, either side optional
//	3*n | n*3            multiple-of bound to a name
//
// Clauses that do not parse are dropped, so unrelated text may share the string.
package opts

import (
	"regexp"
	"strconv"
	"strings"
)

// Opt is one parsed clause: UniqOpt, RangeOpt or MultOpt.
type Opt interface {
	isOpt()
}

type UniqOpt struct{}

// RangeOpt bounds Binding. Min and Max are raw, possibly fractional numbers.
type RangeOpt struct {
	Binding      string
	Min          *float64
	ExclusiveMin bool
	Max          *float64
	ExclusiveMax bool
}

type MultOpt struct {
	Binding    string
	Multiplier float64
}

func (UniqOpt) isOpt()  {}
func (RangeOpt) isOpt() {}
func (MultOpt) isOpt()  {}

var (
	//                         | lhs      |   | lop   |      | bind |      | rop   |   | rhs      |
	rangeRegex = regexp.MustCompile(`(?i)^(?:([\d.]+)\s*([<>]=?)\s*)?([a-z]+)(?:\s*([<>]=?)\s*([\d.]+))?$`)
	//                         | lhs      |           | bind |            | rhs      |
	multRegex = regexp.MustCompile(`(?i)^(?:([\d.]+)\s*\*\s*)?([a-z]+)(?:\s*\*\s*([\d.]+))?$`)
	numPrefix = regexp.MustCompile(`^\d*(?:\.\d*)?`)
)

// Parse splits spec on commas and parses every clause, keeping input order.
func Parse(spec string) []Opt {
	res := make([]Opt, 0)
	if strings.TrimSpace(spec) == "" {
		return res
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if o, ok := parseUniq(part); ok {
			res = append(res, o)
		} else if o, ok := parseRange(part); ok {
			res = append(res, o)
		} else if o, ok := parseMult(part); ok {
			res = append(res, o)
		}
	}
	return res
}

func parseUniq(s string) (UniqOpt, bool) {
	return UniqOpt{}, s == "uniq" || s == "unique"
}

func parseRange(s string) (RangeOpt, bool) {
	m := rangeRegex.FindStringSubmatch(s)
	if m == nil {
		return RangeOpt{}, false
	}
	lhs, lop, binding, rop, rhs := m[1], m[2], m[3], m[4], m[5]
	if lop == "" && rop == "" {
		return RangeOpt{}, false
	}
	if lop != "" && rop != "" && lop[0] != rop[0] {
		return RangeOpt{}, false
	}

	r := RangeOpt{Binding: binding}
	if lop != "" {
		v, ok := parseNumber(lhs)
		if !ok {
			return RangeOpt{}, false
		}
		// 1 < x: the literal sits below the binding
		r.setBound(lop[0] == '<', len(lop) == 1, v)
	}
	if rop != "" {
		v, ok := parseNumber(rhs)
		if !ok {
			return RangeOpt{}, false
		}
		r.setBound(rop[0] == '>', len(rop) == 1, v)
	}
	return r, true
}

func (r *RangeOpt) setBound(isMin, exclusive bool, v float64) {
	if isMin {
		r.Min, r.ExclusiveMin = &v, exclusive
	} else {
		r.Max, r.ExclusiveMax = &v, exclusive
	}
}

func parseMult(s string) (MultOpt, bool) {
	m := multRegex.FindStringSubmatch(s)
	if m == nil {
		return MultOpt{}, false
	}
	lhs, binding, rhs := m[1], m[2], m[3]
	if (lhs == "") == (rhs == "") {
		return MultOpt{}, false
	}
	v, ok := parseNumber(lhs + rhs)
	if !ok {
		return MultOpt{}, false
	}
	return MultOpt{Binding: binding, Multiplier: v}, true
}

// parseNumber reads the longest decimal prefix of s, so "1.2.3" is 1.2.
func parseNumber(s string) (float64, bool) {
	p := numPrefix.FindString(s)
	if p == "" || p == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(p, 64)
	return v, err == nil
}

// FindRange returns the first range bound to the first of bindings that has one.
func FindRange(os []Opt, bindings ...string) (RangeOpt, bool) {
	for _, b := range bindings {
		for _, o := range os {
			if r, ok := o.(RangeOpt); ok && r.Binding == b {
				return r, true
			}
		}
	}
	return RangeOpt{}, false
}

func FindMult(os []Opt, binding string) (MultOpt, bool) {
	for _, o := range os {
		if m, ok := o.(MultOpt); ok && m.Binding == binding {
			return m, true
		}
	}
	return MultOpt{}, false
}

func HasUniq(os []Opt) bool {
	for _, o := range os {
		if _, ok := o.(UniqOpt); ok {
			return true
		}
	}
	return false
}
