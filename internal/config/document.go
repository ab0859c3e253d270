package config

import (
	"strconv"
	"strings"
)

// Document is the structured form shared by the YAML and CUE formats:
//
//	debug_index: 0
//	commonvar: "fast,slow"
//	cases:
//	  - desc: "Divide"
//	    var: "arg1=0,arg1=5|arg2=0,arg2=5"
//	    rule: "ERROR:arg2=0~OK:not arg2=0"
//	    case_id: ["divide", "smoke"]
//
// Var and Rule are pointers so an absent field stays absent after
// flattening and is reported as a missing key.
type Document struct {
	DebugIndex   int       `yaml:"debug_index"`
	CommonVar    *string   `yaml:"commonvar"`
	CommonExempt *string   `yaml:"commonexempt"`
	Cases        []CaseDoc `yaml:"cases"`
}

// CaseDoc is one case of a Document.
type CaseDoc struct {
	Desc      string   `yaml:"desc"`
	Var       *string  `yaml:"var"`
	Rule      *string  `yaml:"rule"`
	Pair      string   `yaml:"pair,omitempty"`
	CaseID    []string `yaml:"case_id,omitempty"`
	Exempt    string   `yaml:"exempt,omitempty"`
	Converter string   `yaml:"converter,omitempty"`
}

// Flatten converts a Document into the flat key space of a properties file.
// Case i of the document is written under index i; debug_index is carried
// as its own key.
func (d *Document) Flatten() MapSource {
	src := MapSource{}
	if d.DebugIndex != 0 {
		src[KeyDebugIndex.String()] = strconv.Itoa(d.DebugIndex)
	}
	if d.CommonVar != nil {
		src[KeyCommonVar.String()] = *d.CommonVar
	}
	if d.CommonExempt != nil {
		src[KeyCommonExempt.String()] = *d.CommonExempt
	}

	for i, c := range d.Cases {
		src[KeyCaseDesc.Indexed(i)] = c.Desc
		if c.Var != nil {
			src[KeyVar.Indexed(i)] = *c.Var
		}
		if c.Rule != nil {
			src[KeyRule.Indexed(i)] = *c.Rule
		}
		if c.Pair != "" {
			src[KeyPair.Indexed(i)] = c.Pair
		}
		if len(c.CaseID) > 0 {
			src[KeyCaseID.Indexed(i)] = strings.Join(c.CaseID, ",")
		}
		if c.Exempt != "" {
			src[KeyExempt.Indexed(i)] = c.Exempt
		}
		if c.Converter != "" {
			src[KeyConverter.Indexed(i)] = c.Converter
		}
	}

	return src
}
