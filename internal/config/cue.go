package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseCUE compiles a CUE document with the Document shape and flattens it.
// case_id may be a single string or a list of strings.
func ParseCUE(filename string, data []byte) (MapSource, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}

	doc := Document{}

	if dbg := v.LookupPath(cue.ParsePath(KeyDebugIndex.String())); dbg.Exists() {
		n, err := dbg.Int64()
		if err != nil {
			return nil, fmt.Errorf("debug_index: %w", err)
		}
		doc.DebugIndex = int(n)
	}

	var err error
	if doc.CommonVar, err = optionalString(v, KeyCommonVar.String()); err != nil {
		return nil, err
	}
	if doc.CommonExempt, err = optionalString(v, KeyCommonExempt.String()); err != nil {
		return nil, err
	}

	casesVal := v.LookupPath(cue.ParsePath("cases"))
	if casesVal.Exists() {
		iter, err := casesVal.List()
		if err != nil {
			return nil, fmt.Errorf("cases: %w", err)
		}
		for i := 0; iter.Next(); i++ {
			c, err := parseCUECase(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("cases[%d]: %w", i, err)
			}
			doc.Cases = append(doc.Cases, c)
		}
	}

	return doc.Flatten(), nil
}

func parseCUECase(v cue.Value) (CaseDoc, error) {
	var c CaseDoc

	desc, err := optionalString(v, "desc")
	if err != nil {
		return c, err
	}
	if desc == nil {
		return c, fmt.Errorf("desc is required")
	}
	c.Desc = *desc

	if c.Var, err = optionalString(v, "var"); err != nil {
		return c, err
	}
	if c.Rule, err = optionalString(v, "rule"); err != nil {
		return c, err
	}

	for field, dst := range map[string]*string{
		"pair":      &c.Pair,
		"exempt":    &c.Exempt,
		"converter": &c.Converter,
	} {
		s, err := optionalString(v, field)
		if err != nil {
			return c, err
		}
		if s != nil {
			*dst = *s
		}
	}

	idVal := v.LookupPath(cue.ParsePath("case_id"))
	if idVal.Exists() {
		if s, err := idVal.String(); err == nil {
			c.CaseID = []string{s}
		} else {
			iter, err := idVal.List()
			if err != nil {
				return c, fmt.Errorf("case_id: must be a string or list of strings: %w", err)
			}
			for iter.Next() {
				s, err := iter.Value().String()
				if err != nil {
					return c, fmt.Errorf("case_id: %w", err)
				}
				c.CaseID = append(c.CaseID, s)
			}
		}
	}

	return c, nil
}

// optionalString returns nil when path does not exist.
func optionalString(v cue.Value, path string) (*string, error) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return nil, nil
	}
	s, err := fv.String()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}
