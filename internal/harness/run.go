package harness

import "testing"

// RunCases runs fn as one subtest per parameter, named after the
// parameter. Exempt parameters are skipped.
func RunCases(t *testing.T, params []Parameter, fn func(t *testing.T, p Parameter)) {
	t.Helper()
	for _, p := range params {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			if p.Exempt {
				t.Skipf("exempt scenario %q", p.Name)
			}
			fn(t, p)
		})
	}
}
