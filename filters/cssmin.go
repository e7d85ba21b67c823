package filters

// `cssmin` minifies CSS semantically.

import (
	"github.com/dchest/cssmin"
)

func init() {
	Register("cssmin", func() Filter {
		return CSSMin(0)
	})
}

type CSSMin int

func (f CSSMin) Name() string { return "cssmin" }

func (f CSSMin) Apply(s string) (string, error) {
	return string(cssmin.Minify([]byte(s))), nil
}
