package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phobologic/numgen/internal/model"
)

const defaultGoPackage = "numerics"

func init() {
	Targets["go"] = &Target{
		Name:      "go",
		Extension: ".go",
		Header:    goHeader,
		Open:      func(n *model.Numeric) string { return "// " + n.Name + " numeric reply." },
		Prefix:    "// ",
		Declare:   goDeclare,
	}
}

func goHeader(opts Options) string {
	pkg := opts.Package
	if pkg == "" {
		pkg = defaultGoPackage
	}
	return fmt.Sprintf("// Code generated by numgen. DO NOT EDIT.\n\npackage %s", pkg)
}

func goDeclare(n *model.Numeric) string {
	var b strings.Builder
	b.WriteString("var ")
	b.WriteString(n.Name)
	b.WriteString(" = NewNumeric(")
	b.WriteString(strconv.Quote(n.Name))
	for _, v := range n.Values {
		b.WriteString(", ")
		b.WriteString(goNumber(v))
	}
	b.WriteString(")")
	return b.String()
}

// goNumber strips leading zeros from decimal values, which Go would
// otherwise read as octal. Anything else is emitted unchanged.
func goNumber(v string) string {
	if v == "" {
		return v
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return v
		}
	}
	trimmed := strings.TrimLeft(v, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
