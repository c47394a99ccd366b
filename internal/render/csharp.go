package render

import (
	"strings"

	"github.com/phobologic/numgen/internal/model"
)

func init() {
	Targets["csharp"] = &Target{
		Name:      "csharp",
		Extension: ".cs",
		Open:      func(*model.Numeric) string { return "/// <summary>" },
		Prefix:    "/// ",
		Close:     "/// </summary>",
		Declare:   csharpDeclare,
	}
}

var csharpEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// csharpDeclare emits a static field holding a Numeric built from the name
// and every value, e.g.
//
//	public static readonly Numeric RPL_WELCOME = new Numeric("RPL_WELCOME", 001);
func csharpDeclare(n *model.Numeric) string {
	var b strings.Builder
	b.WriteString("public static readonly Numeric ")
	b.WriteString(n.Name)
	b.WriteString(` = new Numeric("`)
	b.WriteString(csharpEscaper.Replace(n.Name))
	b.WriteString(`"`)
	for _, v := range n.Values {
		b.WriteString(", ")
		b.WriteString(v)
	}
	b.WriteString(");")
	return b.String()
}
