package lang

import (
	"github.com/smacker/go-tree-sitter/csharp"
)

func init() {
	Languages["csharp"] = &Language{
		Name:     "csharp",
		lang:     csharp.GetLanguage(),
		Prelude:  "static class NumgenCheck\n{\n",
		Postlude: "\n}\n",
	}
}
