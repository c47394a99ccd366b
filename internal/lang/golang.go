package lang

import (
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Languages["go"] = &Language{
		Name: "go",
		lang: golang.GetLanguage(),
	}
}
