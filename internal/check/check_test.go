package check

import (
	"errors"
	"strings"
	"testing"

	"github.com/phobologic/numgen/internal/lang"
	"github.com/phobologic/numgen/internal/model"
	"github.com/phobologic/numgen/internal/render"
)

func renderFor(t *testing.T, target string, ns []*model.Numeric) []byte {
	t.Helper()
	tgt, err := render.Lookup(target)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", target, err)
	}
	return []byte(render.Render(ns, tgt, render.Options{}))
}

func sampleNumerics() []*model.Numeric {
	return []*model.Numeric{
		{
			Name:    "RPL_WELCOME",
			Values:  []string{"001"},
			Format:  "<client> :Welcome to the Internet Relay Network <nick>!<user>@<host>\n",
			Comment: "The first message sent after client registration.\n",
		},
		{
			Name:    "RPL_BOUNCE",
			Values:  []string{"005", "010"},
			SeeAlso: "RPL_ISUPPORT (005)\n",
		},
	}
}

func TestVerifyValid(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"csharp", "go"} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()
			src := renderFor(t, target, sampleNumerics())
			if err := Verify(target, src, []string{"RPL_WELCOME", "RPL_BOUNCE"}); err != nil {
				t.Fatalf("Verify: %v\n%s", err, src)
			}
		})
	}
}

func TestVerifyBadName(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"csharp", "go"} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()
			ns := sampleNumerics()
			ns = append(ns, &model.Numeric{Name: "RPL-BROKEN", Values: []string{"999"}})
			src := renderFor(t, target, ns)

			err := Verify(target, src, []string{"RPL_WELCOME", "RPL_BOUNCE", "RPL-BROKEN"})
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
			if se.Target != target {
				t.Errorf("Target = %q", se.Target)
			}

			lines := strings.Split(string(src), "\n")
			if se.Line < 1 || se.Line > len(lines) {
				t.Fatalf("Line %d out of range", se.Line)
			}
			if !strings.Contains(lines[se.Line-1], "RPL-BROKEN") {
				t.Errorf("error line %d = %q, want the broken declaration", se.Line, lines[se.Line-1])
			}
		})
	}
}

func TestVerifyUndeclared(t *testing.T) {
	t.Parallel()

	src := renderFor(t, "csharp", sampleNumerics()[:1])
	err := Verify("csharp", src, []string{"RPL_WELCOME", "RPL_BOUNCE"})
	if !errors.Is(err, ErrUndeclared) {
		t.Fatalf("expected ErrUndeclared, got %v", err)
	}
	if !strings.Contains(err.Error(), "RPL_BOUNCE") {
		t.Errorf("error should name the missing numeric: %v", err)
	}
}

func TestVerifyUnknownTarget(t *testing.T) {
	t.Parallel()

	if err := Verify("cobol", nil, nil); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestDeclared(t *testing.T) {
	t.Parallel()

	l := lang.ForTarget("go")
	source := []byte("package x\n\nvar A = 1\nvar B = 2\nconst C = 3\nvar D = 4\n")

	tree, err := l.NewParser().ParseCtx(t.Context(), nil, source)
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	q, err := l.GetDeclQuery()
	if err != nil {
		t.Fatal(err)
	}

	got := Declared(q, tree.RootNode(), source)
	want := []string{"A", "B", "D"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Declared = %v, want %v", got, want)
	}
}
