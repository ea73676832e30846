package calc

import (
	"errors"
	"testing"

	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/runefmt"
)

func testDoc(t *testing.T) *ir.Node {
	t.Helper()
	doc := `@Sales
region = west
+ item = widget
price = 10
qty = 4
+ item = gizmo
price = 20
qty = 1
+ item = doodad
price = 12.5
qty = 2
`
	root, err := runefmt.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestAggregates(t *testing.T) {
	root := testDoc(t)
	for _, tc := range []struct {
		query string
		want  any
	}{
		{"sum Sales.qty", int64(7)},
		{"avg Sales.qty", 7.0 / 3},
		{"min Sales.price", 10.0},
		{"max Sales.price", 20.0},
		{"count Sales", int64(3)},
		{"count Sales.price", int64(3)},
		{"sum Sales.price", 42.5},
	} {
		got, err := Eval(root, tc.query)
		if err != nil {
			t.Errorf("%s: %v", tc.query, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %v (%T), want %v (%T)", tc.query, got, got, tc.want, tc.want)
		}
	}
}

func TestAggregateErrors(t *testing.T) {
	root := testDoc(t)
	for _, query := range []string{
		"sum Nowhere.qty",
		"avg Sales.missing",
		"sum Sales",
	} {
		if _, err := Eval(root, query); !errors.Is(err, ErrQuery) {
			t.Errorf("%s: got %v", query, err)
		}
	}
}

func TestExprFallback(t *testing.T) {
	root := testDoc(t)
	got, err := Eval(root, `len(Sales.record)`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("len: got %v", got)
	}
	got, err = Eval(root, `Sales.region == "west"`)
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("compare: got %v", got)
	}
}
