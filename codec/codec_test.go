package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/davethomas11/vectrune/format"
	"github.com/davethomas11/vectrune/ir"
)

func fieldNames(y *ir.Node) []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

const jsonDoc = `{
  "environment": {
    "name": "staging",
    "preview": [
      {"name": "api", "image": "api:v1"},
      {"name": "web", "image": "web:v1"}
    ]
  },
  "replicas": 3,
  "ratio": 0.25,
  "enabled": true,
  "note": null
}`

func TestParseJSONOrder(t *testing.T) {
	y, err := Parse([]byte(jsonDoc), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"environment", "replicas", "ratio", "enabled", "note"}
	got := fieldNames(y)
	if len(got) != len(want) {
		t.Fatalf("fields: %v", got)
	}
	for i, f := range want {
		if got[i] != f {
			t.Errorf("field %d: got %q want %q", i, got[i], f)
		}
	}
	if v := ir.Get(y, "replicas"); v.Int64 == nil || *v.Int64 != 3 {
		t.Errorf("replicas: %v", v)
	}
	if v := ir.Get(y, "ratio"); v.Float64 == nil || *v.Float64 != 0.25 {
		t.Errorf("ratio: %v", v)
	}
	if v := ir.Get(y, "note"); v.Type != ir.NullType {
		t.Errorf("note: %v", v)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	y, err := Parse([]byte(jsonDoc), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(y, &buf, format.JSONFormat); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(buf.Bytes(), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, again) {
		t.Errorf("round trip changed tree:\n%s", buf.String())
	}
	if got := again.Fields[0].String; got != "environment" {
		t.Errorf("order lost: first field %q", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := "environment:\n  name: staging\n  zones:\n    - east\n    - west\nreplicas: 3\n"
	y, err := Parse([]byte(doc), format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if y.Fields[0].String != "environment" || y.Fields[1].String != "replicas" {
		t.Fatalf("fields: %v", fieldNames(y))
	}
	var buf bytes.Buffer
	if err := Encode(y, &buf, format.YAMLFormat); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(buf.Bytes(), format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, again) {
		t.Errorf("round trip changed tree:\n%s", buf.String())
	}
}

func TestXMLRoundTrip(t *testing.T) {
	y, err := Parse([]byte(jsonDoc), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(y, &buf, format.XMLFormat); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<environment>") {
		t.Fatalf("missing element:\n%s", buf.String())
	}
	again, err := Parse(buf.Bytes(), format.XMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	env := ir.Get(again, "environment")
	if env == nil {
		t.Fatal("environment lost")
	}
	preview := ir.Get(env, "preview")
	if preview == nil || preview.Type != ir.ArrayType || len(preview.Values) != 2 {
		t.Fatalf("preview: %v", preview)
	}
	if v := ir.Get(preview.Values[1], "image"); v == nil || v.String != "web:v1" {
		t.Errorf("preview[1].image: %v", v)
	}
	if v := ir.Get(again, "replicas"); v == nil || v.Int64 == nil || *v.Int64 != 3 {
		t.Errorf("replicas: %v", v)
	}
	if v := ir.Get(again, "enabled"); v == nil || v.Type != ir.BoolType || !v.Bool {
		t.Errorf("enabled: %v", v)
	}
}

func TestXMLRootArray(t *testing.T) {
	y, err := Parse([]byte(`["a", "b"]`), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(y, &buf, format.XMLFormat); err != nil {
		t.Fatal(err)
	}
	// one root element with repeated item children, not multiple roots
	if got := strings.Count(buf.String(), "<root>"); got != 1 {
		t.Fatalf("root count %d:\n%s", got, buf.String())
	}
	again, err := Parse(buf.Bytes(), format.XMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	items := ir.Get(again, "item")
	if items == nil || items.Type != ir.ArrayType || len(items.Values) != 2 {
		t.Fatalf("item: %v", items)
	}
	if items.Values[0].String != "a" || items.Values[1].String != "b" {
		t.Errorf("items: %v %v", items.Values[0], items.Values[1])
	}
}

func TestXMLEscaping(t *testing.T) {
	y := ir.FromKeyVals([]ir.KeyVal{
		{Key: "msg", Val: ir.FromString("a < b & c")},
	})
	var buf bytes.Buffer
	if err := Encode(y, &buf, format.XMLFormat); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a &lt; b &amp; c") {
		t.Fatalf("unescaped output:\n%s", buf.String())
	}
	again, err := Parse(buf.Bytes(), format.XMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(again, "msg"); v == nil || v.String != "a < b & c" {
		t.Errorf("msg: %v", v)
	}
}

func TestToAnyFromAny(t *testing.T) {
	y, err := Parse([]byte(jsonDoc), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromAny(ToAny(y))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, back) {
		t.Error("ToAny/FromAny changed tree")
	}
	if back.Fields[0].String != "environment" {
		t.Errorf("order lost: %v", fieldNames(back))
	}
}

func TestApplyPatch(t *testing.T) {
	y, err := Parse([]byte(`{"a": 1, "b": {"c": 2}}`), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	patch, err := Parse([]byte(`[
  {"op": "replace", "path": "/b/c", "value": 5},
  {"op": "add", "path": "/d", "value": "new"}
]`), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ApplyPatch(y, patch)
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(ir.Get(out, "b"), "c"); v == nil || v.Int64 == nil || *v.Int64 != 5 {
		t.Errorf("b.c: %v", v)
	}
	if v := ir.Get(out, "d"); v == nil || v.String != "new" {
		t.Errorf("d: %v", v)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte(`{"a": `), format.JSONFormat); err == nil {
		t.Error("truncated json accepted")
	}
	if _, err := Parse([]byte(`<root><a>`), format.XMLFormat); err == nil {
		t.Error("unclosed xml accepted")
	}
}
