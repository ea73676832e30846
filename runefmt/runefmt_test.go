package runefmt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davethomas11/vectrune/ir"
)

const sampleDoc = `#!RUNE
# deployment manifest
@App
name = frontend
replicas = 3
debug = false
version = 12.12.12.10

@App/Resources
cpu = 0.5
tags = (web edge prod)

@Servers
hosts:
  alpha
  beta
+ name = alpha
port = 8080
+ name = beta
port = 8081
`

func TestParseSections(t *testing.T) {
	root, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	app := ir.Get(root, "App")
	if app == nil {
		t.Fatal("no App section")
	}
	if v := ir.Get(app, "name"); v == nil || v.String != "frontend" {
		t.Errorf("name: got %v", v)
	}
	if v := ir.Get(app, "replicas"); v == nil || v.Int64 == nil || *v.Int64 != 3 {
		t.Errorf("replicas: got %v", v)
	}
	if v := ir.Get(app, "debug"); v == nil || v.Type != ir.BoolType || v.Bool {
		t.Errorf("debug: got %v", v)
	}
	if v := ir.Get(app, "version"); v == nil || v.Type != ir.StringType || v.String != "12.12.12.10" {
		t.Errorf("version should stay a string, got %v", v)
	}
	res := ir.Get(app, "Resources")
	if res == nil || res.Type != ir.ObjectType {
		t.Fatal("App/Resources should nest under App")
	}
	if v := ir.Get(res, "cpu"); v == nil || v.Float64 == nil || *v.Float64 != 0.5 {
		t.Errorf("cpu: got %v", v)
	}
	tags := ir.Get(res, "tags")
	if tags == nil || tags.Type != ir.ArrayType || len(tags.Values) != 3 {
		t.Fatalf("tags: got %v", tags)
	}
	if tags.Values[1].String != "edge" {
		t.Errorf("tags[1]: got %q", tags.Values[1].String)
	}
}

func TestParseSeriesAndRecords(t *testing.T) {
	root, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	servers := ir.Get(root, "Servers")
	hosts := ir.Get(servers, "hosts")
	if hosts == nil || hosts.Type != ir.ArrayType || len(hosts.Values) != 2 {
		t.Fatalf("hosts: got %v", hosts)
	}
	if hosts.Values[0].String != "alpha" || hosts.Values[1].String != "beta" {
		t.Errorf("hosts items: %v %v", hosts.Values[0], hosts.Values[1])
	}
	recs := ir.Get(servers, "record")
	if recs == nil || recs.Type != ir.ArrayType || len(recs.Values) != 2 {
		t.Fatalf("record: got %v", recs)
	}
	second := recs.Values[1]
	if v := ir.Get(second, "name"); v == nil || v.String != "beta" {
		t.Errorf("record[1].name: got %v", v)
	}
	if v := ir.Get(second, "port"); v == nil || v.Int64 == nil || *v.Int64 != 8081 {
		t.Errorf("record[1].port: got %v", v)
	}
}

func TestParseNestedSeries(t *testing.T) {
	doc := "@Zones\nregions:\n  us:\n    east\n    west\n  eu:\n    central\n"
	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	regions := ir.Get(ir.Get(root, "Zones"), "regions")
	if regions == nil || len(regions.Values) != 2 {
		t.Fatalf("regions: got %v", regions)
	}
	us := regions.Values[0]
	if us.Type != ir.ObjectType || us.Fields[0].String != "us" {
		t.Fatalf("regions[0]: got %v", us)
	}
	if got := len(us.Values[0].Values); got != 2 {
		t.Errorf("us entries: got %d", got)
	}
}

func TestParseSeriesInlineObjects(t *testing.T) {
	doc := "@Fleet\nnodes:\n  {name = a, cpu = 2}\n  {name = b, cpu = 4}\n"
	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	nodes := ir.Get(ir.Get(root, "Fleet"), "nodes")
	if nodes == nil || len(nodes.Values) != 2 {
		t.Fatalf("nodes: got %v", nodes)
	}
	b := nodes.Values[1]
	if v := ir.Get(b, "cpu"); v == nil || v.Int64 == nil || *v.Int64 != 4 {
		t.Errorf("nodes[1].cpu: got %v", v)
	}
}

func TestParseMultiline(t *testing.T) {
	doc := "@Notes\nbody >\n  first line\n  second line\n\nafter = 1\n"
	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	notes := ir.Get(root, "Notes")
	body := ir.Get(notes, "body")
	if body == nil || body.String != "first line\nsecond line" {
		t.Errorf("body: got %v", body)
	}
	if v := ir.Get(notes, "after"); v == nil || v.Int64 == nil || *v.Int64 != 1 {
		t.Errorf("after: got %v", v)
	}
}

func TestParseMapBlock(t *testing.T) {
	doc := "@App\nlimits {\n  cpu = 2\n  mem = 512\n}\n"
	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	limits := ir.Get(ir.Get(root, "App"), "limits")
	if limits == nil || limits.Type != ir.ObjectType {
		t.Fatalf("limits: got %v", limits)
	}
	if v := ir.Get(limits, "mem"); v == nil || v.Int64 == nil || *v.Int64 != 512 {
		t.Errorf("limits.mem: got %v", v)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("RUNE_TEST_TOKEN", "sekrit")
	root, err := Parse([]byte("@Auth\ntoken = $RUNE_TEST_TOKEN$\n"))
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(ir.Get(root, "Auth"), "token"); v == nil || v.String != "sekrit" {
		t.Errorf("token: got %v", v)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"content before section", "name = x\n"},
		{"unterminated map block", "@App\nlimits {\n  cpu = 2\n"},
		{"empty section element", "@App//Sub\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, ErrParse) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	root, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, buf.String())
	}
	if !ir.Equal(root, again) {
		t.Errorf("round trip changed tree:\n%s", buf.String())
	}
}

func TestEncodeQuoting(t *testing.T) {
	sec := ir.FromKeyVals([]ir.KeyVal{
		{Key: "flag", Val: ir.FromString("true")},
		{Key: "num", Val: ir.FromString("42")},
	})
	root := ir.FromKeyVals([]ir.KeyVal{{Key: "App", Val: sec}})
	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	app := ir.Get(again, "App")
	if v := ir.Get(app, "flag"); v == nil || v.Type != ir.StringType || v.String != "true" {
		t.Errorf("flag: got %v", v)
	}
	if v := ir.Get(app, "num"); v == nil || v.Type != ir.StringType || v.String != "42" {
		t.Errorf("num: got %v", v)
	}
}
