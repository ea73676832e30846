package mergeop

import (
	"errors"
	"testing"

	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/selector"
)

func entry(name, value string) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString(name)},
		{Key: "value", Val: ir.FromString(value)},
	})
}

func ips() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "Ips", Val: ir.FromSlice([]*ir.Node{
			ir.FromString("12.12.12.10"),
			ir.FromString("12.12.12.13"),
		})},
	})
}

func TestKeyedUpdate(t *testing.T) {
	target := ir.FromSlice([]*ir.Node{
		entry("url", "preview.com"),
		entry("allowedIps", ""),
	})
	op, err := ForInstruction(&selector.KeyedUpdate{
		KeyField: "name", TargetValue: "allowedIps",
		ValueField: "value", SourceKey: "Ips",
	})
	if err != nil {
		t.Fatal(err)
	}
	rep := &Report{}
	if err := op.Apply(target, ips(), rep); err != nil {
		t.Fatal(err)
	}
	if rep.Applied != 1 || rep.Unmatched != 0 {
		t.Fatalf("report %+v", rep)
	}
	got := ir.Get(target.Values[1], "value")
	if got.Type != ir.ArrayType || len(got.Values) != 2 {
		t.Fatalf("value not replaced: %v", got)
	}
	if ir.Get(target.Values[0], "value").String != "preview.com" {
		t.Fatal("sibling entry changed")
	}
}

func TestKeyedUpdateFirstMatchOnly(t *testing.T) {
	target := ir.FromSlice([]*ir.Node{
		entry("allowedIps", "first"),
		entry("allowedIps", "second"),
	})
	op, _ := ForInstruction(&selector.KeyedUpdate{
		KeyField: "name", TargetValue: "allowedIps",
		ValueField: "value", SourceKey: "Ips",
	})
	rep := &Report{}
	if err := op.Apply(target, ips(), rep); err != nil {
		t.Fatal(err)
	}
	if ir.Get(target.Values[0], "value").Type != ir.ArrayType {
		t.Fatal("first element not updated")
	}
	if ir.Get(target.Values[1], "value").String != "second" {
		t.Fatal("second element should be untouched")
	}
}

func TestKeyedUpdateUnmatched(t *testing.T) {
	target := ir.FromSlice([]*ir.Node{entry("url", "preview.com")})
	before := target.Clone()
	op, _ := ForInstruction(&selector.KeyedUpdate{
		KeyField: "name", TargetValue: "nonexistent",
		ValueField: "value", SourceKey: "Ips",
	})
	rep := &Report{}
	if err := op.Apply(target, ips(), rep); err != nil {
		t.Fatal(err)
	}
	if rep.Unmatched != 1 || rep.Applied != 0 {
		t.Fatalf("report %+v", rep)
	}
	if !ir.Equal(target, before) {
		t.Fatal("unmatched update modified the target")
	}
}

func TestKeyedUpdateTypeMismatch(t *testing.T) {
	op, _ := ForInstruction(&selector.KeyedUpdate{
		KeyField: "name", TargetValue: "x",
		ValueField: "value", SourceKey: "Ips",
	})
	err := op.Apply(ir.FromString("scalar"), ips(), &Report{})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want type mismatch, got %v", err)
	}
}

func TestKeyedUpdateNumericKeyNormalization(t *testing.T) {
	target := ir.FromSlice([]*ir.Node{
		ir.FromKeyVals([]ir.KeyVal{
			{Key: "id", Val: ir.FromInt(7)},
			{Key: "value", Val: ir.FromString("old")},
		}),
	})
	op, _ := ForInstruction(&selector.KeyedUpdate{
		KeyField: "id", TargetValue: "7",
		ValueField: "value", SourceKey: "Ips",
	})
	rep := &Report{}
	if err := op.Apply(target, ips(), rep); err != nil {
		t.Fatal(err)
	}
	if rep.Applied != 1 {
		t.Fatalf("numeric key did not normalize: %+v", rep)
	}
}

func TestDirectAssign(t *testing.T) {
	target := ir.FromKeyVals([]ir.KeyVal{
		{Key: "keys", Val: ir.FromSlice(nil)},
	})
	input := ir.FromKeyVals([]ir.KeyVal{
		{Key: "api_keys", Val: ir.FromSlice([]*ir.Node{
			ir.FromString("abc"),
			ir.FromString("def"),
		})},
	})
	op, _ := ForInstruction(&selector.DirectAssign{
		Pairs: []selector.FieldPair{{Dest: "keys", Source: "api_keys"}},
	})
	rep := &Report{}
	if err := op.Apply(target, input, rep); err != nil {
		t.Fatal(err)
	}
	keys := ir.Get(target, "keys")
	if len(keys.Values) != 2 || keys.Values[0].String != "abc" {
		t.Fatalf("keys not assigned: %v", keys)
	}
	// creating an absent field
	op, _ = ForInstruction(&selector.DirectAssign{
		Pairs: []selector.FieldPair{{Dest: "fresh", Source: "api_keys"}},
	})
	if err := op.Apply(target, input, rep); err != nil {
		t.Fatal(err)
	}
	if ir.Get(target, "fresh") == nil {
		t.Fatal("fresh field not created")
	}
}

func TestDirectAssignTypeMismatch(t *testing.T) {
	op, _ := ForInstruction(&selector.DirectAssign{
		Pairs: []selector.FieldPair{{Dest: "a", Source: "b"}},
	})
	err := op.Apply(ir.FromSlice(nil), ir.Object(), &Report{})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want type mismatch, got %v", err)
	}
}

func TestDirectAssignMissingSource(t *testing.T) {
	op, _ := ForInstruction(&selector.DirectAssign{
		Pairs: []selector.FieldPair{{Dest: "a", Source: "nope"}},
	})
	err := op.Apply(ir.Object(), ir.Object(), &Report{})
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("want no-source error, got %v", err)
	}
}

func TestSourceLookupInSections(t *testing.T) {
	// sectioned input: the source key lives one object level down
	input := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Data", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "new_perms", Val: ir.FromSlice([]*ir.Node{ir.FromString("read")})},
		})},
	})
	if lookupSource(input, "new_perms") == nil {
		t.Fatal("sectioned source not found")
	}
	if lookupSource(input, "absent") != nil {
		t.Fatal("phantom source")
	}
}

func TestInputNeverMutated(t *testing.T) {
	input := ips()
	before := input.Clone()
	target := ir.FromSlice([]*ir.Node{entry("allowedIps", "")})
	op, _ := ForInstruction(&selector.KeyedUpdate{
		KeyField: "name", TargetValue: "allowedIps",
		ValueField: "value", SourceKey: "Ips",
	})
	if err := op.Apply(target, input, &Report{}); err != nil {
		t.Fatal(err)
	}
	// mutate the copied value in the base; the input must be unaffected
	got := ir.Get(target.Values[0], "value")
	ir.Append(got, ir.FromString("33.33.33.33"))
	if !ir.Equal(input, before) {
		t.Fatal("input tree mutated by merge")
	}
}
