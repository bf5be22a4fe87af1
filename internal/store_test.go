package internal_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/turtle/internal"
)

// TestStoreScoping tests the read and write rules of chained stores.
func TestStoreScoping(t *testing.T) {
	parent := internal.NewStore(nil, map[string]int{"outer": 1})
	child := internal.NewStore(parent, nil)
	t.Run("read", func(t *testing.T) {
		v, ok := child.Get("outer")
		if !ok || v != 1 {
			t.Errorf("wrong value read through child: want 1, have %d (%t)", v, ok)
		}
		if _, ok := child.GetLocal("outer"); ok {
			t.Error("child owns outer")
		}
		if _, ok := child.Get("missing"); ok {
			t.Error("missing key found")
		}
	})
	t.Run("write existing", func(t *testing.T) {
		child.Set("outer", 2)
		if v, _ := parent.Get("outer"); v != 2 {
			t.Errorf("parent not mutated: want 2, have %d", v)
		}
		if _, ok := child.GetLocal("outer"); ok {
			t.Error("write to existing key created it in child")
		}
	})
	t.Run("write new", func(t *testing.T) {
		child.Set("inner", 3)
		if v, ok := child.GetLocal("inner"); !ok || v != 3 {
			t.Errorf("wrong local value: want 3, have %d (%t)", v, ok)
		}
		if _, ok := parent.Get("inner"); ok {
			t.Error("write of new key created it in parent")
		}
	})
	t.Run("local write", func(t *testing.T) {
		child.SetLocal("outer", 4)
		if v, _ := child.Get("outer"); v != 4 {
			t.Errorf("shadow not visible: want 4, have %d", v)
		}
		if v, _ := parent.Get("outer"); v != 2 {
			t.Errorf("local write mutated parent: want 2, have %d", v)
		}
	})
}

func TestStoreOwner(t *testing.T) {
	root := internal.NewStore(nil, map[string]int{"a": 1})
	mid := internal.NewStore(root, map[string]int{"b": 2})
	leaf := internal.NewStore(mid, nil)
	cases := map[string]struct {
		key     string
		owner   *internal.Store[int]
		resolve *internal.Store[int]
	}{
		"root":    {"a", root, root},
		"mid":     {"b", mid, mid},
		"missing": {"c", nil, leaf},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if o := leaf.Owner(c.key); o != c.owner {
				t.Errorf("wrong owner: want %v, have %v", c.owner, o)
			}
			if r := leaf.Resolve(c.key); r != c.resolve {
				t.Errorf("wrong resolution: want %v, have %v", c.resolve, r)
			}
		})
	}
}

func TestStoreFlatten(t *testing.T) {
	root := internal.NewStore(nil, map[string]int{"a": 1, "b": 1})
	leaf := internal.NewStore(root, map[string]int{"b": 2, "c": 2})
	want := map[string]int{"a": 1, "b": 2, "c": 2}
	if have := leaf.Flatten(); !reflect.DeepEqual(have, want) {
		t.Errorf("wrong flattened store: want %v, have %v", want, have)
	}
	if have := leaf.Keys(); !reflect.DeepEqual(have, []string{"a", "b", "c"}) {
		t.Errorf("wrong keys: have %v", have)
	}
}

func TestStoreInitCopied(t *testing.T) {
	m := map[string]int{"a": 1}
	s := internal.NewStore(nil, m)
	m["a"] = 2
	if v, _ := s.Get("a"); v != 1 {
		t.Errorf("store aliases its initial map: have %d", v)
	}
}

func TestStoreIDs(t *testing.T) {
	a := internal.NewStore[int](nil, nil)
	b := internal.NewStore[int](nil, nil)
	if a.ID() == b.ID() {
		t.Errorf("stores share ID %d", a.ID())
	}
}
