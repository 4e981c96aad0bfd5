// internal/registry/registry_test.go
package registry

import "testing"

func TestSlotRoundTrip(t *testing.T) {
	tbl := New()

	f, err := tbl.Float("axis-x.feedback-speed")
	if err != nil {
		t.Fatalf("float: %v", err)
	}
	f.Set(-1)
	if got := f.Get(); got != -1 {
		t.Fatalf("float = %v, want -1", got)
	}

	b, err := tbl.Bit("axis-x.active-alarm")
	if err != nil {
		t.Fatalf("bit: %v", err)
	}
	b.Set(true)
	if !b.Get() {
		t.Fatal("bit not set")
	}

	i, err := tbl.Int("axis-x.error-code")
	if err != nil {
		t.Fatalf("int: %v", err)
	}
	i.Set(11)
	if got := i.Get(); got != 11 {
		t.Fatalf("int = %d, want 11", got)
	}

	u, err := tbl.Uint("axis-x.modbus-errors")
	if err != nil {
		t.Fatalf("uint: %v", err)
	}
	u.Add(1)
	u.Add(1)
	if got := u.Get(); got != 2 {
		t.Fatalf("uint = %d, want 2", got)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	tbl := New()
	if _, err := tbl.Float("axis-x.feedback-speed"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := tbl.Bit("axis-x.feedback-speed"); err == nil {
		t.Fatal("duplicate name accepted")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	tbl := New()
	if _, err := tbl.Float(""); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestSnapshotAndPrefixed(t *testing.T) {
	tbl := New()
	f, _ := tbl.Float("axis-x.feedback-speed")
	b, _ := tbl.Bit("axis-x.servo-ready")
	g, _ := tbl.Float("axis-z.feedback-speed")
	f.Set(98)
	b.Set(true)
	g.Set(12)

	snap := tbl.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d entries, want 3", len(snap))
	}
	if snap["axis-x.feedback-speed"] != 98.0 {
		t.Fatalf("snapshot speed = %v, want 98", snap["axis-x.feedback-speed"])
	}

	x := tbl.Prefixed("axis-x")
	if len(x) != 2 {
		t.Fatalf("prefixed has %d entries, want 2", len(x))
	}
	if x["feedback-speed"] != 98.0 || x["servo-ready"] != true {
		t.Fatalf("prefixed = %v", x)
	}
	if _, leaked := x["axis-z.feedback-speed"]; leaked {
		t.Fatal("prefixed leaked another device's signal")
	}
}
