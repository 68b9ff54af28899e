package canvas

import (
	"errors"
	"slices"
	"testing"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
)

func TestReorderMatchesMoveComponent(t *testing.T) {
	c := New(WithIDGenerator(seqIDs()))
	var order []string
	for range 4 {
		order = append(order, mustAdd(t, c, catalog.Button).ID)
	}
	if !c.Reorder(0, 2) {
		t.Fatal("Reorder(0, 2) = false")
	}
	want := []string{order[1], order[2], order[0], order[3]}
	if got := ids(c.Components()); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDropInsert(t *testing.T) {
	c := New()
	if _, err := c.DropInsert(catalog.Button, "any"); !errors.Is(err, ErrNoSections) {
		t.Fatalf("DropInsert() without sections error = %v, want ErrNoSections", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected drop created a component")
	}

	first := mustSection(t, c)
	second := mustSection(t, c)
	mustAdd(t, c, catalog.Heading, InSection(second.ID))

	a, err := c.DropInsert(catalog.Button, first.ID)
	if err != nil {
		t.Fatalf("DropInsert() error: %v", err)
	}
	b, err := c.DropInsert(catalog.Button, first.ID)
	if err != nil {
		t.Fatalf("second DropInsert() error: %v", err)
	}
	if a.ID == b.ID {
		t.Error("repeated drop deduplicated")
	}
	if c.IndexOf(a.ID) != 1 || c.IndexOf(b.ID) != 2 {
		t.Errorf("drops were not appended: %d, %d", c.IndexOf(a.ID), c.IndexOf(b.ID))
	}
	if got := ids(c.ComponentsInSection(first.ID)); !slices.Equal(got, []string{a.ID, b.ID}) {
		t.Errorf("ComponentsInSection(first) = %v", got)
	}
}

func TestBeginNewWithoutSections(t *testing.T) {
	c := New()
	if _, err := c.BeginNew(catalog.Button); !errors.Is(err, ErrNoSections) {
		t.Errorf("BeginNew() error = %v, want ErrNoSections", err)
	}
	mustSection(t, c)
	if _, err := c.BeginNew(catalog.Kind("Video")); !errors.Is(err, catalog.ErrInvalidKind) {
		t.Errorf("BeginNew(Video) error = %v, want ErrInvalidKind", err)
	}
}

func TestDragSessionNewKind(t *testing.T) {
	c := New()
	s1 := mustSection(t, c)
	s2 := mustSection(t, c)
	c.SelectSection(s1.ID)

	d, err := c.BeginNew(catalog.Card)
	if err != nil {
		t.Fatalf("BeginNew() error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("BeginNew mutated the canvas")
	}

	d.OverSection(s2.ID)
	res, err := d.Complete()
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !res.Added || res.Component.SectionID != s2.ID {
		t.Errorf("Complete() = %+v, want card added to %s", res, s2.ID)
	}
	if c.ActiveSectionID() != s1.ID {
		t.Error("drop changed the section selection")
	}

	d, _ = c.BeginNew(catalog.Card)
	d.OverSection(s2.ID)
	d.Leave()
	res, _ = d.Complete()
	if res.Changed() || c.Len() != 1 {
		t.Errorf("drop outside every target changed the canvas: %+v", res)
	}
}

func TestDragSessionReorder(t *testing.T) {
	c := New(WithIDGenerator(seqIDs()))
	s1 := mustSection(t, c)
	s2 := mustSection(t, c)
	a := mustAdd(t, c, catalog.Button, InSection(s1.ID))
	b := mustAdd(t, c, catalog.Button, InSection(s1.ID))
	x := mustAdd(t, c, catalog.Heading, InSection(s2.ID))

	t.Run("within a section", func(t *testing.T) {
		d, ok := c.BeginReorder(a.ID)
		if !ok {
			t.Fatal("BeginReorder() = false")
		}
		d.OverComponent(b.ID)
		res, err := d.Complete()
		if err != nil {
			t.Fatalf("Complete() error: %v", err)
		}
		if !res.Moved || res.Reassigned {
			t.Errorf("Complete() = %+v, want moved only", res)
		}
		if got := ids(c.Components()); !slices.Equal(got, []string{b.ID, a.ID, x.ID}) {
			t.Errorf("order = %v", got)
		}
	})

	t.Run("dropping on itself is a no-op", func(t *testing.T) {
		rec := &Recorder{}
		c.emitter = rec
		defer func() { c.emitter = NopEmitter{} }()

		d, _ := c.BeginReorder(a.ID)
		d.OverComponent(a.ID)
		res, _ := d.Complete()
		if res.Changed() || len(rec.Events) != 0 {
			t.Errorf("self drop changed the canvas: %+v %v", res, rec.Names())
		}
	})

	t.Run("across sections reassigns", func(t *testing.T) {
		d, _ := c.BeginReorder(a.ID)
		d.OverComponent(x.ID)
		res, _ := d.Complete()
		if !res.Moved || !res.Reassigned {
			t.Errorf("Complete() = %+v, want moved and reassigned", res)
		}
		if res.Component.SectionID != s2.ID {
			t.Errorf("SectionID = %q, want %q", res.Component.SectionID, s2.ID)
		}
		if got := ids(c.ComponentsInSection(s2.ID)); !slices.Equal(got, []string{x.ID, a.ID}) {
			t.Errorf("s2 members = %v", got)
		}
	})

	t.Run("onto an empty section area", func(t *testing.T) {
		d, _ := c.BeginReorder(b.ID)
		d.OverSection(s2.ID)
		res, _ := d.Complete()
		if res.Moved || !res.Reassigned {
			t.Errorf("Complete() = %+v, want reassigned only", res)
		}
		if len(c.ComponentsInSection(s1.ID)) != 0 {
			t.Errorf("s1 still has members")
		}
	})

	t.Run("component deleted mid-drag", func(t *testing.T) {
		d, _ := c.BeginReorder(b.ID)
		d.OverComponent(x.ID)
		c.DeleteComponent(b.ID)
		res, err := d.Complete()
		if err != nil || res.Changed() {
			t.Errorf("Complete() = %+v, %v; want silent no-op", res, err)
		}
	})

	if _, ok := c.BeginReorder("missing"); ok {
		t.Error("BeginReorder(missing) = true")
	}
}
