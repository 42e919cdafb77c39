package collection

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type contact struct {
	ID   string
	Name string
}

func contactKey(c contact) string { return c.ID }

func ids(items []contact) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

func TestContactScenario(t *testing.T) {
	c := New(contactKey)
	_, ok := c.Selected()
	be.True(t, !ok)

	c.Prepend(contact{ID: "1", Name: "A"})
	be.Equal(t, c.Items(), []contact{{ID: "1", Name: "A"}})

	be.True(t, c.Select("1"))
	be.True(t, c.ReplaceByKey(contact{ID: "1", Name: "B"}))
	be.Equal(t, c.Items(), []contact{{ID: "1", Name: "B"}})
	sel, ok := c.Selected()
	be.True(t, ok)
	be.Equal(t, sel, contact{ID: "1", Name: "B"})
}

func TestReplaceByKeyPreservesPositionAndNeverInserts(t *testing.T) {
	c := New(contactKey)
	c.Replace([]contact{{ID: "a"}, {ID: "b"}, {ID: "c"}}, domain.Pagination{Total: 3})

	be.True(t, c.ReplaceByKey(contact{ID: "b", Name: "updated"}))
	be.Equal(t, ids(c.Items()), []string{"a", "b", "c"})
	got, _ := c.Get("b")
	be.Equal(t, got.Name, "updated")

	be.True(t, !c.ReplaceByKey(contact{ID: "z"}))
	be.Equal(t, c.Len(), 3)
}

func TestRemoveByKeyClearsMirror(t *testing.T) {
	c := New(contactKey)
	c.Replace([]contact{{ID: "a"}, {ID: "b"}}, domain.Pagination{})
	c.Select("b")

	be.True(t, c.RemoveByKey("a"))
	_, ok := c.Selected()
	be.True(t, ok)

	be.True(t, c.RemoveByKey("b"))
	_, ok = c.Selected()
	be.True(t, !ok)
	be.Equal(t, c.Len(), 0)

	be.True(t, !c.RemoveByKey("b"))
}

func TestInsertKeepsKeysUnique(t *testing.T) {
	c := New(contactKey)
	c.Append(contact{ID: "1", Name: "old"})
	c.Append(contact{ID: "2"})
	c.Prepend(contact{ID: "1", Name: "new"})

	be.Equal(t, ids(c.Items()), []string{"1", "2"})
	got, _ := c.Get("1")
	be.Equal(t, got.Name, "new")
}

func TestReplaceListRefreshesOrClearsSelection(t *testing.T) {
	c := New(contactKey)
	c.Replace([]contact{{ID: "a", Name: "v1"}}, domain.Pagination{Total: 1, Page: 1})
	c.Select("a")

	c.Replace([]contact{{ID: "a", Name: "v2"}, {ID: "b"}}, domain.Pagination{Total: 2, Page: 1})
	sel, _ := c.Selected()
	be.Equal(t, sel.Name, "v2")
	be.Equal(t, c.Pagination().Total, 2)

	c.Replace([]contact{{ID: "b"}}, domain.Pagination{Total: 1, Page: 2})
	_, ok := c.Selected()
	be.True(t, !ok)
	be.Equal(t, c.Pagination().Page, 2)
}

func TestInsertSortedBySortOrderThenName(t *testing.T) {
	type outcome struct {
		ID    string
		Name  string
		Order int
	}
	less := func(a, b outcome) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.Name, b.Name))
	}
	c := New(func(o outcome) string { return o.ID })
	c.Replace([]outcome{{ID: "1", Name: "Housed", Order: 1}, {ID: "2", Name: "Employed", Order: 3}}, domain.Pagination{})

	c.InsertSorted(outcome{ID: "3", Name: "Enrolled", Order: 1}, less)
	c.InsertSorted(outcome{ID: "4", Name: "Benefits", Order: 2}, less)

	var names []string
	for _, o := range c.Items() {
		names = append(names, o.Name)
	}
	be.Equal(t, names, []string{"Enrolled", "Housed", "Benefits", "Employed"})
}

func TestPatchUpdatesEntryAndSelection(t *testing.T) {
	type event struct {
		ID         string
		Registered int
	}
	c := New(func(e event) string { return e.ID })
	c.Replace([]event{{ID: "e1", Registered: 5}, {ID: "e2"}}, domain.Pagination{})
	c.Select("e1")

	inc := func(e event) event { e.Registered = Increment(e.Registered); return e }
	be.True(t, c.Patch("e1", inc))
	sel, _ := c.Selected()
	be.Equal(t, sel.Registered, 6)
	got, _ := c.Get("e1")
	be.Equal(t, got.Registered, 6)

	be.True(t, !c.Patch("missing", inc))
}

func TestPatchDetachedSelection(t *testing.T) {
	c := New(contactKey)
	c.SetSelected(contact{ID: "x", Name: "detail"})
	be.Equal(t, c.Len(), 0)

	be.True(t, c.Patch("x", func(ct contact) contact { ct.Name = "patched"; return ct }))
	sel, _ := c.Selected()
	be.Equal(t, sel.Name, "patched")
}

func TestSetSelectedOverwritesListEntry(t *testing.T) {
	c := New(contactKey)
	c.Replace([]contact{{ID: "a", Name: "list"}}, domain.Pagination{})
	c.SetSelected(contact{ID: "a", Name: "detail"})
	got, _ := c.Get("a")
	be.Equal(t, got.Name, "detail")

	k, ok := c.SelectedKey()
	be.True(t, ok)
	be.Equal(t, k, "a")

	c.ClearSelection()
	_, ok = c.SelectedKey()
	be.True(t, !ok)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New(contactKey)
	c.Append(contact{ID: "a", Name: "A"})
	items := c.Items()
	items[0].Name = "mutated"
	got, _ := c.Get("a")
	be.Equal(t, got.Name, "A")
}

func TestReset(t *testing.T) {
	c := New(contactKey)
	c.Replace([]contact{{ID: "a"}}, domain.Pagination{Total: 1})
	c.Select("a")
	c.Reset()
	be.Equal(t, c.Len(), 0)
	_, ok := c.Selected()
	be.True(t, !ok)
	be.Equal(t, c.Pagination(), domain.Pagination{})
}

// Random Insert/Replace/Remove sequences must keep the selection either
// empty or identical to the list entry with its key.
func TestMirrorConsistencyUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	c := New(contactKey)

	for step := 0; step < 2000; step++ {
		id := fmt.Sprintf("%d", rng.IntN(8))
		item := contact{ID: id, Name: fmt.Sprintf("v%d", step)}
		switch rng.IntN(5) {
		case 0:
			c.Prepend(item)
		case 1:
			c.Append(item)
		case 2:
			c.ReplaceByKey(item)
		case 3:
			c.RemoveByKey(id)
		case 4:
			c.Select(id)
		}

		sel, ok := c.Selected()
		if ok {
			got, found := c.Get(sel.ID)
			if !found {
				t.Fatalf("step %d: selection %q missing from collection", step, sel.ID)
			}
			if got != sel {
				t.Fatalf("step %d: selection %#v, list entry %#v", step, sel, got)
			}
		}

		seen := map[string]bool{}
		for _, it := range c.Items() {
			if seen[it.ID] {
				t.Fatalf("step %d: duplicate key %q", step, it.ID)
			}
			seen[it.ID] = true
		}
	}
}

func TestCounterNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	n := 0
	for i := 0; i < 1000; i++ {
		if rng.IntN(3) == 0 {
			n = Increment(n)
		} else {
			n = Decrement(n)
		}
		if n < 0 {
			t.Fatalf("counter went negative at step %d", i)
		}
	}
	be.Equal(t, Decrement(0), 0)
	be.Equal(t, Decrement(5), 4)
	be.Equal(t, Increment(5), 6)
}
