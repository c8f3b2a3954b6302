package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hammamikhairi/ottomenu/internal/catalog"
	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
)

var (
	caesar    = domain.MenuItem{DishName: "Caesar Salad", Description: "Crispy romaine", Course: domain.CourseStarter, Price: "59.99"}
	carbonara = domain.MenuItem{DishName: "Spaghetti Carbonara", Description: "Pasta with pancetta", Course: domain.CourseMain, Price: "120.99"}
	cake      = domain.MenuItem{DishName: "Chocolate Cake", Description: "Rich frosting", Course: domain.CourseDessert, Price: "45.99"}
)

func setupStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return New([]domain.MenuItem{caesar, carbonara, cake}, log, opts...)
}

func mustTotal(t *testing.T, s *Store) string {
	t.Helper()
	total, err := s.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	return FormatTotal(total)
}

func TestAddAndRemoveScenario(t *testing.T) {
	s := setupStore(t)

	s.AddPreset(domain.MenuItem{DishName: "Caesar Salad", Price: "59.99"})
	s.AddPreset(domain.MenuItem{DishName: "Spaghetti Carbonara", Price: "120.99"})

	if got := mustTotal(t, s); got != "180.98" {
		t.Fatalf("expected total 180.98, got %s", got)
	}

	sel, err := s.RemoveAt(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(sel) != 1 {
		t.Fatalf("expected 1 entry left, got %d", len(sel))
	}
	if got := mustTotal(t, s); got != "120.99" {
		t.Fatalf("expected total 120.99, got %s", got)
	}
}

func TestAddPresetKeepsCatalogByDefault(t *testing.T) {
	s := setupStore(t)

	s.AddPreset(caesar)
	s.AddPreset(caesar)

	if s.Len() != 2 {
		t.Fatalf("expected duplicates to be allowed, got %d entries", s.Len())
	}
	if len(s.Catalog()) != 3 {
		t.Fatalf("expected catalog untouched, got %d presets", len(s.Catalog()))
	}
}

func TestAddPresetConsumable(t *testing.T) {
	s := setupStore(t, WithConsumablePresets())

	if _, err := s.AddPresetAt(1); err != nil {
		t.Fatalf("add preset: %v", err)
	}

	cat := s.Catalog()
	if len(cat) != 2 {
		t.Fatalf("expected 2 presets left, got %d", len(cat))
	}
	for _, c := range cat {
		if c.DishName == carbonara.DishName {
			t.Fatal("expected carbonara to be consumed")
		}
	}
	if s.Items()[0].DishName != carbonara.DishName {
		t.Fatalf("expected carbonara in cart, got %s", s.Items()[0].DishName)
	}
}

func TestAddPresetAtOutOfRange(t *testing.T) {
	s := setupStore(t)

	for _, i := range []int{-1, 3, 99} {
		if _, err := s.AddPresetAt(i); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty cart, got %d", s.Len())
	}
}

func TestRemoveAtKeepsDuplicateIdentity(t *testing.T) {
	n := 0
	s := setupStore(t, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("e%d", n)
	}))

	s.AddPreset(caesar)    // e1
	s.AddPreset(carbonara) // e2
	s.AddPreset(caesar)    // e3

	sel, err := s.RemoveAt(2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(sel) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sel))
	}
	for _, e := range sel {
		if e.ID == "e3" {
			t.Fatal("removed entry is still present")
		}
	}
	if sel[0].ID != "e1" || sel[0].Item.DishName != caesar.DishName {
		t.Fatalf("expected the other Caesar Salad (e1) untouched, got %+v", sel[0])
	}
	if sel[1].ID != "e2" {
		t.Fatalf("expected order preserved, got %+v", sel[1])
	}
}

func TestRemoveAtShrinksByOne(t *testing.T) {
	for size := 1; size <= 4; size++ {
		for i := 0; i < size; i++ {
			t.Run(fmt.Sprintf("size=%d/index=%d", size, i), func(t *testing.T) {
				s := setupStore(t)
				for k := 0; k < size; k++ {
					s.AddPreset(caesar)
				}
				before := s.Selection()

				after, err := s.RemoveAt(i)
				if err != nil {
					t.Fatalf("remove: %v", err)
				}
				if len(after) != size-1 {
					t.Fatalf("expected %d entries, got %d", size-1, len(after))
				}
				for _, e := range after {
					if e.ID == before[i].ID {
						t.Fatalf("entry %s still present", e.ID)
					}
				}
			})
		}
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	s := setupStore(t)
	s.AddPreset(caesar)

	tests := []int{-1, 1, 5}
	for _, i := range tests {
		if _, err := s.RemoveAt(i); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("expected cart unchanged, got %d", s.Len())
	}
}

func TestClear(t *testing.T) {
	s := setupStore(t)
	s.AddPreset(caesar)
	s.AddPreset(cake)

	s.Clear()

	if s.Len() != 0 {
		t.Fatalf("expected empty cart, got %d", s.Len())
	}
	if got := mustTotal(t, s); got != "0.00" {
		t.Fatalf("expected total 0.00, got %s", got)
	}
}

func TestCommitCustomItem(t *testing.T) {
	valid := domain.Draft{DishName: "Bobotie", Description: "Spiced mince bake", Course: "main", Price: "89.5"}

	tests := []struct {
		name       string
		draft      domain.Draft
		wantErr    error
		wantFields []string
	}{
		{"valid", valid, nil, nil},
		{"missing name", domain.Draft{DishName: "", Description: "x", Course: "main", Price: "5"}, domain.ErrMissingFields, []string{"dishName"}},
		{"blank name", domain.Draft{DishName: "   ", Description: "x", Course: "main", Price: "5"}, domain.ErrMissingFields, []string{"dishName"}},
		{"missing description", domain.Draft{DishName: "a", Course: "main", Price: "5"}, domain.ErrMissingFields, []string{"description"}},
		{"missing course", domain.Draft{DishName: "a", Description: "x", Price: "5"}, domain.ErrMissingFields, []string{"course"}},
		{"unknown course", domain.Draft{DishName: "a", Description: "x", Course: "brunch", Price: "5"}, domain.ErrMissingFields, []string{"course"}},
		{"missing price", domain.Draft{DishName: "a", Description: "x", Course: "main"}, domain.ErrMissingFields, []string{"price"}},
		{"everything missing", domain.Draft{}, domain.ErrMissingFields, []string{"dishName", "description", "course", "price"}},
		{"non-numeric price", domain.Draft{DishName: "a", Description: "x", Course: "main", Price: "abc"}, domain.ErrInvalidPrice, []string{"price"}},
		{"negative price", domain.Draft{DishName: "a", Description: "x", Course: "main", Price: "-1"}, domain.ErrInvalidPrice, []string{"price"}},
		{"infinite price", domain.Draft{DishName: "a", Description: "x", Course: "main", Price: "Inf"}, domain.ErrInvalidPrice, []string{"price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupStore(t)

			item, err := s.CommitCustomItem(tt.draft)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.Len() != 1 {
					t.Fatalf("expected item in cart, got %d entries", s.Len())
				}
				if item.Course != domain.CourseMain || item.Price != "89.5" {
					t.Fatalf("unexpected item: %+v", item)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *domain.ValidationError, got %T", err)
			}
			if fmt.Sprint(verr.Fields) != fmt.Sprint(tt.wantFields) {
				t.Fatalf("expected fields %v, got %v", tt.wantFields, verr.Fields)
			}
			if s.Len() != 0 {
				t.Fatalf("expected cart untouched, got %d entries", s.Len())
			}
		})
	}
}

func TestSubmitDraftFlow(t *testing.T) {
	s := setupStore(t)

	must := func(name, value string) {
		t.Helper()
		if err := s.UpdateDraftField(name, value); err != nil {
			t.Fatalf("update %s: %v", name, err)
		}
	}

	must(domain.FieldDescription, "x")
	must(domain.FieldCourse, "main")
	must(domain.FieldPrice, "5")

	// Name still missing: draft must survive the failed submit.
	if _, err := s.SubmitDraft(); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected cart length 0, got %d", s.Len())
	}
	want := domain.Draft{Description: "x", Course: "main", Price: "5"}
	if s.Draft() != want {
		t.Fatalf("expected draft preserved, got %+v", s.Draft())
	}

	must(domain.FieldDishName, "Vetkoek")
	item, err := s.SubmitDraft()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !s.Draft().IsEmpty() {
		t.Fatalf("expected draft reset, got %+v", s.Draft())
	}

	// Editing the draft afterwards must not reach the committed entry.
	must(domain.FieldDishName, "Something else")
	if got := s.Items()[0]; got != item {
		t.Fatalf("committed entry changed: %+v", got)
	}
}

func TestUpdateDraftFieldUnknown(t *testing.T) {
	s := setupStore(t)
	if err := s.UpdateDraftField("colour", "red"); !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestTwoStepCustoms(t *testing.T) {
	s := setupStore(t, WithTwoStepCustoms())

	_, err := s.CommitCustomItem(domain.Draft{DishName: "Malva Pudding", Description: "Warm and sticky", Course: "Dessert", Price: "35"})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected dish held back from cart, got %d entries", s.Len())
	}
	if len(s.Customs()) != 1 {
		t.Fatalf("expected 1 custom, got %d", len(s.Customs()))
	}

	if _, err := s.AddCustomAt(0); err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if _, err := s.AddCustomAt(0); err != nil {
		t.Fatalf("add custom again: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, err := s.AddCustomAt(1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemoveCatalogAt(t *testing.T) {
	s := setupStore(t)

	if err := s.RemoveCatalogAt(0); err != nil {
		t.Fatalf("remove preset: %v", err)
	}
	cat := s.Catalog()
	if len(cat) != 2 || cat[0].DishName != carbonara.DishName {
		t.Fatalf("unexpected catalog: %+v", cat)
	}
	if err := s.RemoveCatalogAt(2); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestFilteredKeepsCanonicalIndex(t *testing.T) {
	s := setupStore(t)
	s.AddPreset(caesar)
	s.AddPreset(carbonara)
	s.AddPreset(cake)
	s.AddPreset(carbonara)

	if err := s.SetFilter("PASTA", ""); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	matches := s.Filtered()
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Index != 1 || matches[1].Index != 3 {
		t.Fatalf("expected indexes 1 and 3, got %d and %d", matches[0].Index, matches[1].Index)
	}

	// Filtering is a view: the selection itself is untouched.
	if s.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", s.Len())
	}

	if _, err := s.RemoveAt(matches[1].Index); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Filtered()) != 1 {
		t.Fatalf("expected 1 match after removal, got %d", len(s.Filtered()))
	}
}

func TestSetFilterRejectsUnknownCourse(t *testing.T) {
	s := setupStore(t)
	if err := s.SetFilter("", "Starter"); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if err := s.SetFilter("cake", "brunch"); !errors.Is(err, domain.ErrUnknownCourse) {
		t.Fatalf("expected ErrUnknownCourse, got %v", err)
	}
	if f := s.Filter(); f.Course != domain.CourseStarter || f.Text != "" {
		t.Fatalf("expected previous filter kept, got %+v", f)
	}
}

func TestPlaceOrderAllowed(t *testing.T) {
	s := setupStore(t)
	if s.PlaceOrderAllowed() {
		t.Fatal("expected empty cart to block ordering")
	}
	s.AddPreset(caesar)
	if !s.PlaceOrderAllowed() {
		t.Fatal("expected cart with a priced dish to allow ordering")
	}
}

func TestTotalReportsMalformedPrice(t *testing.T) {
	s := setupStore(t)
	s.AddPreset(domain.MenuItem{DishName: "Broken", Price: "twelve"})

	if _, err := s.Total(); !errors.Is(err, domain.ErrMalformedPrice) {
		t.Fatalf("expected ErrMalformedPrice, got %v", err)
	}
	if s.PlaceOrderAllowed() {
		t.Fatal("expected malformed cart to block ordering")
	}
}

func TestNewFromSource(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	s, err := NewFromSource(context.Background(), catalog.NewMemorySource(log), log)
	if err != nil {
		t.Fatalf("new from source: %v", err)
	}
	if len(s.Catalog()) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(s.Catalog()))
	}
}

func TestSubCentPricesSumExactly(t *testing.T) {
	s := setupStore(t)

	for i := 0; i < 3; i++ {
		item, err := s.CommitCustomItem(domain.Draft{DishName: "Mint", Description: "After dinner", Course: "dessert", Price: "0.005"})
		if err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
		if item.Price != "0.005" {
			t.Fatalf("price stored as %q, want 0.005", item.Price)
		}
	}

	total, err := s.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got := total.String(); got != "0.015" {
		t.Fatalf("exact total = %s, want 0.015", got)
	}
	if got := FormatTotal(total); got != "0.02" {
		t.Fatalf("formatted total = %s, want 0.02", got)
	}

	tiny := setupStore(t)
	if _, err := tiny.CommitCustomItem(domain.Draft{DishName: "Crumb", Description: "Almost free", Course: "starter", Price: "0.004"}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !tiny.PlaceOrderAllowed() {
		t.Fatal("a positive sub-cent price should allow ordering")
	}
}

func TestRemoveFilteredAt(t *testing.T) {
	s := setupStore(t)
	s.AddPreset(caesar)
	s.AddPreset(cake)
	s.AddPreset(carbonara)
	s.AddPreset(cake)

	if err := s.SetFilter("", "dessert"); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	before := s.Selection()

	removed, err := s.RemoveFilteredAt(1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.ID != before[3].ID {
		t.Fatalf("removed entry %s, want the second cake %s", removed.ID, before[3].ID)
	}
	if s.Len() != 3 || s.Selection()[1].ID != before[1].ID {
		t.Fatal("the other cake and the rest of the cart should be untouched")
	}

	if _, err := s.RemoveFilteredAt(1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	s := setupStore(t, WithTwoStepCustoms())
	s.AddPreset(caesar)
	s.AddPreset(carbonara)
	if err := s.SetFilter("pasta", ""); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if err := s.UpdateDraftField(domain.FieldDishName, "Soup"); err != nil {
		t.Fatalf("update draft: %v", err)
	}

	snap := s.Snapshot()
	if snap.Len != 2 || len(snap.Filtered) != 1 || snap.Filtered[0].Index != 1 {
		t.Fatalf("unexpected selection in snapshot: len=%d filtered=%+v", snap.Len, snap.Filtered)
	}
	if FormatTotal(snap.Total) != "180.98" || snap.TotalErr != nil {
		t.Fatalf("total = %s (err %v), want 180.98", FormatTotal(snap.Total), snap.TotalErr)
	}
	if !snap.PlaceOrderAllowed || snap.Draft.DishName != "Soup" || len(snap.Catalog) != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
