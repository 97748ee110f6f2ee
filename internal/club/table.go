package club

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Category groups clubs for the club-type hint.
type Category string

const (
	CategoryDriver Category = "driver"
	CategoryWood   Category = "wood"
	CategoryHybrid Category = "hybrid"
	CategoryIron   Category = "iron"
	CategoryWedge  Category = "wedge"
	CategoryPutter Category = "putter"
)

// Club is a single table entry. ID is the identifier callers use (it may be a
// bare loft number such as "7"); DisplayName is what gets shown.
type Club struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"displayName"`
	ReferenceDistance float64  `json:"referenceDistance"` // carry, yards
	Category          Category `json:"category,omitempty"`
}

// Name returns the display name, falling back to the ID.
func (c Club) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.ID
}

// Table is an ordered, immutable club list. The zero value is an empty table.
// A Table is never mutated after construction, so it can be shared by
// concurrent requests without locking.
type Table struct {
	clubs []Club
}

// NewTable copies clubs into a Table, rejecting duplicate IDs and
// non-finite or negative distances.
func NewTable(clubs []Club) (Table, error) {
	seen := make(map[string]struct{}, len(clubs))
	cp := make([]Club, 0, len(clubs))
	for i, c := range clubs {
		if c.ID == "" {
			return Table{}, fmt.Errorf("club at index %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return Table{}, fmt.Errorf("duplicate club id %q", c.ID)
		}
		if math.IsNaN(c.ReferenceDistance) || math.IsInf(c.ReferenceDistance, 0) || c.ReferenceDistance < 0 {
			return Table{}, fmt.Errorf("club %q has invalid reference distance %v", c.ID, c.ReferenceDistance)
		}
		seen[c.ID] = struct{}{}
		cp = append(cp, c)
	}
	return Table{clubs: cp}, nil
}

// MustTable is NewTable for static tables known to be valid.
func MustTable(clubs ...Club) Table {
	t, err := NewTable(clubs)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of clubs.
func (t Table) Len() int { return len(t.clubs) }

// Clubs returns a copy of the entries in table order.
func (t Table) Clubs() []Club {
	out := make([]Club, len(t.clubs))
	copy(out, t.clubs)
	return out
}

// Lookup finds a club by ID.
func (t Table) Lookup(id string) (Club, bool) {
	for _, c := range t.clubs {
		if c.ID == id {
			return c, true
		}
	}
	return Club{}, false
}

var defaultClubs = []Club{
	{ID: "driver", DisplayName: "Driver", ReferenceDistance: 230, Category: CategoryDriver},
	{ID: "3w", DisplayName: "3-wood", ReferenceDistance: 210, Category: CategoryWood},
	{ID: "5w", DisplayName: "5-wood", ReferenceDistance: 180, Category: CategoryWood},
	{ID: "3", DisplayName: "3-iron", ReferenceDistance: 170, Category: CategoryIron},
	{ID: "4", DisplayName: "4-iron", ReferenceDistance: 160, Category: CategoryIron},
	{ID: "5", DisplayName: "5-iron", ReferenceDistance: 150, Category: CategoryIron},
	{ID: "6", DisplayName: "6-iron", ReferenceDistance: 140, Category: CategoryIron},
	{ID: "7", DisplayName: "7-iron", ReferenceDistance: 130, Category: CategoryIron},
	{ID: "8", DisplayName: "8-iron", ReferenceDistance: 120, Category: CategoryIron},
	{ID: "9", DisplayName: "9-iron", ReferenceDistance: 110, Category: CategoryIron},
	{ID: "pw", DisplayName: "Pitching wedge", ReferenceDistance: 100, Category: CategoryWedge},
	{ID: "sw", DisplayName: "Sand wedge", ReferenceDistance: 80, Category: CategoryWedge},
	{ID: "lw", DisplayName: "Lob wedge", ReferenceDistance: 60, Category: CategoryWedge},
}

// DefaultTable returns the stock thirteen-club bag.
func DefaultTable() Table {
	return MustTable(defaultClubs...)
}

// LoadTable reads a JSON array of clubs from path.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading club table: %w", err)
	}
	var clubs []Club
	if err := json.Unmarshal(raw, &clubs); err != nil {
		return Table{}, fmt.Errorf("decoding club table %s: %w", path, err)
	}
	return NewTable(clubs)
}
