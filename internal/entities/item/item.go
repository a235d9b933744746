// Package item provides the data-only entry type stored by the inventory
// tooling. Behavior such as use effects or equipping lives elsewhere.
package item

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Kind groups items for display and filtering
type Kind string

// Known item kinds
const (
	KindMaterial   Kind = "material"
	KindConsumable Kind = "consumable"
	KindWeapon     Kind = "weapon"
	KindArmor      Kind = "armor"
	KindQuest      Kind = "quest"
	KindMisc       Kind = "misc"
)

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindMaterial, KindConsumable, KindWeapon, KindArmor, KindQuest, KindMisc:
		return true
	default:
		return false
	}
}

// Item is a value type, so every stack holds its own copy
type Item struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Kind        Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Countable   bool   `json:"countable" yaml:"countable" mapstructure:"countable"`
	MaxStack    int    `json:"max_stack,omitempty" yaml:"max_stack,omitempty" mapstructure:"max_stack"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// Compile-time checks
var (
	_ inventory.Entry = Item{}
	_ core.Entity     = (*inventory.Stack[Item])(nil)
)

// UniqueName returns the item name
func (i Item) UniqueName() string {
	return i.Name
}

// IsCountable reports whether the item stacks
func (i Item) IsCountable() bool {
	return i.Countable
}

// MaxCount returns the stack limit. Non-countable items hold one unit.
func (i Item) MaxCount() int {
	if !i.Countable {
		return 1
	}
	return i.MaxStack
}

// Validate checks the definition is usable as an inventory entry
func (i Item) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", i.Name, vb)
	if i.Kind != "" && !i.Kind.IsValid() {
		vb.InvalidField("kind", string(i.Kind))
	}
	if i.Countable {
		errors.ValidatePositive("max_stack", i.MaxStack, vb)
	}
	return vb.Build()
}

// Catalog indexes item definitions by name
type Catalog map[string]Item

// NewCatalog builds a catalog, rejecting invalid or duplicate definitions
func NewCatalog(items []Item) (Catalog, error) {
	catalog := make(Catalog, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid item %q", it.Name)
		}
		if _, dup := catalog[it.Name]; dup {
			return nil, errors.AlreadyExistsf("item %q defined twice", it.Name)
		}
		catalog[it.Name] = it
	}
	return catalog, nil
}

// Lookup returns the definition for name
func (c Catalog) Lookup(name string) (Item, error) {
	it, ok := c[name]
	if !ok {
		return Item{}, errors.NotFoundf("item %q is not in the catalog", name).
			WithMeta("item", name)
	}
	return it, nil
}
