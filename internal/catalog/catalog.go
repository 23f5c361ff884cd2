// Package catalog holds the rooms and equipment that can be booked.  The
// catalog is read from a JSON file keyed by room and then by equipment
// name, and written back whenever an administrator toggles availability.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// ErrNotFound is returned by Toggle for an unknown room or equipment.
var ErrNotFound = errors.New("catalog: equipment not found")

// entry is the on-disk form of one equipment item.
type entry struct {
	Enabled      bool   `json:"enabled"`
	SlotBased    bool   `json:"slot_based,omitempty"`
	UsageCounted bool   `json:"usage_counted,omitempty"`
	HorizonDays  int    `json:"horizon_days,omitempty"`
	Details      string `json:"details,omitempty"`
	Image        string `json:"image,omitempty"`
}

type file map[string]map[string]entry

// Room is one room with its equipment sorted by name.
type Room struct {
	Name      string            `json:"name"`
	Equipment []model.Equipment `json:"equipment"`
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	path  string
	rooms map[string][]model.Equipment
}

// Load reads the catalog stored at path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f) == 0 {
		return nil, fmt.Errorf("catalog %s defines no rooms", path)
	}
	c := &Catalog{path: path, rooms: make(map[string][]model.Equipment, len(f))}
	for room, items := range f {
		if room == "" {
			return nil, fmt.Errorf("catalog %s: empty room name", path)
		}
		list := make([]model.Equipment, 0, len(items))
		for name, it := range items {
			if name == "" {
				return nil, fmt.Errorf("catalog %s: empty equipment name in %q", path, room)
			}
			list = append(list, model.Equipment{
				Name:         name,
				Room:         room,
				SlotBased:    it.SlotBased,
				UsageCounted: it.UsageCounted,
				HorizonDays:  it.HorizonDays,
				Enabled:      it.Enabled,
				Details:      it.Details,
				Image:        it.Image,
			})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		c.rooms[room] = list
	}
	return c, nil
}

// New builds an in-memory catalog that is never written to disk.
func New(equipment ...model.Equipment) *Catalog {
	c := &Catalog{rooms: make(map[string][]model.Equipment)}
	for _, e := range equipment {
		c.rooms[e.Room] = append(c.rooms[e.Room], e)
	}
	for _, list := range c.rooms {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	return c
}

// Lookup returns the equipment called name in room.
func (c *Catalog) Lookup(room, name string) (model.Equipment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.rooms[room] {
		if e.Name == name {
			return e, true
		}
	}
	return model.Equipment{}, false
}

// Room returns a copy of the equipment in room.
func (c *Catalog) Room(room string) ([]model.Equipment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list, ok := c.rooms[room]
	if !ok {
		return nil, false
	}
	return append([]model.Equipment(nil), list...), true
}

// Rooms lists every room sorted by name.
func (c *Catalog) Rooms() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Room, 0, len(c.rooms))
	for name, list := range c.rooms {
		out = append(out, Room{Name: name, Equipment: append([]model.Equipment(nil), list...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Toggle flips the enabled flag of one item and persists the catalog.  If
// saving fails the change is reverted.
func (c *Catalog) Toggle(room, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.rooms[room]
	for i := range list {
		if list[i].Name != name {
			continue
		}
		list[i].Enabled = !list[i].Enabled
		if err := c.saveLocked(); err != nil {
			list[i].Enabled = !list[i].Enabled
			return list[i].Enabled, err
		}
		return list[i].Enabled, nil
	}
	return false, ErrNotFound
}

func (c *Catalog) saveLocked() error {
	if c.path == "" {
		return nil
	}
	f := make(file, len(c.rooms))
	for room, list := range c.rooms {
		items := make(map[string]entry, len(list))
		for _, e := range list {
			items[e.Name] = entry{
				Enabled:      e.Enabled,
				SlotBased:    e.SlotBased,
				UsageCounted: e.UsageCounted,
				HorizonDays:  e.HorizonDays,
				Details:      e.Details,
				Image:        e.Image,
			}
		}
		f[room] = items
	}
	b, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return err
	}
	// write-then-rename so readers never see a truncated file
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
