// Package shapelist keeps the side-panel listing of committed shapes.
package shapelist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inamate/planar/internal/shape"
)

// Panel lists shape descriptions in commit order. It satisfies editor.ShapeList.
type Panel struct {
	items []shape.Description
}

func New() *Panel {
	return &Panel{}
}

// Add appends d. A description with an ID already listed replaces it in place.
func (p *Panel) Add(d shape.Description) {
	if i := p.index(d.ID); i >= 0 {
		p.items[i] = d
		return
	}
	p.items = append(p.items, d)
}

// Remove drops the entry with the given ID, if any.
func (p *Panel) Remove(id string) {
	if i := p.index(id); i >= 0 {
		p.items = append(p.items[:i], p.items[i+1:]...)
	}
}

// Items returns a copy of the listed descriptions.
func (p *Panel) Items() []shape.Description {
	out := make([]shape.Description, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Panel) Len() int { return len(p.items) }

// Lines renders the panel as text: a numbered title per shape followed by its
// indented details.
func (p *Panel) Lines() []string {
	var lines []string
	for i, d := range p.items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, d.Title))
		for _, detail := range d.Details {
			lines = append(lines, "   "+detail)
		}
	}
	return lines
}

func (p *Panel) String() string {
	return strings.Join(p.Lines(), "\n")
}

// JSON serializes the listed descriptions for a host UI.
func (p *Panel) JSON() (string, error) {
	items := p.items
	if items == nil {
		items = []shape.Description{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]", fmt.Errorf("marshal shape list: %w", err)
	}
	return string(data), nil
}

func (p *Panel) index(id string) int {
	if id == "" {
		return -1
	}
	for i, d := range p.items {
		if d.ID == id {
			return i
		}
	}
	return -1
}
