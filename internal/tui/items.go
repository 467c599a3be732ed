package tui

import (
	"github.com/DigitalPals/omarchy-cybex/internal/catalog"
	"github.com/DigitalPals/omarchy-cybex/internal/state"
)

type itemStatus int

const (
	statusPending itemStatus = iota
	statusInstalling
	statusInstalled
	statusFailed
)

type optionItem struct {
	opt      catalog.Option
	selected bool
	status   itemStatus
}

// optionList holds the per-option selection and status state for one
// screen. Items are ordered for display: grouped by the catalog's
// category order, catalog order within a category.
type optionList struct {
	items []optionItem
}

func newOptionList(cat *catalog.Catalog, installed state.Set) optionList {
	var items []optionItem
	added := make(map[string]bool)

	add := func(opt catalog.Option) {
		status := statusPending
		if installed.Has(opt.ID) {
			status = statusInstalled
		}
		items = append(items, optionItem{opt: opt, status: status})
		added[opt.ID] = true
	}

	for _, category := range cat.Categories {
		for _, opt := range cat.Options {
			if opt.Category == category && !added[opt.ID] {
				add(opt)
			}
		}
	}
	// Options whose category is missing from the display order still get
	// a row, after the ordered ones.
	for _, opt := range cat.Options {
		if !added[opt.ID] {
			add(opt)
		}
	}
	return optionList{items: items}
}

func (l *optionList) find(id string) *optionItem {
	for i := range l.items {
		if l.items[i].opt.ID == id {
			return &l.items[i]
		}
	}
	return nil
}

func (l *optionList) toggle(id string) {
	if item := l.find(id); item != nil {
		item.selected = !item.selected
	}
}

// selectAll selects every item, skipping those flagged excluded_from_all
// when excludeSpecial is true. Already-selected items are unaffected.
func (l *optionList) selectAll(excludeSpecial bool) {
	for i := range l.items {
		if excludeSpecial && l.items[i].opt.ExcludedFromAll {
			continue
		}
		l.items[i].selected = true
	}
}

func (l *optionList) deselectAll() {
	for i := range l.items {
		l.items[i].selected = false
	}
}

// selectedIDs returns the selected option IDs in display order.
func (l *optionList) selectedIDs() []string {
	var ids []string
	for _, item := range l.items {
		if item.selected {
			ids = append(ids, item.opt.ID)
		}
	}
	return ids
}

func (l *optionList) setStatus(id string, status itemStatus) {
	if item := l.find(id); item != nil {
		item.status = status
	}
}

// markInstalled flips an item to installed and clears its selection, so
// a freshly installed option does not remain staged.
func (l *optionList) markInstalled(id string) {
	if item := l.find(id); item != nil {
		item.status = statusInstalled
		item.selected = false
	}
}

// markUninstalled returns an item to pending. Unlike markInstalled it
// leaves the selection alone.
func (l *optionList) markUninstalled(id string) {
	if item := l.find(id); item != nil {
		item.status = statusPending
	}
}

func (l *optionList) selectedCount() int {
	count := 0
	for _, item := range l.items {
		if item.selected {
			count++
		}
	}
	return count
}
