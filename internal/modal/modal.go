// Package modal drives the property detail modal: which tab is open, the
// per-tab save into the catalog's edit overlays and the transient banner
// shown after a save.
package modal

import (
	"errors"
	"fmt"
	"time"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/form"
)

// States of the modal. An open modal is in the state of its active tab.
const (
	StateClosed = "closed"
	TabContract = form.TabContract
	TabProperty = form.TabProperty
	TabLandlord = form.TabLandlord
)

// BannerDelay is how long a banner stays visible.
const BannerDelay = 3 * time.Second

// Banner is a transient success or error indicator.
type Banner struct {
	Kind      string    `json:"kind"` // "success" or "error"
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Visible reports whether the banner is still shown at now.
func (b Banner) Visible(now time.Time) bool { return now.Before(b.ExpiresAt) }

// SaveResult is the outcome of a tab save.
type SaveResult struct {
	Values  map[string]string `json:"values"`
	Invalid map[string]string `json:"invalid,omitempty"`
	Banner  Banner            `json:"banner"`
}

// SaveTab trims values, validates them against the tab's rule table and,
// when every field passes, writes them into the tab's overlay for
// propertyID. On a
// validation failure nothing is written and Invalid marks each bad field.
// The returned error is non-nil only for unknown tabs or properties.
func SaveTab(store *catalog.Store, propertyID, tab string, values map[string]string, now time.Time) (SaveResult, error) {
	rules, ok := form.Tabs[tab]
	if !ok {
		return SaveResult{}, fmt.Errorf("unknown tab %q", tab)
	}
	if _, ok := store.Property(propertyID); !ok {
		return SaveResult{}, fmt.Errorf("saving %s tab of %s: %w", tab, propertyID, catalog.ErrNotFound)
	}
	clean := make(map[string]string, len(rules))
	for _, f := range rules.Fields() {
		clean[f] = values[f]
	}
	clean = form.Trim(clean)
	res := SaveResult{Values: clean}
	if verr := rules.Validate(clean); verr != nil {
		res.Invalid = verr.Fields
		res.Banner = Banner{Kind: "error", Message: "Corrija os campos destacados antes de salvar.", ExpiresAt: now.Add(BannerDelay)}
		return res, nil
	}
	if err := store.SaveEdit(propertyID, tab, clean); err != nil {
		return SaveResult{}, err
	}
	res.Banner = Banner{Kind: "success", Message: "Alterações salvas com sucesso.", ExpiresAt: now.Add(BannerDelay)}
	return res, nil
}

// ErrClosed is returned by operations that need an open modal.
var ErrClosed = errors.New("modal is closed")

// Controller is the state of one operator's modal. It is not safe for
// concurrent use.
type Controller struct {
	store      *catalog.Store
	now        func() time.Time
	state      string
	propertyID string
	invalid    map[string]string
	banner     *Banner
}

// NewController returns a closed modal over store. A nil clock uses
// time.Now.
func NewController(store *catalog.Store, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{store: store, now: clock, state: StateClosed}
}

// View is a snapshot of the modal for rendering.
type View struct {
	State      string            `json:"state"`
	PropertyID string            `json:"property_id,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
	Invalid    map[string]string `json:"invalid,omitempty"`
	Banner     *Banner           `json:"banner,omitempty"`
}

// Open shows the modal for propertyID on the contract tab. An unknown id
// fails with catalog.ErrNotFound and leaves the controller untouched.
func (c *Controller) Open(propertyID string) (View, error) {
	if _, ok := c.store.Property(propertyID); !ok {
		return c.View(), fmt.Errorf("opening %s: %w", propertyID, catalog.ErrNotFound)
	}
	if c.state != StateClosed {
		c.Close()
	}
	if err := validateTransition(c.state, TabContract); err != nil {
		return c.View(), err
	}
	c.state = TabContract
	c.propertyID = propertyID
	return c.View(), nil
}

// SwitchTab activates another tab of the open modal. Field marks from a
// previous failed save are cleared.
func (c *Controller) SwitchTab(tab string) (View, error) {
	if c.state == StateClosed {
		return c.View(), ErrClosed
	}
	if err := validateTransition(c.state, tab); err != nil {
		return c.View(), err
	}
	c.state = tab
	c.invalid = nil
	return c.View(), nil
}

// Close returns to the closed state from any state.
func (c *Controller) Close() View {
	c.state = StateClosed
	c.propertyID = ""
	c.invalid = nil
	c.banner = nil
	return c.View()
}

// Escape handles the Escape key; it always closes the modal.
func (c *Controller) Escape() View { return c.Close() }

// Backdrop handles a click outside the dialog; it always closes the modal.
func (c *Controller) Backdrop() View { return c.Close() }

// Save validates and stores the active tab.
func (c *Controller) Save(values map[string]string) (View, error) {
	if c.state == StateClosed {
		return c.View(), ErrClosed
	}
	res, err := SaveTab(c.store, c.propertyID, c.state, values, c.now())
	if err != nil {
		return c.View(), err
	}
	c.invalid = res.Invalid
	c.banner = &res.Banner
	v := c.View()
	if len(res.Invalid) > 0 {
		v.Values = res.Values
	}
	return v, nil
}

// View renders the current state. Values come from the overlay or the
// underlying records; an expired banner is dropped.
func (c *Controller) View() View {
	v := View{State: c.state, PropertyID: c.propertyID, Invalid: c.invalid}
	if c.banner != nil {
		if c.banner.Visible(c.now()) {
			b := *c.banner
			v.Banner = &b
		} else {
			c.banner = nil
		}
	}
	if c.state != StateClosed {
		if vals, err := c.store.EditValues(c.propertyID, c.state); err == nil {
			v.Values = vals
		}
	}
	return v
}
