package pipeline

import (
    "sync"

    "trackit/internal/provider"
)

// Dashboard holds one view per asset class and tracks the active one.
// Each view keeps its own state across toggles.
type Dashboard struct {
    mu     sync.RWMutex
    views  []*View
    active int
}

// NewDashboard returns a dashboard over views; the first one is active.
func NewDashboard(views ...*View) *Dashboard {
    return &Dashboard{views: views}
}

// Active returns the active view, or nil when the dashboard is empty.
func (d *Dashboard) Active() *View {
    d.mu.RLock()
    defer d.mu.RUnlock()
    if len(d.views) == 0 {
        return nil
    }
    return d.views[d.active]
}

// Toggle activates the next view and returns it.
func (d *Dashboard) Toggle() *View {
    d.mu.Lock()
    defer d.mu.Unlock()
    if len(d.views) == 0 {
        return nil
    }
    d.active = (d.active + 1) % len(d.views)
    return d.views[d.active]
}

// Activate makes the view for class active. It reports false when no view
// serves class.
func (d *Dashboard) Activate(class provider.AssetClass) (*View, bool) {
    d.mu.Lock()
    defer d.mu.Unlock()
    for i, v := range d.views {
        if v.Class() == class {
            d.active = i
            return v, true
        }
    }
    return nil, false
}
