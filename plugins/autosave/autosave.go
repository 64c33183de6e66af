package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/tide-actions/internal/action"
	"github.com/bethropolis/tide-actions/internal/event"
	"github.com/bethropolis/tide-actions/internal/logger"
	"github.com/bethropolis/tide-actions/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave plugin periodically saves user actions and hotkeys after they
// change, for sessions that run longer than a single command.
type AutoSave struct {
	api plugin.API // To interact with the application

	// Configuration
	mutex    sync.RWMutex // Protects access to the fields below
	enabled  bool
	interval time.Duration
	dirty    bool

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		// Initialize with defaults, config will override in Initialize
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

func (p *AutoSave) ModInfo() action.ModInfo {
	return action.ModInfo{ID: "autosave", Name: "Auto Save"}
}

// Initialize reads configuration, tracks changes and starts the saver loop
// if enabled.
func (p *AutoSave) Initialize(api plugin.API) error {
	p.api = api
	pluginName := p.Name()

	logger.Debugf("%s: Initializing...", pluginName)

	// --- Read Configuration ---
	p.mutex.Lock()

	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			if err != nil {
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			} else if parsedInterval <= 0 {
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			} else {
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}

	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	// --- Track Changes ---
	for _, t := range []event.Type{event.TypeActionRegistered, event.TypeActionRemoved, event.TypeActionExecuted} {
		api.SubscribeEvent(t, p.markDirty)
	}
	// a save by anyone else covers pending changes, and registrations up to
	// the startup load are what is already on disk
	api.SubscribeEvent(event.TypeActionsSaved, p.markClean)
	api.SubscribeEvent(event.TypeActionsLoaded, p.markClean)

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	// --- Start Saver Goroutine ---
	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown stops the saver goroutine and saves pending changes.
func (p *AutoSave) Shutdown() error {
	p.mutex.RLock()
	isEnabled := p.enabled
	p.mutex.RUnlock()

	if isEnabled && p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan)
		p.wg.Wait()
		return p.SaveIfModified()
	}
	return nil
}

func (p *AutoSave) markDirty(event.Event) bool {
	p.mutex.Lock()
	p.dirty = true
	p.mutex.Unlock()
	return false // Not consumed
}

func (p *AutoSave) markClean(event.Event) bool {
	p.mutex.Lock()
	p.dirty = false
	p.mutex.Unlock()
	return false
}

// saverLoop saves on every tick until stopped.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.SaveIfModified(); err != nil {
				logger.Errorf("%s: Auto-save failed: %v", p.Name(), err)
			}
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// SaveIfModified saves when anything changed since the last save.
func (p *AutoSave) SaveIfModified() error {
	p.mutex.Lock()
	dirty := p.dirty
	p.dirty = false
	p.mutex.Unlock()

	if !dirty {
		logger.DebugTagf("autosave", "Nothing changed, skipping auto-save.")
		return nil
	}
	if err := p.api.SaveActions(); err != nil {
		p.mutex.Lock()
		p.dirty = true
		p.mutex.Unlock()
		return err
	}
	logger.DebugTagf("autosave", "Auto-saved actions")
	return nil
}
