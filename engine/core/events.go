package core

import "sync"

type EventContext struct {
	Data struct {
		I64 [2]int64
		U64 [2]uint64
		F64 [2]float64

		U32 [4]uint32
		F32 [4]float32

		C [4]string
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next tick.
	EventCodeApplicationQuit SystemEventCode = 0x01

	// A world mutation phase changed the testable set.
	/* Context usage:
	 * u64 epoch = data.U64[0];
	 * u32 live  = data.U32[0];
	 */
	EventCodeWorldMutated SystemEventCode = 0x02

	// A level was (re)loaded into the world.
	/* Context usage:
	 * string name = data.C[0];
	 * u32 bodies  = data.U32[0];
	 * u32 lights  = data.U32[1];
	 */
	EventCodeLevelLoaded SystemEventCode = 0x03

	// An asset file changed on disk.
	/* Context usage:
	 * string path = data.C[0];
	 */
	EventCodeAssetChanged SystemEventCode = 0x04

	MaxEventCode SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MaxMessageCodes = 16384

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem dispatches events to registered listeners. It is an explicit
// value owned by the engine rather than package state.
type EventSystem struct {
	mu          sync.RWMutex
	initialized bool
	registered  map[SystemEventCode][]*registeredEvent
}

func NewEventSystem() *EventSystem {
	es := &EventSystem{}
	es.Initialize()
	return es
}

// Initialize (re)creates an empty listener table.
func (es *EventSystem) Initialize() {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.registered = make(map[SystemEventCode][]*registeredEvent)
	es.initialized = true
}

func (es *EventSystem) Shutdown() error {
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.initialized {
		return ErrEventSystemShutdown
	}
	es.registered = nil
	es.initialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can only register once per code; duplicates return false.
 */
func (es *EventSystem) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code >= MaxMessageCodes || onEvent == nil {
		return false
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.initialized {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener {
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

func (es *EventSystem) Unregister(code SystemEventCode, listener interface{}) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.initialized {
		return false
	}
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code in registration order. If a
 * handler returns true the event is considered handled and stops there.
 */
func (es *EventSystem) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	es.mu.RLock()
	if !es.initialized {
		es.mu.RUnlock()
		return false
	}
	events := make([]*registeredEvent, len(es.registered[code]))
	copy(events, es.registered[code])
	es.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			return true
		}
	}
	return false
}
