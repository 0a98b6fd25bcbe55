package store

import (
	"github.com/asaskevich/EventBus"
)

// Bus is the change-notification channel between stations. Events carry
// the writing station's name so a subscriber can skip its own writes,
// matching the storage-event semantics the legacy windows relied on
// (the event never fires in the window that wrote).
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) Publish(key, writer string) {
	b.bus.Publish("store:"+key, writer)
}

// Subscribe registers fn for changes to key. The same fn value must be
// passed to Unsubscribe.
func (b *Bus) Subscribe(key string, fn func(writer string)) error {
	return b.bus.Subscribe("store:"+key, fn)
}

func (b *Bus) Unsubscribe(key string, fn func(writer string)) error {
	return b.bus.Unsubscribe("store:"+key, fn)
}
