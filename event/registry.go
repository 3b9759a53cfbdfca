package event

import "strings"

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	register("EventGameReset", EventGameReset)
	register("EventPlayerDied", EventPlayerDied)
	register("EventWon", EventWon)
	register("EventMonsterKilled", EventMonsterKilled)
	register("EventStickyPurged", EventStickyPurged)
	register("EventTransformChanged", EventTransformChanged)
	register("EventBoxPushed", EventBoxPushed)
}

func register(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name, with or without the "Event" prefix
func GetEventType(name string) (EventType, bool) {
	if !strings.HasPrefix(name, "Event") {
		name = "Event" + name
	}
	et, ok := nameToType[name]
	return et, ok
}

func (et EventType) String() string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "EventUnknown"
}
