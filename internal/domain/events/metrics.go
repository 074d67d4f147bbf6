package events

// Recorder recibe los contadores del registro de eventos. Puede ser nil.
type Recorder interface {
	EventRecorded(kind string)
	EventRejected(kind, reason string)
}
