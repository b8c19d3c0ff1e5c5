package engine

// Stage describes which half of a run a progress event belongs to.
type Stage string

const (
	// StageScan covers parsing and rule checking.
	StageScan Stage = "scan"
	// StageFix covers batch fixing and writing.
	StageFix Stage = "fix"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting its turn.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusClean indicates the file finished without violations.
	StatusClean Status = "clean"
	// StatusDirty indicates the file finished with violations.
	StatusDirty Status = "dirty"
	// StatusFixed indicates violations were repaired.
	StatusFixed Status = "fixed"
	// StatusError indicates the file could not be processed.
	StatusError Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File       string
	Stage      Stage
	Status     Status
	Violations int
}

// ProgressSink consumes progress events. Implementations must tolerate
// concurrent calls; the engine publishes from its worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func publish(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
