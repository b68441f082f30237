package cuelist

import (
	"sync"

	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/rhythm"
	"github.com/sirupsen/logrus"
)

// Handler reacts to fired cues.
type Handler interface {
	HandleCue(c *Cue) error
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(c *Cue) error

func (f HandlerFunc) HandleCue(c *Cue) error {
	return f(c)
}

// occurrence identifies one firing of a cue. Loop steps repeat, so the time is part of the key.
type occurrence struct {
	source string
	name   string
	kind   Kind
	time   float64
}

// Master scans every cue source with each tick's window and hands the crossed cues to the handlers.
type Master struct {
	sources   []Source
	handlers  []Handler
	currentID int64
	idLock    sync.Mutex

	// occurrences seen by the last processed window
	last    rhythm.TimeWindow
	hasLast bool
	seen    map[occurrence]struct{}

	processed int
}

// InitializeMaster initializes the Cue List Master
func InitializeMaster() *Master {
	return &Master{
		currentID: 1,
		seen:      map[occurrence]struct{}{},
	}
}

func (clm *Master) getNextIDForUse() int64 {
	clm.idLock.Lock()
	defer clm.idLock.Unlock()

	id := clm.currentID
	clm.currentID++
	return id
}

// AddCueList registers a cue list and gives its cues IDs.
func (clm *Master) AddCueList(cl *CueList) {
	for _, c := range cl.Cues {
		clm.AddIDs(c)
	}
	clm.AddSource(cl)
}

// AddSource registers a source of cues. Cues produced on the fly get IDs as they fire.
func (clm *Master) AddSource(s Source) {
	clm.sources = append(clm.sources, s)
}

func (clm *Master) AddHandler(h Handler) {
	clm.handlers = append(clm.handlers, h)
}

// AddIDs populates the ID field on a cue
func (clm *Master) AddIDs(c *Cue) {
	if c.ID == 0 {
		c.ID = clm.getNextIDForUse()
	}
}

// Processed returns the number of cues fired so far.
func (clm *Master) Processed() int {
	return clm.processed
}

// Process fires every cue crossed by the window exactly once and returns them. When the window
// starts where the previous one ended, cues already fired on the shared boundary are skipped.
func (clm *Master) Process(w rhythm.TimeWindow) []*Cue {
	contiguous := clm.hasLast && clm.last.Current == w.Previous
	seen := make(map[occurrence]struct{}, len(clm.seen))

	var fired []*Cue
	for _, s := range clm.sources {
		for _, c := range s.Due(w) {
			key := occurrence{source: s.Name(), name: c.Name, kind: c.Kind, time: c.Time}
			seen[key] = struct{}{}
			if _, ok := clm.seen[key]; ok && contiguous {
				continue
			}
			clm.AddIDs(c)
			clm.ProcessCue(c)
			fired = append(fired, c)
		}
	}

	clm.last = w
	clm.hasLast = true
	clm.seen = seen
	return fired
}

// ProcessCue hands a cue to every handler. Handler errors are logged and do not stop the others.
func (clm *Master) ProcessCue(c *Cue) {
	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"cue_id": c.ID, "cue_name": c.Name, "kind": c.Kind, "position": c.Time}).Debug("ProcessCue")

	clm.processed++
	for _, h := range clm.handlers {
		if err := h.HandleCue(c); err != nil {
			logger.WithFields(logrus.Fields{"cue_id": c.ID, "cue_name": c.Name}).Errorf("Cue handler failed: %v", err)
		}
	}
}
