package tracker

import (
	"strconv"
	"strings"
	"time"
)

const (
	msgSetupDone    = "Setup done."
	msgBadHours     = "Send correct hours count."
	msgUnable       = "Unable to handle the message. Type /help to see the usage."
	msgReset        = "Tracking reset. Type /help to set a new target."
	msgStartedWork  = "Started work at "
	msgWorkDone     = "Work done. "
	defaultHelpText = "These commands are supported:"
)

// Reply is a transport-free response descriptor. Actions, when present, are
// short command strings the transport should surface as a reply keyboard.
type Reply struct {
	Text    string
	Actions []string
}

func restingActions() []string { return []string{"/work", "/status"} }
func workingActions() []string { return []string{"/rest", "/status"} }

// Machine applies dialogue commands to sessions. It performs no I/O and
// never reads the clock itself; the caller supplies a single "now" per event.
type Machine struct {
	help string
}

// NewMachine builds a Machine. The help text is what /help replies with;
// an empty string falls back to a bare header.
func NewMachine(help string) *Machine {
	if strings.TrimSpace(help) == "" {
		help = defaultHelpText
	}
	return &Machine{help: help}
}

type transition func(m *Machine, s Session, now time.Time) (Session, Reply)

// transitions is the full behavioural contract: phase x command -> next
// session and reply. Anything not listed here falls through to the generic
// fallback reply with the session unchanged.
var transitions = map[Phase]map[Command]transition{
	PhaseStart: {
		CmdHelp:  (*Machine).showHelp,
		CmdReset: (*Machine).resetAll,
	},
	PhaseAwaitingTarget: {
		CmdReset: (*Machine).resetAll,
	},
	PhaseResting: {
		CmdWork:   (*Machine).startWork,
		CmdStatus: (*Machine).showStatus,
		CmdReset:  (*Machine).resetAll,
	},
	PhaseWorking: {
		CmdRest:   (*Machine).stopWork,
		CmdStatus: (*Machine).showStatus,
		CmdReset:  (*Machine).resetAll,
	},
}

// Command applies cmd to the session at the given instant.
func (m *Machine) Command(s Session, cmd Command, now time.Time) (Session, Reply) {
	s = s.normalized()
	if row, ok := transitions[s.Phase]; ok {
		if tr, ok := row[cmd]; ok {
			return tr(m, s, now)
		}
	}
	return s, Reply{Text: msgUnable}
}

// Text applies a free-text message. Only AwaitingTarget consumes text; a
// valid integer becomes the target hour count, anything else re-prompts.
func (m *Machine) Text(s Session, text string, now time.Time) (Session, Reply) {
	s = s.normalized()
	if s.Phase != PhaseAwaitingTarget {
		return s, Reply{Text: msgUnable}
	}
	hours, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return s, Reply{Text: msgBadHours}
	}
	next := Session{
		Phase:  PhaseResting,
		Target: time.Duration(hours) * time.Hour,
	}
	return next, Reply{Text: msgSetupDone, Actions: restingActions()}
}

func (m *Machine) showHelp(s Session, _ time.Time) (Session, Reply) {
	return Session{Phase: PhaseAwaitingTarget}, Reply{Text: m.help}
}

func (m *Machine) startWork(s Session, now time.Time) (Session, Reply) {
	next := Session{
		Phase:       PhaseWorking,
		Target:      s.Target,
		Accumulated: s.Accumulated,
		StartedAt:   now,
	}
	return next, Reply{
		Text:    msgStartedWork + now.UTC().Format(startedAtLayout),
		Actions: workingActions(),
	}
}

func (m *Machine) stopWork(s Session, now time.Time) (Session, Reply) {
	// The only place accumulated time is committed.
	next := Session{
		Phase:       PhaseResting,
		Target:      s.Target,
		Accumulated: s.Accumulated + now.Sub(s.StartedAt),
	}
	return next, Reply{
		Text:    msgWorkDone + formatDone(next.Accumulated, next.Target),
		Actions: restingActions(),
	}
}

func (m *Machine) showStatus(s Session, now time.Time) (Session, Reply) {
	total := s.Accumulated
	if s.Phase == PhaseWorking {
		// Projection only; never written back.
		total += now.Sub(s.StartedAt)
	}
	return s, Reply{Text: formatDone(total, s.Target)}
}

func (m *Machine) resetAll(s Session, _ time.Time) (Session, Reply) {
	return Session{Phase: PhaseStart}, Reply{Text: msgReset}
}
