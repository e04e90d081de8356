package tracker

import "time"

// Phase identifies a step of the work/rest dialogue.
type Phase string

const (
	// PhaseStart indicates no target has been set yet.
	PhaseStart Phase = "start"
	// PhaseAwaitingTarget indicates the bot is waiting for a target hour count.
	PhaseAwaitingTarget Phase = "awaiting_target"
	// PhaseResting indicates a target is set and the clock is not running.
	PhaseResting Phase = "resting"
	// PhaseWorking indicates the clock is running since StartedAt.
	PhaseWorking Phase = "working"
)

// Command is one of the dialogue commands surfaced to users as slash-commands.
type Command string

const (
	CmdHelp   Command = "help"
	CmdWork   Command = "work"
	CmdRest   Command = "rest"
	CmdStatus Command = "status"
	CmdReset  Command = "reset"
)

// Session holds the dialogue state for one conversation.
// The zero value is a fresh session in the Start phase.
//
// Target is fixed once set and carried unchanged until reset. Accumulated
// only grows, and only on the Working->Resting transition. StartedAt is
// meaningful only while Working.
type Session struct {
	Phase       Phase         `json:"phase"`
	Target      time.Duration `json:"target"`
	Accumulated time.Duration `json:"accumulated"`
	StartedAt   time.Time     `json:"started_at"`
}

// normalized maps the zero value onto an explicit Start phase so that
// sessions read back from external stores compare equal to fresh ones.
func (s Session) normalized() Session {
	if s.Phase == "" {
		s.Phase = PhaseStart
	}
	return s
}
