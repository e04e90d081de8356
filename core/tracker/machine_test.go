package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

func TestHelpMovesToAwaitingTarget(t *testing.T) {
	m := NewMachine("These commands are supported:")

	next, reply := m.Command(Session{}, CmdHelp, base)

	assert.Equal(t, PhaseAwaitingTarget, next.Phase)
	assert.Equal(t, "These commands are supported:", reply.Text)
	assert.Empty(t, reply.Actions)
}

func TestTargetParsing(t *testing.T) {
	m := NewMachine("")
	awaiting := Session{Phase: PhaseAwaitingTarget}

	next, reply := m.Text(awaiting, "8", base)
	require.Equal(t, PhaseResting, next.Phase)
	assert.Equal(t, 8*time.Hour, next.Target)
	assert.Equal(t, "Setup done.", reply.Text)
	assert.Equal(t, []string{"/work", "/status"}, reply.Actions)

	next, reply = m.Text(awaiting, "  12  ", base)
	require.Equal(t, PhaseResting, next.Phase)
	assert.Equal(t, 12*time.Hour, next.Target)

	for _, bad := range []string{"", "abc", "8h", "1.5", "eight"} {
		next, reply = m.Text(awaiting, bad, base)
		assert.Equal(t, awaiting, next, "input %q", bad)
		assert.Equal(t, "Send correct hours count.", reply.Text, "input %q", bad)
	}
}

func TestNegativeTargetAccepted(t *testing.T) {
	m := NewMachine("")

	next, reply := m.Text(Session{Phase: PhaseAwaitingTarget}, "-3", base)

	require.Equal(t, PhaseResting, next.Phase)
	assert.Equal(t, -3*time.Hour, next.Target)
	assert.Equal(t, "Setup done.", reply.Text)
}

func TestWorkRestAccrual(t *testing.T) {
	m := NewMachine("")
	resting := Session{Phase: PhaseResting, Target: 2 * time.Hour}

	working, reply := m.Command(resting, CmdWork, base)
	require.Equal(t, PhaseWorking, working.Phase)
	assert.Equal(t, base, working.StartedAt)
	assert.Equal(t, "Started work at 2026-08-29 09:00:00 UTC", reply.Text)
	assert.Equal(t, []string{"/rest", "/status"}, reply.Actions)

	next, reply := m.Command(working, CmdRest, base.Add(3661*time.Second))
	require.Equal(t, PhaseResting, next.Phase)
	assert.Equal(t, 3661*time.Second, next.Accumulated)
	assert.Equal(t, "Work done. Done 01:01:01 of 02:00:00", reply.Text)
	assert.Equal(t, []string{"/work", "/status"}, reply.Actions)
}

func TestAccrualSumsAcrossIntervals(t *testing.T) {
	m := NewMachine("")
	s := Session{Phase: PhaseResting, Target: 8 * time.Hour}

	s, _ = m.Command(s, CmdWork, base)
	s, _ = m.Command(s, CmdRest, base.Add(30*time.Minute))
	s, _ = m.Command(s, CmdWork, base.Add(time.Hour))
	s, reply := m.Command(s, CmdRest, base.Add(time.Hour+45*time.Minute))

	assert.Equal(t, 75*time.Minute, s.Accumulated)
	assert.Equal(t, "Work done. Done 01:15:00 of 08:00:00", reply.Text)
}

func TestStatusProjectionWhileWorking(t *testing.T) {
	m := NewMachine("")
	working := Session{
		Phase:       PhaseWorking,
		Target:      8 * time.Hour,
		Accumulated: time.Hour,
		StartedAt:   base,
	}

	next, reply := m.Command(working, CmdStatus, base.Add(5*time.Second))
	assert.Equal(t, working, next, "status must not mutate the session")
	assert.Equal(t, "Done 01:00:05 of 08:00:00", reply.Text)

	// Asking again later projects from the same start; nothing compounds.
	next, reply = m.Command(working, CmdStatus, base.Add(10*time.Second))
	assert.Equal(t, working, next)
	assert.Equal(t, "Done 01:00:10 of 08:00:00", reply.Text)
}

func TestStatusWhileResting(t *testing.T) {
	m := NewMachine("")
	resting := Session{Phase: PhaseResting, Target: 8 * time.Hour, Accumulated: 90 * time.Minute}

	next, reply := m.Command(resting, CmdStatus, base.Add(time.Hour))

	assert.Equal(t, resting, next)
	assert.Equal(t, "Done 01:30:00 of 08:00:00", reply.Text)
}

func TestUnhandledCommands(t *testing.T) {
	m := NewMachine("")
	cases := []struct {
		name string
		s    Session
		cmd  Command
	}{
		{"work before setup", Session{}, CmdWork},
		{"rest before setup", Session{}, CmdRest},
		{"status before setup", Session{}, CmdStatus},
		{"help while awaiting target", Session{Phase: PhaseAwaitingTarget}, CmdHelp},
		{"work while awaiting target", Session{Phase: PhaseAwaitingTarget}, CmdWork},
		{"rest while resting", Session{Phase: PhaseResting, Target: time.Hour}, CmdRest},
		{"work while working", Session{Phase: PhaseWorking, Target: time.Hour, StartedAt: base}, CmdWork},
		{"help while working", Session{Phase: PhaseWorking, Target: time.Hour, StartedAt: base}, CmdHelp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, reply := m.Command(tc.s, tc.cmd, base)
			assert.Equal(t, tc.s.normalized(), next)
			assert.Equal(t, "Unable to handle the message. Type /help to see the usage.", reply.Text)
		})
	}
}

func TestResetFromEveryPhase(t *testing.T) {
	m := NewMachine("")
	sessions := []Session{
		{},
		{Phase: PhaseAwaitingTarget},
		{Phase: PhaseResting, Target: 8 * time.Hour, Accumulated: time.Hour},
		{Phase: PhaseWorking, Target: 8 * time.Hour, Accumulated: time.Hour, StartedAt: base},
	}
	for _, s := range sessions {
		next, reply := m.Command(s, CmdReset, base.Add(time.Minute))
		assert.Equal(t, Session{Phase: PhaseStart}, next, "from %s", s.normalized().Phase)
		assert.Equal(t, "Tracking reset. Type /help to set a new target.", reply.Text)
	}
}

func TestTextOutsideAwaitingTarget(t *testing.T) {
	m := NewMachine("")
	for _, s := range []Session{
		{},
		{Phase: PhaseResting, Target: time.Hour},
		{Phase: PhaseWorking, Target: time.Hour, StartedAt: base},
	} {
		next, reply := m.Text(s, "8", base)
		assert.Equal(t, s.normalized(), next)
		assert.Equal(t, "Unable to handle the message. Type /help to see the usage.", reply.Text)
	}
}
