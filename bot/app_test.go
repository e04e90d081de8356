package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpTextListsCommands(t *testing.T) {
	want := "These commands are supported:\n" +
		"/help — display this text.\n" +
		"/work — start tracking work.\n" +
		"/rest — stop tracking work.\n" +
		"/status — show current status.\n" +
		"/reset — reset working time."

	assert.Equal(t, want, helpText())
}

func TestBuildRegistry(t *testing.T) {
	app := &App{cfg: &Config{}}
	reg := app.buildRegistry()

	visible := reg.ListCommands(true)
	assert.Len(t, visible, len(commandSpecs))
	for i, spec := range commandSpecs {
		found := false
		for _, cmd := range visible {
			if cmd.Text == spec.name {
				assert.Equal(t, spec.description, cmd.Description, "command %d", i)
				found = true
			}
		}
		assert.True(t, found, "missing %s", spec.name)
	}

	// The stats command is registered but hidden from the menu.
	_, stats, ok := reg.LookupCommand("/stats")
	assert.True(t, ok)
	assert.True(t, stats.AdminOnly)
	assert.True(t, stats.Hidden)
}
