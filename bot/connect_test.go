package bot

import (
	"errors"
	"testing"

	"handin/command"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	openErr   error
	createErr error
	opened    bool
	closed    bool
	created   []string
}

func (f *fakeGateway) Open() error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *fakeGateway) Close() error {
	f.closed = true
	return nil
}

func (f *fakeGateway) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, guildID+"/"+cmd.Name)
	return cmd, nil
}

func testAppID() string { return "app" }

func TestConnect_RegistersPerGuild(t *testing.T) {
	gw := &fakeGateway{}
	require.NoError(t, connect(gw, testAppID, []string{"g1", "g2"}))

	assert.True(t, gw.opened)
	assert.False(t, gw.closed)
	assert.Len(t, gw.created, 2*len(command.AllCommands))
	assert.Contains(t, gw.created, "g2/submit")
}

func TestConnect_GlobalWithoutGuilds(t *testing.T) {
	gw := &fakeGateway{}
	require.NoError(t, connect(gw, testAppID, nil))
	assert.Contains(t, gw.created, "/start")
}

func TestConnect_ClosesSessionWhenRegistrationFails(t *testing.T) {
	boom := errors.New("missing access")
	gw := &fakeGateway{createErr: boom}

	err := connect(gw, testAppID, []string{"g1"})
	assert.ErrorIs(t, err, boom)
	assert.True(t, gw.opened)
	assert.True(t, gw.closed)
}

func TestConnect_OpenFailure(t *testing.T) {
	gw := &fakeGateway{openErr: errors.New("bad token")}

	assert.Error(t, connect(gw, testAppID, nil))
	assert.False(t, gw.closed)
	assert.Empty(t, gw.created)
}
