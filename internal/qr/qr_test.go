package qr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lobby = Details{DoorCode: "D101", RoomName: "Lobby", Location: "Main St"}

func TestGenerateRequiresAllDetails(t *testing.T) {
	tests := []struct {
		name string
		d    Details
	}{
		{"missing door code", Details{RoomName: "Lobby", Location: "Main St"}},
		{"missing room name", Details{DoorCode: "D101", Location: "Main St"}},
		{"missing location", Details{DoorCode: "D101", RoomName: "Lobby"}},
		{"all empty", Details{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Code
			err := c.Generate(tt.d)
			assert.ErrorIs(t, err, ErrMissingDetails)
			assert.Equal(t, StateEmpty, c.State())
			assert.Empty(t, c.Payload())
		})
	}
}

func TestGeneratePayloadIsDoorCode(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))
	assert.Equal(t, StateGenerated, c.State())
	assert.Equal(t, "D101", c.Payload())
	assert.NotEmpty(t, c.PNG())
}

func TestInvalidateDropsGeneratedPayload(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))
	c.Invalidate()
	assert.Equal(t, StateEmpty, c.State())
	assert.Empty(t, c.Payload())
	assert.Nil(t, c.PNG())

	_, err := c.DataURL()
	assert.ErrorIs(t, err, ErrNotGenerated)
}

func TestGenerateIsRepeatable(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))
	changed := lobby
	changed.DoorCode = "D102"
	require.NoError(t, c.Generate(changed))
	assert.Equal(t, "D102", c.Payload())
}

func TestDoorPayload(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))

	door, err := c.Door("comp-1")
	require.NoError(t, err)
	assert.Equal(t, "D101", door.DoorCode)
	assert.Equal(t, "Lobby", door.RoomName)
	assert.Equal(t, "Main St", door.Location)
	assert.Equal(t, "D101", door.QRData)
	assert.Equal(t, "comp-1", door.Company)
	assert.True(t, strings.HasPrefix(door.QRImage, "data:image/png;base64,"))
}

func TestDoorRequiresGeneration(t *testing.T) {
	var c Code
	_, err := c.Door("comp-1")
	assert.ErrorIs(t, err, ErrNotGenerated)
}

func TestPersistIsTerminal(t *testing.T) {
	var c Code
	assert.ErrorIs(t, c.MarkPersisted(), ErrNotGenerated)

	require.NoError(t, c.Generate(lobby))
	require.NoError(t, c.MarkPersisted())
	assert.Equal(t, StatePersisted, c.State())

	assert.ErrorIs(t, c.MarkPersisted(), ErrAlreadyPersisted)
	assert.ErrorIs(t, c.Generate(lobby), ErrAlreadyPersisted)
}

func TestWriteFile(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))

	dir := t.TempDir()
	path, err := c.WriteFile(dir, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "D101_Lobby_Acme Corp_QR.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.PNG(), data)
}

func TestWriteFileBeforeGeneration(t *testing.T) {
	var c Code
	_, err := c.WriteFile(t.TempDir(), "Acme Corp")
	assert.ErrorIs(t, err, ErrNotGenerated)
}

// Download remains available after persistence.
func TestWriteFileAfterPersist(t *testing.T) {
	var c Code
	require.NoError(t, c.Generate(lobby))
	require.NoError(t, c.MarkPersisted())

	_, err := c.WriteFile(t.TempDir(), "Acme Corp")
	assert.NoError(t, err)
}
