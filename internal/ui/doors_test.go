package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessdesk/internal/api"
	"accessdesk/internal/entity"
	"accessdesk/internal/qr"
)

// stubClient satisfies api.ClientInterface for model tests. Only the
// methods a test exercises are wired; the rest return zero values.
type stubClient struct {
	api.ClientInterface

	createDoorErr error
	createdDoors  []entity.Door
}

func (s *stubClient) CreateDoor(_ context.Context, door entity.Door) (entity.Door, error) {
	if s.createDoorErr != nil {
		return entity.Door{}, s.createDoorErr
	}
	s.createdDoors = append(s.createdDoors, door)
	return door, nil
}

func testDoorModel(client api.ClientInterface) doorModel {
	d := newDoorModel(client, DefaultTheme, DefaultKeyMap)
	d.setCompany(entity.Company{
		ID:        "comp-1",
		Name:      "Acme Corp",
		Locations: []string{"Main St", "Harbor Ave"},
	})
	d.mode = doorModeCreate
	return d
}

func (d *doorModel) fillForm(t *testing.T) {
	t.Helper()
	d.codeInput.SetValue("D200")
	d.roomInput.SetValue("Archive")
	d.selectLocation("Main St")
}

func TestDoorGenerateRequiresAllFields(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.codeInput.SetValue("D200")

	d, _, _ = d.generate()

	assert.Equal(t, "Please fill in all fields.", d.toast.text)
	assert.Equal(t, qr.StateEmpty, d.code.State())
}

func TestDoorGenerateProducesPayload(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.fillForm(t)

	d, _, _ = d.generate()

	require.Equal(t, qr.StateGenerated, d.code.State())
	assert.Equal(t, "D200", d.code.Payload())
}

func TestDoorEditInvalidatesGeneratedCode(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.fillForm(t)
	d, _, _ = d.generate()
	require.Equal(t, qr.StateGenerated, d.code.State())

	d.focus = focusDoorCode
	d.applyFocus()
	d, _, _ = d.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}, true)

	assert.Equal(t, qr.StateEmpty, d.code.State())
}

func TestDoorSaveDuplicateKeepsForm(t *testing.T) {
	d := testDoorModel(&stubClient{createDoorErr: api.ErrDoorCodeExists})
	d.fillForm(t)
	d, _, _ = d.generate()

	d, cmd, _ := d.persist()
	require.NotNil(t, cmd)
	d, _, _ = d.update(cmd(), true)

	assert.Equal(t, "Door code already exists. Please choose a different one.", d.toast.text)
	assert.Equal(t, doorModeCreate, d.mode)
	assert.Equal(t, "D200", d.codeInput.Value())
	assert.Equal(t, qr.StateGenerated, d.code.State(), "a rejected save leaves the code usable")
}

func TestDoorSaveSuccessReturnsToList(t *testing.T) {
	client := &stubClient{}
	d := testDoorModel(client)
	d.fillForm(t)
	d, _, _ = d.generate()

	d, cmd, _ := d.persist()
	require.NotNil(t, cmd)
	d, reload, _ := d.update(cmd(), true)

	assert.Equal(t, doorModeList, d.mode)
	assert.NotNil(t, reload, "the listing reloads after a save")
	require.Len(t, client.createdDoors, 1)
	assert.Equal(t, "D200", client.createdDoors[0].QRData)
	assert.Equal(t, "comp-1", client.createdDoors[0].Company)
}

func TestDoorSaveWithoutGenerate(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.fillForm(t)

	d, cmd, _ := d.persist()

	assert.Nil(t, cmd)
	assert.Equal(t, "Generate a QR Code first.", d.toast.text)
}

func TestLocationDeleteClearsSelectionAndRefreshesCompany(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.selectLocation("Main St")

	d, _, refresh := d.update(locationDeletedMsg{seq: d.seq, name: "Main St"}, true)

	assert.True(t, refresh)
	assert.Empty(t, d.selectedLocation)
	assert.Equal(t, []string{"Harbor Ave"}, d.company.Locations)
}

func TestLocationAddSelectsNewLocation(t *testing.T) {
	d := testDoorModel(&stubClient{})

	d, _, refresh := d.update(locationAddedMsg{seq: d.seq, name: "Pier 9"}, true)

	assert.True(t, refresh)
	assert.Equal(t, "Pier 9", d.selectedLocation)
	assert.Contains(t, d.company.Locations, "Pier 9")
}

func TestStaleDoorResponseDropped(t *testing.T) {
	d := testDoorModel(&stubClient{})
	d.seq = 3

	d, _, refresh := d.update(locationAddedMsg{seq: 2, name: "Old"}, true)

	assert.False(t, refresh)
	assert.NotContains(t, d.company.Locations, "Old")

	d, _, _ = d.update(doorsLoadedMsg{seq: 2, doors: []entity.Door{{DoorCode: "D9"}}}, true)
	assert.Empty(t, d.doors)
	assert.False(t, d.loaded)
}
