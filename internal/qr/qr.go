// Package qr manages the two-phase door QR flow: generate a preview from
// the door details, then persist the rendered code through the API. The
// payload is the door code verbatim; no encoding or checksum is added, the
// scanner side resolves the code against the API.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"accessdesk/internal/entity"
)

// Render parameters for the visual code.
const (
	imageSize = 200
	// Highest recovery level: door codes are short and the printed
	// sticker may be scuffed.
	recoveryLevel = qrcode.Highest
)

// State is the lifecycle position of a code.
type State int

const (
	// StateEmpty means no payload has been generated yet.
	StateEmpty State = iota
	// StateGenerated means a payload and image exist but nothing has
	// been persisted.
	StateGenerated
	// StatePersisted means the code was accepted by the API. Terminal.
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateGenerated:
		return "generated"
	case StatePersisted:
		return "persisted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrMissingDetails is returned when generation is attempted with
	// any of door code, room name, or location empty.
	ErrMissingDetails = errors.New("door code, room name and location are all required")
	// ErrNotGenerated guards persistence and download before a payload
	// exists.
	ErrNotGenerated = errors.New("no code has been generated")
	// ErrAlreadyPersisted guards regeneration of a saved code.
	ErrAlreadyPersisted = errors.New("code has already been persisted")
)

// Details are the three source fields a code is generated from.
type Details struct {
	DoorCode string
	RoomName string
	Location string
}

func (d Details) complete() bool {
	return d.DoorCode != "" && d.RoomName != "" && d.Location != ""
}

// Code is one door code moving through the lifecycle. The zero value is
// in StateEmpty.
type Code struct {
	state   State
	details Details
	payload string
	png     []byte
}

// State returns the current lifecycle position.
func (c *Code) State() State { return c.state }

// Details returns the source fields of the last generation.
func (c *Code) Details() Details { return c.details }

// Payload returns the generated payload, empty until generated.
func (c *Code) Payload() string { return c.payload }

// PNG returns the rendered image bytes, nil until generated.
func (c *Code) PNG() []byte { return c.png }

// Generate derives the payload and renders the image. It is a pure
// function of its details and may be called again from StateGenerated to
// regenerate; callers must re-invoke it whenever a source field changes
// (see Invalidate). Refused with ErrMissingDetails when any field is
// empty and with ErrAlreadyPersisted after persistence.
func (c *Code) Generate(d Details) error {
	if c.state == StatePersisted {
		return ErrAlreadyPersisted
	}
	if !d.complete() {
		return ErrMissingDetails
	}

	payload := d.DoorCode
	png, err := qrcode.Encode(payload, recoveryLevel, imageSize)
	if err != nil {
		return fmt.Errorf("render qr image: %w", err)
	}

	c.details = d
	c.payload = payload
	c.png = png
	c.state = StateGenerated
	return nil
}

// Invalidate drops a generated payload. The door page calls this when a
// source field changes so a stale code can never be persisted.
func (c *Code) Invalidate() {
	if c.state != StateGenerated {
		return
	}
	c.state = StateEmpty
	c.payload = ""
	c.png = nil
}

// DataURL returns the rendered image as a PNG data URL, the format the
// API stores alongside the door record.
func (c *Code) DataURL() (string, error) {
	if c.state == StateEmpty {
		return "", ErrNotGenerated
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.png), nil
}

// Terminal renders the code as half-block characters for on-screen
// preview.
func (c *Code) Terminal() (string, error) {
	if c.state == StateEmpty {
		return "", ErrNotGenerated
	}
	code, err := qrcode.New(c.payload, recoveryLevel)
	if err != nil {
		return "", fmt.Errorf("render qr preview: %w", err)
	}
	return code.ToSmallString(false), nil
}

// Door assembles the create-door payload for the API.
func (c *Code) Door(companyID string) (entity.Door, error) {
	if c.state != StateGenerated {
		if c.state == StatePersisted {
			return entity.Door{}, ErrAlreadyPersisted
		}
		return entity.Door{}, ErrNotGenerated
	}
	image, err := c.DataURL()
	if err != nil {
		return entity.Door{}, err
	}
	return entity.Door{
		DoorCode: c.details.DoorCode,
		RoomName: c.details.RoomName,
		Location: c.details.Location,
		QRData:   c.payload,
		QRImage:  image,
		Company:  companyID,
	}, nil
}

// MarkPersisted records that the API accepted the door. Requires
// StateGenerated; persistence is terminal.
func (c *Code) MarkPersisted() error {
	if c.state != StateGenerated {
		if c.state == StatePersisted {
			return ErrAlreadyPersisted
		}
		return ErrNotGenerated
	}
	c.state = StatePersisted
	return nil
}

// Filename is the export name for the rendered image.
func (c *Code) Filename(companyName string) string {
	return fmt.Sprintf("%s_%s_%s_QR.png", c.details.DoorCode, c.details.RoomName, companyName)
}

// WriteFile exports the rendered image into dir. Available any time
// after generation, independent of persistence.
func (c *Code) WriteFile(dir, companyName string) (string, error) {
	if c.state == StateEmpty {
		return "", ErrNotGenerated
	}
	path := filepath.Join(dir, c.Filename(companyName))
	if err := os.WriteFile(path, c.png, 0o644); err != nil {
		return "", fmt.Errorf("write qr image: %w", err)
	}
	return path, nil
}
