package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentadmin/internal/models"
	"rentadmin/internal/store"

	"github.com/rs/zerolog"
)

// Mode distinguishes the two intents the single customer form serves.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Option is one selectable property in the form's dropdown.
type Option struct {
	ID    int64
	Label string
}

// State is the customer form in one of its two modes. Edit mode holds
// the id of the record being superseded; a reload or cancel drops back
// to create mode, since state lives only for the request.
type State struct {
	Mode        Mode
	EditID      int64
	Heading     string
	SubmitLabel string

	Name       string
	Contact    string
	Date       string
	PropertyID int64

	Options []Option
}

func optionLabel(title string, price float64, glyph string) string {
	return fmt.Sprintf("%s (%s%s)", title, glyph, models.FormatAmount(price))
}

// NewState builds the create-mode form. Only available properties are
// offered.
func NewState(props []models.Property, glyph string) *State {
	st := &State{
		Mode:        ModeCreate,
		Heading:     "Add Customer Details",
		SubmitLabel: "Save Details",
	}
	for _, p := range props {
		if !p.Available() {
			continue
		}
		st.Options = append(st.Options, Option{ID: p.ID, Label: optionLabel(p.Title, p.Price, glyph)})
	}
	return st
}

// EditState builds the edit-mode form for one billing record. The
// record's own property is rented (by the record itself), so it would
// be filtered out of the dropdown; it gets injected back as a
// selectable option.
func EditState(c models.Customer, props []models.Property, glyph string) *State {
	st := NewState(props, glyph)
	st.Mode = ModeEdit
	st.EditID = c.ID
	st.Heading = "Edit Customer Details"
	st.SubmitLabel = "Update Details"
	st.Name = c.Name
	st.Contact = c.Contact
	st.Date = c.Date
	st.PropertyID = c.PropertyID

	for _, opt := range st.Options {
		if opt.ID == c.PropertyID {
			return st
		}
	}
	st.Options = append(st.Options, Option{
		ID:    c.PropertyID,
		Label: optionLabel(c.Property, c.Price, glyph),
	})
	return st
}

// Input validates the form fields and produces the store payload.
func (s *State) Input() (models.CustomerInput, error) {
	if s.Name == "" {
		return models.CustomerInput{}, errors.New("tenant name is required")
	}
	if s.Contact == "" {
		return models.CustomerInput{}, errors.New("contact is required")
	}
	if s.PropertyID <= 0 {
		return models.CustomerInput{}, errors.New("a property must be selected")
	}
	if _, err := time.Parse(models.DateLayout, s.Date); err != nil {
		return models.CustomerInput{}, fmt.Errorf("invalid booking date %q", s.Date)
	}
	return models.CustomerInput{
		Name:       s.Name,
		Contact:    s.Contact,
		PropertyID: s.PropertyID,
		Date:       s.Date,
	}, nil
}

// Store is the slice of the record store the controller mutates.
type Store interface {
	CreateCustomer(ctx context.Context, input models.CustomerInput) error
	UpdateCustomer(ctx context.Context, id int64, input models.CustomerInput) error
	DeleteRecord(ctx context.Context, resource string, id int64) error
}

// Controller submits the customer form against the record store.
type Controller struct {
	store  Store
	logger zerolog.Logger
}

func NewController(st Store, logger *zerolog.Logger) *Controller {
	return &Controller{store: st, logger: *logger}
}

// Submit issues the mutation for the form's mode. Create mode is a
// single create call. Edit mode updates in place; against stores
// without an update operation it falls back to create-then-delete of
// the superseded record, create strictly first so a failure cannot
// drop the record.
func (c *Controller) Submit(ctx context.Context, st *State) error {
	input, err := st.Input()
	if err != nil {
		return err
	}

	if st.Mode != ModeEdit {
		return c.store.CreateCustomer(ctx, input)
	}

	err = c.store.UpdateCustomer(ctx, st.EditID, input)
	if !errors.Is(err, store.ErrUpdateUnsupported) {
		return err
	}

	c.logger.Warn().Int64("billing_id", st.EditID).
		Msg("store lacks update support, emulating via create and delete")

	if err := c.store.CreateCustomer(ctx, input); err != nil {
		return err
	}
	if err := c.store.DeleteRecord(ctx, models.ResourceBilling, st.EditID); err != nil {
		return fmt.Errorf("created replacement but failed to delete billing record %d: %w", st.EditID, err)
	}
	return nil
}
