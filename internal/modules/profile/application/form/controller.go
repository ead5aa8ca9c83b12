package form

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"skyflyBff/internal/modules/profile/application/port"
	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/logging"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
)

var (
	ErrNotEditable = errors.New("profile form is not editable")
	ErrNotReady    = errors.New("profile form is not ready")
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-facing outcomes of a submission.
type Notifier interface {
	Notify(Notification)
}

// Notifications collects notifications in order.
type Notifications struct {
	items []Notification
}

func (n *Notifications) Notify(notification Notification) {
	n.items = append(n.items, notification)
}

func (n *Notifications) Items() []Notification {
	return append([]Notification(nil), n.items...)
}

// Controller drives one profile form: loading -> ready -> submitting -> ready.
// A Controller is owned by a single request and is not safe for concurrent use.
type Controller struct {
	gateway  port.ProfileGateway
	checker  auth.CredentialChecker
	notifier Notifier
	editable bool

	state       State
	values      domain.Record
	fieldErrors map[domain.Field]string
}

func NewController(gateway port.ProfileGateway, checker auth.CredentialChecker, notifier Notifier, editable bool) *Controller {
	if notifier == nil {
		notifier = &Notifications{}
	}
	return &Controller{
		gateway:     gateway,
		checker:     checker,
		notifier:    notifier,
		editable:    editable,
		state:       StateLoading,
		fieldErrors: map[domain.Field]string{},
	}
}

// Mount loads the caller's profile into the form. Without a token, or when
// the fetch fails, the form becomes ready with empty fields.
func (c *Controller) Mount(ctx context.Context, token string) {
	defer func() { c.state = StateReady }()

	if strings.TrimSpace(token) == "" {
		slog.Warn("profile form token not found")
		return
	}
	record, err := c.gateway.GetProfile(ctx, token)
	if err != nil {
		slog.Error("profile form fetch failed", logging.TokenAttr(token), slog.Any("error", err))
		return
	}
	c.values = record
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Editable() bool { return c.editable }

func (c *Controller) Values() domain.Record { return c.values }

func (c *Controller) FieldErrors() map[domain.Field]string {
	out := make(map[domain.Field]string, len(c.fieldErrors))
	for field, message := range c.fieldErrors {
		out[field] = message
	}
	return out
}

// ReadOnly reports whether field rejects edits. Email always does.
func (c *Controller) ReadOnly(field domain.Field) bool {
	return field == domain.FieldEmail || !c.editable
}

func (c *Controller) SetField(field domain.Field, value string) error {
	if _, err := domain.ParseField(string(field)); err != nil {
		return err
	}
	if c.ReadOnly(field) {
		return domain.ErrReadOnlyField
	}
	values, err := c.values.With(field, value)
	if err != nil {
		return err
	}
	c.values = values
	delete(c.fieldErrors, field)
	return nil
}

// Submit validates the form and sends it with token. Every outcome other
// than ErrNotEditable and ErrNotReady is reported through the notifier or
// as field errors.
func (c *Controller) Submit(ctx context.Context, token string) error {
	if !c.editable {
		return ErrNotEditable
	}
	if c.state != StateReady {
		return ErrNotReady
	}
	if err := c.checker.Check(token); err != nil {
		slog.Warn("profile form rejected credentials", logging.TokenAttr(token), slog.Any("error", err))
		c.notify(LevelError, auth.CredentialMessage)
		return nil
	}

	validation := domain.Validate(c.values)
	c.fieldErrors = validation.FieldErrors
	if !validation.Valid {
		slog.Info("profile form invalid", slog.Int("fieldErrors", len(validation.FieldErrors)))
		return nil
	}

	c.state = StateSubmitting
	defer func() { c.state = StateReady }()

	result := c.gateway.EditProfile(ctx, token, c.values.Update())
	if !result.IsOk() {
		c.notify(LevelError, result.Message())
		return nil
	}

	var response domain.UpdateResponse
	if err := json.Unmarshal(result.Body(), &response); err != nil {
		slog.Error("profile form update response undecodable", slog.Any("error", err))
		c.notify(LevelError, rest.UnexpectedErrorMessage)
		return nil
	}
	if response.Status {
		c.notify(LevelSuccess, response.Message)
	} else {
		c.notify(LevelError, response.Message)
	}
	return nil
}

func (c *Controller) notify(level Level, message string) {
	c.notifier.Notify(Notification{Level: level, Message: message})
}
