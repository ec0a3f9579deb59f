package usecase

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Input is a typed create or update payload that projects itself onto the
// entity's writable fields.
type Input interface {
	Record() (record.Record, error)
}

type ListQuery struct {
	Keyword string
	Page    int
	PerPage int
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// WriteHook observes a successful write. before is nil on create, after is
// nil on delete.
type WriteHook func(ctx context.Context, action string, before, after record.Record)

// PrepareUpdate may adjust the projected fields of an update given the
// current stored record.
type PrepareUpdate func(ctx context.Context, current, fields record.Record)

// CRUDService is the admin surface of one entity: validate the typed input,
// project it and hand it to the record store.
type CRUDService[C Input, U Input] struct {
	entity   string
	store    record.Store
	validate *validator.Validate
	logger   *logging.Logger

	prepareUpdate PrepareUpdate
	hooks         []WriteHook
}

func NewCRUDService[C Input, U Input](entity string, store record.Store, validate *validator.Validate, logger *logging.Logger) *CRUDService[C, U] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CRUDService[C, U]{
		entity:   entity,
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// OnWrite registers a hook. Call it while wiring, before serving traffic.
func (s *CRUDService[C, U]) OnWrite(hook WriteHook) {
	if hook != nil {
		s.hooks = append(s.hooks, hook)
	}
}

func (s *CRUDService[C, U]) BeforeUpdate(fn PrepareUpdate) {
	s.prepareUpdate = fn
}

func (s *CRUDService[C, U]) Entity() string {
	return s.entity
}

func (s *CRUDService[C, U]) List(ctx context.Context, q ListQuery) (record.Page[record.Record], error) {
	ctx, span := s.span(ctx, "List")
	defer span.End()

	page, err := s.store.Search(ctx, strings.TrimSpace(q.Keyword), q.Page, q.PerPage)
	if err != nil {
		return record.Page[record.Record]{}, s.storeError("list", err)
	}
	return page, nil
}

func (s *CRUDService[C, U]) Get(ctx context.Context, id int64) (record.Record, error) {
	ctx, span := s.span(ctx, "Get")
	defer span.End()

	return s.find(ctx, id)
}

func (s *CRUDService[C, U]) Create(ctx context.Context, in C) (record.Record, error) {
	ctx, span := s.span(ctx, "Create")
	defer span.End()

	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	fields, err := in.Record()
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", s.entity, err)
	}

	id, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, s.storeError("create", err)
	}

	created, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ActionCreated, nil, created)
	return created, nil
}

func (s *CRUDService[C, U]) Update(ctx context.Context, id int64, in U) (record.Record, error) {
	ctx, span := s.span(ctx, "Update")
	defer span.End()

	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	fields, err := in.Record()
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", s.entity, err)
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.prepareUpdate != nil {
		s.prepareUpdate(ctx, current, fields)
	}

	changed, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, s.storeError("update", err)
	}
	if !changed {
		// nothing writable in the payload, or the row vanished meanwhile
		return s.find(ctx, id)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ActionUpdated, current, updated)
	return updated, nil
}

func (s *CRUDService[C, U]) Delete(ctx context.Context, id int64) error {
	ctx, span := s.span(ctx, "Delete")
	defer span.End()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.storeError("delete", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s=%d", ErrNotFound, s.entity, id)
	}
	s.notify(ctx, ActionDeleted, current, nil)
	return nil
}

func (s *CRUDService[C, U]) find(ctx context.Context, id int64) (record.Record, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %s id must be greater than zero", ErrInvalidInput, s.entity)
	}
	rec, ok, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, s.storeError("get", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s=%d", ErrNotFound, s.entity, id)
	}
	return rec, nil
}

func (s *CRUDService[C, U]) check(ctx context.Context, in any) error {
	return validateStruct(ctx, s.validate, in)
}

func (s *CRUDService[C, U]) notify(ctx context.Context, action string, before, after record.Record) {
	for _, hook := range s.hooks {
		hook(ctx, action, before, after)
	}
}

func (s *CRUDService[C, U]) storeError(op string, err error) error {
	wrapped := fmt.Errorf("%s %s: %w", op, s.entity, err)
	switch {
	case database.IsUniqueViolation(err):
		return crerr.Mark(wrapped, ErrConflict)
	case crerr.Is(err, record.ErrInvalidField), crerr.Is(err, record.ErrNothingToWrite):
		return crerr.Mark(wrapped, ErrInvalidInput)
	default:
		return wrapped
	}
}

func (s *CRUDService[C, U]) span(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CRUDService."+op)
	span.SetAttributes(attribute.String("entity", s.entity))
	return ctx, span
}

// NewValidator reports field names by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func validateStruct(ctx context.Context, v *validator.Validate, in any) error {
	err := v.StructCtx(ctx, in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !crerr.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, "; "))
}
