package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"specshare/internal/logger"
	"specshare/internal/model"
	"specshare/internal/repository"
	"specshare/internal/shortid"
	"specshare/internal/specdoc"
	"specshare/internal/storage"
)

// MaxContentSize is the largest accepted content, in bytes.
const MaxContentSize = 1048576

const markdownContentType = "text/markdown; charset=utf-8"

var (
	ErrContentEmpty    = errors.New("content must not be empty")
	ErrContentTooLarge = fmt.Errorf("content exceeds maximum size of %d bytes", MaxContentSize)
	ErrNotFound        = errors.New("spec not found")
)

// newID is swapped in tests to force collisions.
var newID = shortid.New

var tracer = otel.Tracer("specshare/internal/service")

// CreateInput is the caller-supplied part of a new spec.
type CreateInput struct {
	Content string `json:"content"`
	Version string `json:"version"`
}

// Validate checks the content rules. Size is measured in bytes.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Content,
			validation.Required.ErrorObject(validation.NewError("content_required", ErrContentEmpty.Error())),
			validation.By(maxContentSize),
		),
	)
}

func maxContentSize(value interface{}) error {
	s, _ := value.(string)
	if len(s) > MaxContentSize {
		return ErrContentTooLarge
	}
	return nil
}

// SpecService defines the use cases for sharing specs.
type SpecService interface {
	// Create validates the content, derives title, summary and step count,
	// mints an id and stores the record. Nothing is written on failure.
	Create(ctx context.Context, in CreateInput) (*model.Spec, error)

	// Content returns the raw content of a stored spec.
	Content(ctx context.Context, id string) (string, error)

	// Get returns the full stored record.
	Get(ctx context.Context, id string) (*model.Spec, error)
}

type specService struct {
	repo    repository.SpecRepository
	archive storage.Storage
	log     logger.Logger
}

// NewSpecService constructs a SpecService. archive may be nil, in which case
// stored specs are not mirrored to object storage.
func NewSpecService(repo repository.SpecRepository, archive storage.Storage, log logger.Logger) SpecService {
	return &specService{repo: repo, archive: archive, log: log}
}

func (s *specService) Create(ctx context.Context, in CreateInput) (*model.Spec, error) {
	ctx, span := tracer.Start(ctx, "SpecService.Create",
		trace.WithAttributes(attribute.Int("spec.content_bytes", len(in.Content))))
	defer span.End()

	if err := validateInput(in); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	id, err := newID()
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("generate id: %w", err)
	}
	span.SetAttributes(attribute.String("spec.id", id))

	meta := specdoc.ParseFrontmatter(in.Content)
	spec := &model.Spec{
		ID:        id,
		Content:   in.Content,
		Title:     meta.Title,
		Summary:   meta.Description,
		StepCount: specdoc.CountSteps(in.Content),
		Version:   in.Version,
	}

	stored, err := s.repo.Create(ctx, spec)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("store spec: %w", err)
	}

	s.mirror(ctx, stored)
	return stored, nil
}

// mirror copies the content to object storage. The database row stays the
// source of truth, so failures are only logged.
func (s *specService) mirror(ctx context.Context, spec *model.Spec) {
	if s.archive == nil {
		return
	}
	key := path.Join("specs", spec.ID+".md")
	_, err := s.archive.Put(ctx, key, strings.NewReader(spec.Content), storage.PutObjectOptions{
		Size:        int64(len(spec.Content)),
		ContentType: markdownContentType,
		Metadata: map[string]string{
			"title":   spec.Title,
			"version": spec.Version,
		},
	})
	if err != nil {
		s.log.Warn("spec_archive_failed",
			logger.String("spec_id", spec.ID),
			logger.String("key", key),
			logger.Err(err),
		)
	}
}

func (s *specService) Content(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "SpecService.Content",
		trace.WithAttributes(attribute.String("spec.id", id)))
	defer span.End()

	if !shortid.Valid(id) {
		return "", ErrNotFound
	}
	content, err := s.repo.FindContent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		recordError(span, err)
		return "", err
	}
	return content, nil
}

func (s *specService) Get(ctx context.Context, id string) (*model.Spec, error) {
	ctx, span := tracer.Start(ctx, "SpecService.Get",
		trace.WithAttributes(attribute.String("spec.id", id)))
	defer span.End()

	if !shortid.Valid(id) {
		return nil, ErrNotFound
	}
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		recordError(span, err)
		return nil, err
	}
	return spec, nil
}

// validateInput maps validation failures onto the package sentinels.
func validateInput(in CreateInput) error {
	err := in.Validate()
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		if cerr, ok := verrs["content"]; ok && errors.Is(cerr, ErrContentTooLarge) {
			return ErrContentTooLarge
		}
		return ErrContentEmpty
	}
	return err
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
