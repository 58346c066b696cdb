package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
	"congregate/internal/export"
	"congregate/internal/storage"
)

// FileUpload carries an uploaded file through a service call.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// MemberService owns the member directory: category listings, barcode
// lookup, photograph handling, and CSV export.
type MemberService struct {
	members repositories.MemberRepository
	photos  storage.FileStore
	logger  *slog.Logger
}

// NewMemberService creates a new member service.
func NewMemberService(members repositories.MemberRepository, photos storage.FileStore, logger *slog.Logger) *MemberService {
	return &MemberService{members: members, photos: photos, logger: logger}
}

// List returns the members of a category, optionally filtered and sorted.
func (s *MemberService) List(ctx context.Context, q models.MemberQuery) ([]models.Member, error) {
	if q.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	return s.members.List(ctx, q)
}

// Add creates a member. When a photograph is supplied it is stored under the
// barcode-derived filename before the record is inserted; a failed file
// write aborts the whole operation.
func (s *MemberService) Add(ctx context.Context, fields models.MemberFields, photo *FileUpload) (*models.Member, error) {
	member, err := s.buildMember(fields)
	if err != nil {
		return nil, err
	}

	if photo != nil && photo.Name != "" {
		name, err := s.savePhoto(member.Barcode, photo)
		if err != nil {
			return nil, err
		}
		member.Photo = &name
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member added", "id", member.ID, "barcode", member.Barcode, "category", member.Category)

	return member, nil
}

// Update rewrites a member. A replacement photograph is stored under the
// post-update barcode; a photograph stored under a previous barcode is left
// behind, matching the established behavior (see DESIGN.md).
func (s *MemberService) Update(ctx context.Context, id string, fields models.MemberFields, photo *FileUpload) (*models.Member, error) {
	existing, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member, err := s.buildMember(fields)
	if err != nil {
		return nil, err
	}
	member.ID = existing.ID
	member.Photo = existing.Photo
	member.CreatedAt = existing.CreatedAt

	if photo != nil && photo.Name != "" {
		name, err := s.savePhoto(member.Barcode, photo)
		if err != nil {
			return nil, err
		}
		member.Photo = &name
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member updated", "id", member.ID, "barcode", member.Barcode)

	return member, nil
}

// Delete removes the member record. The photograph file is intentionally
// kept on disk for parity with the established behavior.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("member deleted", "id", id)
	return nil
}

// Get looks up a member by id.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	return s.members.GetByID(ctx, id)
}

// FindByBarcode looks up a member by exact barcode. ErrNotFound here is a
// valid scan outcome, not an internal failure.
func (s *MemberService) FindByBarcode(ctx context.Context, barcode string) (*models.Member, error) {
	return s.members.GetByBarcode(ctx, barcode)
}

// ExportCSV renders the selected columns for all members, or for one
// category when given.
func (s *MemberService) ExportCSV(ctx context.Context, cols []export.Column, category string) ([]byte, error) {
	var (
		members []models.Member
		err     error
	)
	if category != "" {
		members, err = s.members.List(ctx, models.MemberQuery{Category: models.NormalizeCategory(category)})
	} else {
		members, err = s.members.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	return export.RenderCSV(cols, members), nil
}

func (s *MemberService) buildMember(fields models.MemberFields) (*models.Member, error) {
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	member := &models.Member{
		FullName:   fields.FullName,
		Barcode:    fields.Barcode,
		Department: fields.Department,
		Assembly:   fields.Assembly,
		EntryType:  fields.EntryType,
		EntryYear:  fields.EntryYear,
		Category:   models.NormalizeCategory(fields.Category),
	}

	if fields.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", fields.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", domain.ErrValidation)
		}
		member.DateOfBirth = &dob
	}

	return member, nil
}

// savePhoto writes the photograph under the barcode-derived name,
// overwriting any file already stored there.
func (s *MemberService) savePhoto(barcode string, photo *FileUpload) (string, error) {
	ext := filepath.Ext(photo.Name)
	name := storage.SanitizeFilename(barcode + ext)
	if name == "" {
		return "", fmt.Errorf("%w: barcode does not yield a usable filename", domain.ErrValidation)
	}

	if err := s.photos.Save(name, photo.Content); err != nil {
		return "", err
	}

	return name, nil
}
