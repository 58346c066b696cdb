package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
)

func newDocumentFixture() (*DocumentService, *fakeDocumentRepo, *fakeFolderRepo, *fakeFileStore) {
	documents := &fakeDocumentRepo{}
	folders := &fakeFolderRepo{}
	files := newFakeFileStore()
	svc := NewDocumentService(documents, folders, files, discardLogger())
	return svc, documents, folders, files
}

func TestUploadSanitizesFilename(t *testing.T) {
	svc, _, _, files := newDocumentFixture()

	doc, err := svc.Upload(context.Background(), FileUpload{
		Name:    "../etc/easter sermon!.txt",
		Content: strings.NewReader("He is risen"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "easter_sermon_.txt", doc.Filename)
	assert.Equal(t, []byte("He is risen"), files.files["easter_sermon_.txt"])
}

func TestUploadRequiresFile(t *testing.T) {
	svc, _, _, _ := newDocumentFixture()

	_, err := svc.Upload(context.Background(), FileUpload{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadValidatesFolder(t *testing.T) {
	svc, _, folders, _ := newDocumentFixture()
	ctx := context.Background()

	_, err := svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("x")}, strPtr("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	folder := &models.Folder{Name: "Sermons"}
	require.NoError(t, folders.Create(ctx, folder))

	doc, err := svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("x")}, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.FolderID)
	assert.Equal(t, folder.ID, *doc.FolderID)

	// Empty folder id files the document at no folder at all.
	loose, err := svc.Upload(ctx, FileUpload{Name: "b.txt", Content: strings.NewReader("y")}, strPtr(""))
	require.NoError(t, err)
	assert.Nil(t, loose.FolderID)
}

func TestUploadRejectsDuplicateFilename(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	_, err := svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("content A")}, nil)
	require.NoError(t, err)

	// The duplicate is rejected before any file write; the existing
	// document's backing file must come through untouched.
	_, err = svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("content B")}, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	docs, err := documents.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, []byte("content A"), files.files["a.txt"])
}

func TestUploadRemovesFileWhenInsertFails(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	documents.createErr = errors.New("insert failed")

	_, err := svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("x")}, nil)
	require.Error(t, err)

	// No record, no file.
	assert.NotContains(t, files.files, "a.txt")
}

func TestRenameDocumentKeepsExtension(t *testing.T) {
	svc, _, _, files := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "minutes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, doc.ID, models.RenameDocumentRequest{Name: "april minutes"})
	require.NoError(t, err)
	assert.Equal(t, "april_minutes.txt", renamed.Filename)
	assert.Contains(t, files.files, "april_minutes.txt")
	assert.NotContains(t, files.files, "minutes.txt")
}

func TestRenameDocumentRejectsTakenFilename(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	a, err := svc.Upload(ctx, FileUpload{Name: "a.txt", Content: strings.NewReader("content A")}, nil)
	require.NoError(t, err)
	b, err := svc.Upload(ctx, FileUpload{Name: "b.txt", Content: strings.NewReader("content B")}, nil)
	require.NoError(t, err)

	// Renaming B onto A's filename must fail before the filesystem is
	// touched; otherwise the rename would clobber A's backing file.
	_, err = svc.Rename(ctx, b.ID, models.RenameDocumentRequest{Name: "a"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, []byte("content A"), files.files["a.txt"])
	assert.Equal(t, []byte("content B"), files.files["b.txt"])

	gotA, err := documents.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", gotA.Filename)
	gotB, err := documents.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", gotB.Filename)
}

func TestRenameDocumentNoopOnSameName(t *testing.T) {
	svc, documents, _, _ := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "minutes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	documents.renameErr = errors.New("must not be called")
	got, err := svc.Rename(ctx, doc.ID, models.RenameDocumentRequest{Name: "minutes"})
	require.NoError(t, err)
	assert.Equal(t, "minutes.txt", got.Filename)
}

func TestRenameDocumentStorageFailureLeavesRecord(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "minutes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	files.renameErr = &domain.StorageError{Op: "rename", Filename: "minutes.txt", Cause: errors.New("disk gone")}

	_, err = svc.Rename(ctx, doc.ID, models.RenameDocumentRequest{Name: "april"})
	assert.ErrorIs(t, err, domain.ErrStorage)

	// Record untouched, file untouched.
	got, err := documents.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "minutes.txt", got.Filename)
	assert.Contains(t, files.files, "minutes.txt")
}

func TestRenameDocumentRecordFailureUndoesFileMove(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "minutes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	documents.renameErr = errors.New("record update failed")

	_, err = svc.Rename(ctx, doc.ID, models.RenameDocumentRequest{Name: "april"})
	require.Error(t, err)

	assert.Contains(t, files.files, "minutes.txt")
	assert.NotContains(t, files.files, "april.txt")
}

func TestDeleteDocumentToleratesMissingFile(t *testing.T) {
	svc, documents, _, files := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "minutes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	// File vanished out of band; the record must still be removable.
	delete(files.files, "minutes.txt")

	require.NoError(t, svc.Delete(ctx, doc.ID))
	_, err = documents.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentReadsText(t *testing.T) {
	svc, _, _, _ := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "notes.txt", Content: strings.NewReader("line one\nline two")}, nil)
	require.NoError(t, err)

	content, err := svc.Content(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content.Content)
	assert.Empty(t, content.Warning)
}

func TestContentWarnsInsteadOfFailing(t *testing.T) {
	svc, _, _, files := newDocumentFixture()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, FileUpload{Name: "notes.txt", Content: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	t.Run("unreadable file", func(t *testing.T) {
		delete(files.files, "notes.txt")
		content, err := svc.Content(ctx, doc.ID)
		require.NoError(t, err)
		assert.Empty(t, content.Content)
		assert.NotEmpty(t, content.Warning)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		files.files["notes.txt"] = []byte{0xff, 0xfe, 0x01}
		content, err := svc.Content(ctx, doc.ID)
		require.NoError(t, err)
		assert.Empty(t, content.Content)
		assert.NotEmpty(t, content.Warning)
	})
}

func TestIsTextExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"notes.txt", true},
		{"README.MD", true},
		{"server.log", true},
		{"script.py", true},
		{"photo.jpg", false},
		{"report.pdf", false},
		{"noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTextExtension(tt.filename), tt.filename)
	}
}
