package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
)

// In-memory repository fakes. They mirror the error contracts of the
// postgres implementations so services can be exercised without a database.

type fakeAccountRepo struct {
	accounts []*models.Account
}

func (f *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return &domain.ConflictError{Message: "username taken", ResourceType: "account"}
		}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	f.accounts = append(f.accounts, account)
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
}

func (f *fakeAccountRepo) List(_ context.Context) ([]models.Account, error) {
	out := make([]models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) Count(_ context.Context) (int, error) {
	return len(f.accounts), nil
}

func (f *fakeAccountRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Role = role
	return nil
}

func (f *fakeAccountRepo) UpdateApproval(ctx context.Context, id string, approved bool) error {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Approved = approved
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id string) error {
	for i, a := range f.accounts {
		if a.ID == id {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("account: %w", domain.ErrNotFound)
}

type fakeMemberRepo struct {
	members []*models.Member
}

func (f *fakeMemberRepo) Create(_ context.Context, member *models.Member) error {
	for _, m := range f.members {
		if m.Barcode == member.Barcode {
			return &domain.ConflictError{Message: "barcode taken", ResourceType: "member"}
		}
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	f.members = append(f.members, member)
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*models.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("member: %w", domain.ErrNotFound)
}

func (f *fakeMemberRepo) GetByBarcode(_ context.Context, barcode string) (*models.Member, error) {
	for _, m := range f.members {
		if m.Barcode == barcode {
			return m, nil
		}
	}
	return nil, fmt.Errorf("member: %w", domain.ErrNotFound)
}

func (f *fakeMemberRepo) List(_ context.Context, q models.MemberQuery) ([]models.Member, error) {
	var out []models.Member
	for _, m := range f.members {
		if m.Category != q.Category {
			continue
		}
		if q.Search != "" {
			s := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(m.FullName), s) &&
				!strings.Contains(strings.ToLower(m.Barcode), s) &&
				!strings.Contains(strings.ToLower(m.Department), s) {
				continue
			}
		}
		out = append(out, *m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case models.SortNameDesc:
			return out[i].FullName > out[j].FullName
		case models.SortDepartmentAsc:
			return out[i].Department < out[j].Department
		case models.SortDepartmentDesc:
			return out[i].Department > out[j].Department
		case models.SortBarcodeAsc:
			return out[i].Barcode < out[j].Barcode
		case models.SortBarcodeDesc:
			return out[i].Barcode > out[j].Barcode
		default:
			return out[i].FullName < out[j].FullName
		}
	})

	return out, nil
}

func (f *fakeMemberRepo) ListAll(_ context.Context) ([]models.Member, error) {
	out := make([]models.Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, member *models.Member) error {
	existing, err := f.GetByID(ctx, member.ID)
	if err != nil {
		return err
	}
	for _, m := range f.members {
		if m.ID != member.ID && m.Barcode == member.Barcode {
			return &domain.ConflictError{Message: "barcode taken", ResourceType: "member"}
		}
	}
	*existing = *member
	return nil
}

func (f *fakeMemberRepo) Delete(_ context.Context, id string) error {
	for i, m := range f.members {
		if m.ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("member: %w", domain.ErrNotFound)
}

type fakeFolderRepo struct {
	folders []*models.Folder
}

func (f *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	f.folders = append(f.folders, folder)
	return nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	for _, folder := range f.folders {
		if folder.ID == id {
			return folder, nil
		}
	}
	return nil, fmt.Errorf("folder: %w", domain.ErrNotFound)
}

func (f *fakeFolderRepo) ListRoots(_ context.Context) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.ParentID == nil {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) ListChildren(_ context.Context, parentID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.ParentID != nil && *folder.ParentID == parentID {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) ListAll(_ context.Context) ([]models.Folder, error) {
	out := make([]models.Folder, 0, len(f.folders))
	for _, folder := range f.folders {
		out = append(out, *folder)
	}
	return out, nil
}

func (f *fakeFolderRepo) SearchByName(_ context.Context, term string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if strings.Contains(strings.ToLower(folder.Name), strings.ToLower(term)) {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) Rename(ctx context.Context, id, name string) error {
	folder, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	folder.Name = name
	return nil
}

func (f *fakeFolderRepo) DeleteByIDs(_ context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var keep []*models.Folder
	for _, folder := range f.folders {
		if !drop[folder.ID] {
			keep = append(keep, folder)
		}
	}
	f.folders = keep
	return nil
}

type fakeDocumentRepo struct {
	documents []*models.Document
	createErr error
	renameErr error
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, d := range f.documents {
		if d.Filename == doc.Filename {
			return &domain.ConflictError{Message: "filename taken", ResourceType: "document"}
		}
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	f.documents = append(f.documents, doc)
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*models.Document, error) {
	for _, d := range f.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
}

func (f *fakeDocumentRepo) GetByFilename(_ context.Context, filename string) (*models.Document, error) {
	for _, d := range f.documents {
		if d.Filename == filename {
			return d, nil
		}
	}
	return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
}

func (f *fakeDocumentRepo) ListAll(_ context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(f.documents))
	for _, d := range f.documents {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListByFolder(_ context.Context, folderID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.documents {
		if d.FolderID != nil && *d.FolderID == folderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) SearchByFilename(_ context.Context, term string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.documents {
		if strings.Contains(strings.ToLower(d.Filename), strings.ToLower(term)) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Rename(ctx context.Context, id, filename string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	doc, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	doc.Filename = filename
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	for i, d := range f.documents {
		if d.ID == id {
			f.documents = append(f.documents[:i], f.documents[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document: %w", domain.ErrNotFound)
}

func (f *fakeDocumentRepo) DeleteByFolderIDs(_ context.Context, folderIDs []string) error {
	drop := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		drop[id] = true
	}
	var keep []*models.Document
	for _, d := range f.documents {
		if d.FolderID == nil || !drop[*d.FolderID] {
			keep = append(keep, d)
		}
	}
	f.documents = keep
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeFileStore keeps files in a map and can be told to fail individual
// operations.
type fakeFileStore struct {
	files     map[string][]byte
	saveErr   error
	renameErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) Save(filename string, content io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return &domain.StorageError{Op: "save", Filename: filename, Cause: err}
	}
	f.files[filename] = data
	return nil
}

func (f *fakeFileStore) Rename(oldName, newName string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	data, ok := f.files[oldName]
	if !ok {
		return &domain.StorageError{Op: "rename", Filename: oldName}
	}
	delete(f.files, oldName)
	f.files[newName] = data
	return nil
}

func (f *fakeFileStore) Remove(filename string) error {
	delete(f.files, filename)
	return nil
}

func (f *fakeFileStore) Open(filename string) (io.ReadCloser, error) {
	data, ok := f.files[filename]
	if !ok {
		return nil, &domain.StorageError{Op: "open", Filename: filename}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileStore) Path(filename string) string {
	return "/fake/" + filename
}
