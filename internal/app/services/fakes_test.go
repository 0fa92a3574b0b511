package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oakhaven/prepschool/internal/app/models"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// fakeEmail records sends in memory and can be told to fail
type fakeEmail struct {
	mu          sync.Mutex
	resetTokens []string
	failReset   bool
}

func (f *fakeEmail) SendApplicationNotification(*models.Application) error { return nil }

func (f *fakeEmail) SendContactNotification(*models.ContactMessage) error { return nil }

func (f *fakeEmail) SendPasswordResetEmail(toEmail, toName, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReset {
		return errors.New("smtp unavailable")
	}
	f.resetTokens = append(f.resetTokens, token)
	return nil
}

func (f *fakeEmail) lastResetToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resetTokens) == 0 {
		return ""
	}
	return f.resetTokens[len(f.resetTokens)-1]
}

// fakeApplicationStore is an in-memory ApplicationStore and ApplicationChecker
type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[int64]*models.Application)}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	app.ID = f.nextID
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeApplicationStore) GetAll(_ context.Context) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Application, 0, len(f.apps))
	for _, app := range f.apps {
		clone := *app
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationDate.After(out[j].ApplicationDate) })
	return out, nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	app.Status = status
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationStore) Exists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.apps[id]
	return ok, nil
}

// fakeDocumentStore is an in-memory DocumentStore
type fakeDocumentStore struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]*models.Document
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[int64]*models.Document)}
}

func (f *fakeDocumentStore) Create(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	doc.ID = f.nextID
	clone := *doc
	f.docs[doc.ID] = &clone
	return nil
}

func (f *fakeDocumentStore) GetByApplication(_ context.Context, appID int64) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Document{}
	for _, doc := range f.docs {
		if doc.ApplicationID == appID {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocumentStore) GetByID(_ context.Context, appID, docID int64) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[docID]
	if !ok || doc.ApplicationID != appID {
		return nil, apperrors.ErrDocumentNotFound
	}
	clone := *doc
	return &clone, nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, appID, docID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[docID]
	if !ok || doc.ApplicationID != appID {
		return apperrors.ErrDocumentNotFound
	}
	delete(f.docs, docID)
	return nil
}

// fakeStudentStore is an in-memory StudentStore
type fakeStudentStore struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	student.ID = f.nextID
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	clone := *student
	return &clone, nil
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if strings.EqualFold(student.Email, email) {
			clone := *student
			return &clone, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByResetToken(_ context.Context, tokenHash string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.ResetPasswordToken != nil && *student.ResetPasswordToken == tokenHash &&
			student.ResetPasswordExpires != nil && student.ResetPasswordExpires.After(time.Now()) {
			clone := *student
			return &clone, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Student, 0, len(f.students))
	for _, student := range f.students {
		clone := *student
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudentStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeStudentStore) ApplicationClaimed(_ context.Context, appID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.ApplicationID == appID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) StudentIdentifierExists(_ context.Context, identifier string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.ID != excludeID && student.StudentID != nil && *student.StudentID == identifier {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) UpdateProfile(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.FirstName = student.FirstName
	stored.LastName = student.LastName
	stored.Address = student.Address
	stored.PhoneNumber = student.PhoneNumber
	return nil
}

func (f *fakeStudentStore) UpdateParents(_ context.Context, id int64, parents []models.Parent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.Parents = append([]models.Parent(nil), parents...)
	return nil
}

func (f *fakeStudentStore) UpdateAdminFields(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.Status = student.Status
	stored.StudentID = student.StudentID
	stored.Grade = student.Grade
	return nil
}

func (f *fakeStudentStore) SetResetToken(_ context.Context, id int64, tokenHash string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.ResetPasswordToken = &tokenHash
	stored.ResetPasswordExpires = &expires
	return nil
}

func (f *fakeStudentStore) ClearResetToken(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.ResetPasswordToken = nil
	stored.ResetPasswordExpires = nil
	return nil
}

func (f *fakeStudentStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.Password = passwordHash
	stored.ResetPasswordToken = nil
	stored.ResetPasswordExpires = nil
	return nil
}

func (f *fakeStudentStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	stored.LastLoginAt = &at
	return nil
}

// fakeStaffStore is an in-memory StaffStore
type fakeStaffStore struct {
	mu     sync.Mutex
	nextID int64
	staff  map[int64]*models.StaffUser
}

func newFakeStaffStore() *fakeStaffStore {
	return &fakeStaffStore{staff: make(map[int64]*models.StaffUser)}
}

func (f *fakeStaffStore) Create(_ context.Context, user *models.StaffUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.staff[user.ID] = &clone
	return nil
}

func (f *fakeStaffStore) GetByID(_ context.Context, id int64) (*models.StaffUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.staff[id]
	if !ok {
		return nil, apperrors.ErrStaffUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeStaffStore) GetByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.staff {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrStaffUserNotFound
}

func (f *fakeStaffStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeStaffStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.staff)), nil
}

func (f *fakeStaffStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.staff[id]
	if !ok {
		return apperrors.ErrStaffUserNotFound
	}
	stored.LastLoginAt = &at
	return nil
}

// fakeContactStore is an in-memory ContactStore
type fakeContactStore struct {
	mu       sync.Mutex
	nextID   int64
	messages map[int64]*models.ContactMessage
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{messages: make(map[int64]*models.ContactMessage)}
}

func (f *fakeContactStore) Create(_ context.Context, msg *models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg.ID = f.nextID
	clone := *msg
	f.messages[msg.ID] = &clone
	return nil
}

func (f *fakeContactStore) GetAll(_ context.Context) ([]*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ContactMessage, 0, len(f.messages))
	for _, msg := range f.messages {
		clone := *msg
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (f *fakeContactStore) MarkResponded(_ context.Context, id int64) (*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, apperrors.ErrContactNotFound
	}
	msg.Responded = true
	clone := *msg
	return &clone, nil
}
