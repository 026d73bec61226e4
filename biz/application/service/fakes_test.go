package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/lock"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/exam"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/repository/submission"
	"score-entry/biz/infrastructure/scanstore"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 测试替身, 全部基于内存map

type fakeScanStore struct {
	data       map[string]map[string]any
	status     *scanstore.ScannerStatus
	readErr    error
	writeErr   error
	clearErr   error
	statusErr  error
	cleared    bool
	readCalls  int
	writeCalls int
	subscriber func(map[string]map[string]any)
}

func newFakeScanStore() *fakeScanStore {
	return &fakeScanStore{data: make(map[string]map[string]any)}
}

func (f *fakeScanStore) ReadAll(_ context.Context) (map[string]map[string]any, error) {
	f.readCalls++
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make(map[string]map[string]any, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out, nil
}

func (f *fakeScanStore) Subscribe(ctx context.Context, onValue func(map[string]map[string]any)) (func(), error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.subscriber = onValue
	snapshot, _ := f.ReadAll(ctx)
	onValue(snapshot)
	return func() { f.subscriber = nil }, nil
}

func (f *fakeScanStore) Write(ctx context.Context, id string, fields map[string]any) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	merged := f.data[id]
	if merged == nil {
		merged = make(map[string]any)
	}
	for k, v := range fields {
		merged[k] = v
	}
	f.data[id] = merged
	f.notify(ctx)
	return nil
}

func (f *fakeScanStore) Delete(ctx context.Context, id string) error {
	delete(f.data, id)
	f.notify(ctx)
	return nil
}

func (f *fakeScanStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	f.data = make(map[string]map[string]any)
	f.notify(ctx)
	return nil
}

func (f *fakeScanStore) ReadStatus(_ context.Context) (*scanstore.ScannerStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status, nil
}

func (f *fakeScanStore) notify(ctx context.Context) {
	if f.subscriber != nil {
		snapshot, _ := f.ReadAll(ctx)
		f.subscriber(snapshot)
	}
}

type fakeSubmissionMapper struct {
	mu        sync.Mutex
	subs      []*submission.Submission
	insertErr error
	failAfter int // >0 时第N次插入开始报错
	inserts   int
}

// Insert 会被并发调用
func (f *fakeSubmissionMapper) Insert(_ context.Context, sub *submission.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.failAfter > 0 && f.inserts >= f.failAfter {
		return errors.New("insert failed")
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubmissionMapper) Update(_ context.Context, sub *submission.Submission) error {
	for i, s := range f.subs {
		if s.ID == sub.ID {
			f.subs[i] = sub
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeSubmissionMapper) Delete(_ context.Context, id string) error {
	for i, s := range f.subs {
		if s.ID.Hex() == id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeSubmissionMapper) FindOne(_ context.Context, id string) (*submission.Submission, error) {
	for _, s := range f.subs {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeSubmissionMapper) FindMany(_ context.Context, filter *submission.Filter) ([]*submission.Submission, error) {
	var out []*submission.Submission
	for _, s := range f.subs {
		if filter.ExamID != "" && s.ExamID != filter.ExamID {
			continue
		}
		if filter.ClassID != "" && s.ClassID != filter.ClassID {
			continue
		}
		if filter.StudentID != "" && s.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Verified != nil && s.Verified != *filter.Verified {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionMapper) FindOneByStudentAndExam(_ context.Context, studentID, examID string) (*submission.Submission, error) {
	for _, s := range f.subs {
		if s.StudentID == studentID && s.ExamID == examID {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

type fakeMutex struct {
	lockErr error
	locked  bool
}

func (m *fakeMutex) Lock() error {
	if m.lockErr != nil {
		return m.lockErr
	}
	m.locked = true
	return nil
}

func (m *fakeMutex) Unlock() error {
	m.locked = false
	return nil
}

func (m *fakeMutex) Expired() bool { return false }

type fakeMutexFactory struct {
	mutex   *fakeMutex
	lastKey string
}

func (f *fakeMutexFactory) NewMutex(_ context.Context, key string, _ int) lock.Mutex {
	f.lastKey = key
	if f.mutex == nil {
		f.mutex = &fakeMutex{}
	}
	return f.mutex
}

type fakeStudentMapper struct {
	students []*student.Student
	calls    int
}

func (f *fakeStudentMapper) Insert(_ context.Context, stu *student.Student) error {
	if stu.ID.IsZero() {
		stu.ID = primitive.NewObjectID()
	}
	f.students = append(f.students, stu)
	return nil
}

func (f *fakeStudentMapper) Update(_ context.Context, stu *student.Student) error {
	for i, s := range f.students {
		if s.ID == stu.ID {
			f.students[i] = stu
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeStudentMapper) Delete(_ context.Context, id string) error {
	for i, s := range f.students {
		if s.ID.Hex() == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeStudentMapper) FindOne(_ context.Context, id string) (*student.Student, error) {
	f.calls++
	for _, s := range f.students {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeStudentMapper) FindOneByMSSV(_ context.Context, mssv string) (*student.Student, error) {
	f.calls++
	for _, s := range f.students {
		if s.MSSV == mssv {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeStudentMapper) FindOneByFullName(_ context.Context, fullName string) (*student.Student, error) {
	f.calls++
	for _, s := range f.students {
		if s.FullName == fullName {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeStudentMapper) FindPage(_ context.Context, limit int64) ([]*student.Student, error) {
	f.calls++
	if limit > 0 && int64(len(f.students)) > limit {
		return f.students[:limit], nil
	}
	return f.students, nil
}

type fakeClassMapper struct {
	classes       []*class.Class
	studentCounts map[string]int64
	examCounts    map[string]int64
}

func newFakeClassMapper() *fakeClassMapper {
	return &fakeClassMapper{
		studentCounts: make(map[string]int64),
		examCounts:    make(map[string]int64),
	}
}

func (f *fakeClassMapper) Insert(_ context.Context, c *class.Class) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.classes = append(f.classes, c)
	return nil
}

func (f *fakeClassMapper) Update(_ context.Context, c *class.Class) error {
	for i, cur := range f.classes {
		if cur.ID == c.ID {
			f.classes[i] = c
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeClassMapper) Delete(_ context.Context, id string) error {
	for i, c := range f.classes {
		if c.ID.Hex() == id {
			f.classes = append(f.classes[:i], f.classes[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeClassMapper) FindOne(_ context.Context, id string) (*class.Class, error) {
	for _, c := range f.classes {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeClassMapper) FindMany(_ context.Context, filter *class.Filter) ([]*class.Class, error) {
	var out []*class.Class
	for _, c := range f.classes {
		if filter.TeacherID != "" && c.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Semester != "" && c.Semester != filter.Semester {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClassMapper) IncStudentCount(_ context.Context, id string, delta int64) error {
	f.studentCounts[id] += delta
	return nil
}

func (f *fakeClassMapper) IncExamCount(_ context.Context, id string, delta int64) error {
	f.examCounts[id] += delta
	return nil
}

type fakeEnrollmentMapper struct {
	enrollments []*enrollment.Enrollment
}

func (f *fakeEnrollmentMapper) Insert(_ context.Context, e *enrollment.Enrollment) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	f.enrollments = append(f.enrollments, e)
	return nil
}

func (f *fakeEnrollmentMapper) Delete(_ context.Context, id string) error {
	for i, e := range f.enrollments {
		if e.ID.Hex() == id {
			f.enrollments = append(f.enrollments[:i], f.enrollments[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeEnrollmentMapper) FindOne(_ context.Context, id string) (*enrollment.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.ID.Hex() == id {
			return e, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeEnrollmentMapper) FindByClassID(_ context.Context, classID string) ([]*enrollment.Enrollment, error) {
	var out []*enrollment.Enrollment
	for _, e := range f.enrollments {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentMapper) FindByStudentID(_ context.Context, studentID string) ([]*enrollment.Enrollment, error) {
	var out []*enrollment.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentMapper) FindByClassAndStudent(_ context.Context, classID, studentID string) (*enrollment.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.ClassID == classID && e.StudentID == studentID {
			return e, nil
		}
	}
	return nil, consts.ErrNotFound
}

type fakeExamMapper struct {
	exams []*exam.Exam
}

func (f *fakeExamMapper) Insert(_ context.Context, e *exam.Exam) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	f.exams = append(f.exams, e)
	return nil
}

func (f *fakeExamMapper) Update(_ context.Context, e *exam.Exam) error {
	for i, cur := range f.exams {
		if cur.ID == e.ID {
			f.exams[i] = e
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeExamMapper) Delete(_ context.Context, id string) error {
	for i, e := range f.exams {
		if e.ID.Hex() == id {
			f.exams = append(f.exams[:i], f.exams[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeExamMapper) FindOne(_ context.Context, id string) (*exam.Exam, error) {
	for _, e := range f.exams {
		if e.ID.Hex() == id {
			return e, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeExamMapper) FindByClassID(_ context.Context, classID string) ([]*exam.Exam, error) {
	var out []*exam.Exam
	for _, e := range f.exams {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExamMapper) FindOneByClassAndName(_ context.Context, classID, name string) (*exam.Exam, error) {
	for _, e := range f.exams {
		if e.ClassID == classID && e.Name == name {
			return e, nil
		}
	}
	return nil, consts.ErrNotFound
}

func floatPtr(v float64) *float64 { return &v }

func scanRow(name, mssv string, sc *float64) *score.ScanRow {
	return &score.ScanRow{FullName: name, StudentId: mssv, Score: sc, Timestamp: "2025-03-01T08:00:00Z"}
}
