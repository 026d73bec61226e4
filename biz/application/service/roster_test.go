package service

import (
	"context"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/repository/submission"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClassService_CreateClass(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults teacher when none resolvable", func(t *testing.T) {
		classes := newFakeClassMapper()
		svc := &ClassService{ClassMapper: classes}
		resp, err := svc.CreateClass(ctx, &score.CreateClassReq{Name: "Lập trình Web", Semester: "HK1 2025"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ClassId)
		require.Len(t, classes.classes, 1)
		assert.Equal(t, consts.DefaultTeacherId, classes.classes[0].TeacherID)
	})

	t.Run("explicit teacher wins", func(t *testing.T) {
		classes := newFakeClassMapper()
		svc := &ClassService{ClassMapper: classes}
		_, err := svc.CreateClass(ctx, &score.CreateClassReq{Name: "L", Semester: "S", TeacherId: "t1"})
		require.NoError(t, err)
		assert.Equal(t, "t1", classes.classes[0].TeacherID)
	})

	t.Run("name and semester required", func(t *testing.T) {
		svc := &ClassService{ClassMapper: newFakeClassMapper()}
		_, err := svc.CreateClass(ctx, &score.CreateClassReq{Name: " ", Semester: "HK1"})
		assert.Error(t, err)
	})
}

func TestStudentService_CreateStudent(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*StudentService, *fakeStudentMapper) {
		students := &fakeStudentMapper{}
		return &StudentService{
			StudentMapper:    students,
			EnrollmentMapper: &fakeEnrollmentMapper{},
			SubmissionMapper: &fakeSubmissionMapper{},
			ClassMapper:      newFakeClassMapper(),
		}, students
	}

	t.Run("email defaulted from mssv", func(t *testing.T) {
		svc, students := newSvc()
		_, err := svc.CreateStudent(ctx, &score.CreateStudentReq{MSSV: "52100001", FullName: "Nguyễn Văn A"})
		require.NoError(t, err)
		assert.Equal(t, "52100001@student.tdtu.edu.vn", students.students[0].Email)
	})

	t.Run("duplicate mssv rejected", func(t *testing.T) {
		svc, students := newSvc()
		students.students = append(students.students, &student.Student{ID: primitive.NewObjectID(), MSSV: "52100001"})
		_, err := svc.CreateStudent(ctx, &score.CreateStudentReq{MSSV: "52100001", FullName: "B"})
		assert.ErrorIs(t, err, consts.ErrDuplicateMSSV)
	})

	t.Run("mssv too long rejected", func(t *testing.T) {
		svc, _ := newSvc()
		_, err := svc.CreateStudent(ctx, &score.CreateStudentReq{MSSV: "521000012", FullName: "B"})
		assert.ErrorIs(t, err, consts.ErrMSSVTooLong)
	})
}

func TestStudentService_DeleteStudent(t *testing.T) {
	ctx := context.Background()

	students := &fakeStudentMapper{}
	enrollments := &fakeEnrollmentMapper{}
	subs := &fakeSubmissionMapper{}
	classes := newFakeClassMapper()
	svc := &StudentService{
		StudentMapper:    students,
		EnrollmentMapper: enrollments,
		SubmissionMapper: subs,
		ClassMapper:      classes,
	}

	stu := &student.Student{ID: primitive.NewObjectID(), MSSV: "52100001", FullName: "A"}
	students.students = append(students.students, stu)
	enrollments.enrollments = append(enrollments.enrollments, &enrollment.Enrollment{
		ID:        primitive.NewObjectID(),
		ClassID:   "class1",
		StudentID: stu.ID.Hex(),
	})
	subs.subs = append(subs.subs,
		&submission.Submission{ID: primitive.NewObjectID(), StudentID: stu.ID.Hex()},
		&submission.Submission{ID: primitive.NewObjectID(), StudentID: "someone-else"},
	)

	require.NoError(t, svc.DeleteStudent(ctx, stu.ID.Hex()))

	assert.Empty(t, students.students)
	assert.Empty(t, enrollments.enrollments)
	// 只清掉该学生的成绩
	require.Len(t, subs.subs, 1)
	assert.Equal(t, "someone-else", subs.subs[0].StudentID)
	assert.Equal(t, int64(-1), classes.studentCounts["class1"])
}

func TestEnrollmentService(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*EnrollmentService, *fakeEnrollmentMapper, *fakeClassMapper, *fakeStudentMapper) {
		enrollments := &fakeEnrollmentMapper{}
		classes := newFakeClassMapper()
		students := &fakeStudentMapper{}
		return &EnrollmentService{
			EnrollmentMapper: enrollments,
			ClassMapper:      classes,
			StudentMapper:    students,
		}, enrollments, classes, students
	}

	t.Run("create bumps class counter", func(t *testing.T) {
		svc, enrollments, classes, students := newSvc()
		c := seedClass(classes)
		stu := seedStudent(students)

		resp, err := svc.CreateEnrollment(ctx, &score.CreateEnrollmentReq{ClassId: c, StudentId: stu})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.EnrollmentId)
		assert.Len(t, enrollments.enrollments, 1)
		assert.Equal(t, int64(1), classes.studentCounts[c])
	})

	t.Run("duplicate enrollment rejected", func(t *testing.T) {
		svc, _, classes, students := newSvc()
		c := seedClass(classes)
		stu := seedStudent(students)

		_, err := svc.CreateEnrollment(ctx, &score.CreateEnrollmentReq{ClassId: c, StudentId: stu})
		require.NoError(t, err)
		_, err = svc.CreateEnrollment(ctx, &score.CreateEnrollmentReq{ClassId: c, StudentId: stu})
		assert.ErrorIs(t, err, consts.ErrDuplicateEnroll)
	})

	t.Run("unknown class rejected", func(t *testing.T) {
		svc, _, _, students := newSvc()
		stu := seedStudent(students)
		_, err := svc.CreateEnrollment(ctx, &score.CreateEnrollmentReq{ClassId: primitive.NewObjectID().Hex(), StudentId: stu})
		assert.ErrorIs(t, err, consts.ErrNotFound)
	})

	t.Run("delete decrements counter", func(t *testing.T) {
		svc, enrollments, classes, students := newSvc()
		c := seedClass(classes)
		stu := seedStudent(students)
		resp, err := svc.CreateEnrollment(ctx, &score.CreateEnrollmentReq{ClassId: c, StudentId: stu})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteEnrollment(ctx, resp.EnrollmentId))
		assert.Empty(t, enrollments.enrollments)
		assert.Equal(t, int64(0), classes.studentCounts[c])
	})
}

func TestExamService(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*ExamService, *fakeExamMapper, *fakeClassMapper) {
		exams := &fakeExamMapper{}
		classes := newFakeClassMapper()
		return &ExamService{ExamMapper: exams, ClassMapper: classes}, exams, classes
	}

	t.Run("create defaults max score and bumps counter", func(t *testing.T) {
		svc, exams, classes := newSvc()
		c := seedClass(classes)
		resp, err := svc.CreateExam(ctx, &score.CreateExamReq{ClassId: c, Name: "Giữa Kỳ", Date: "2025-03-01"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ExamId)
		require.Len(t, exams.exams, 1)
		assert.Equal(t, float64(consts.DefaultMaxScore), exams.exams[0].MaxScore)
		assert.Equal(t, time.March, exams.exams[0].Date.Month())
		assert.Equal(t, int64(1), classes.examCounts[c])
	})

	t.Run("bad date rejected", func(t *testing.T) {
		svc, _, classes := newSvc()
		c := seedClass(classes)
		_, err := svc.CreateExam(ctx, &score.CreateExamReq{ClassId: c, Name: "Giữa Kỳ", Date: "ngày mai"})
		assert.Error(t, err)
	})

	t.Run("delete decrements counter", func(t *testing.T) {
		svc, exams, classes := newSvc()
		c := seedClass(classes)
		resp, err := svc.CreateExam(ctx, &score.CreateExamReq{ClassId: c, Name: "Giữa Kỳ"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteExam(ctx, resp.ExamId))
		assert.Empty(t, exams.exams)
		assert.Equal(t, int64(0), classes.examCounts[c])
	})
}

func TestSubmissionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	subs := &fakeSubmissionMapper{}
	svc := &SubmissionService{SubmissionMapper: subs}

	resp, err := svc.CreateSubmission(ctx, &score.CreateSubmissionReq{
		ExamId: "e1", ClassId: "c1", StudentId: "52100001", FullName: "A", Score: 6,
	})
	require.NoError(t, err)

	t.Run("created pending and unverified", func(t *testing.T) {
		list, err := svc.ListSubmissions(ctx, &score.ListSubmissionsReq{ExamId: "e1"})
		require.NoError(t, err)
		require.Len(t, list.Submissions, 1)
		assert.Equal(t, consts.SubmissionPending, list.Submissions[0].Status)
		assert.False(t, list.Submissions[0].Verified)
	})

	t.Run("score range enforced on update", func(t *testing.T) {
		err := svc.UpdateScore(ctx, &score.UpdateScoreReq{Id: resp.SubmissionId, Score: 11})
		assert.Error(t, err)
	})

	t.Run("verify flips status", func(t *testing.T) {
		require.NoError(t, svc.VerifySubmission(ctx, resp.SubmissionId))
		list, err := svc.ListSubmissions(ctx, &score.ListSubmissionsReq{Status: consts.SubmissionVerified})
		require.NoError(t, err)
		require.Len(t, list.Submissions, 1)
		assert.True(t, list.Submissions[0].Verified)
	})

	t.Run("delete removes record", func(t *testing.T) {
		require.NoError(t, svc.DeleteSubmission(ctx, resp.SubmissionId))
		list, err := svc.ListSubmissions(ctx, &score.ListSubmissionsReq{})
		require.NoError(t, err)
		assert.Empty(t, list.Submissions)
	})
}

func seedClass(classes *fakeClassMapper) string {
	id := primitive.NewObjectID()
	classes.classes = append(classes.classes, &class.Class{ID: id, Name: "Lập trình Web", Semester: "HK1 2025"})
	return id.Hex()
}

func seedStudent(students *fakeStudentMapper) string {
	id := primitive.NewObjectID()
	students.students = append(students.students, &student.Student{ID: id, MSSV: "52100001", FullName: "A"})
	return id.Hex()
}
