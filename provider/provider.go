package provider

import (
	"score-entry/biz/application/service"
	"score-entry/biz/infrastructure/config"
	"score-entry/biz/infrastructure/lock"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/exam"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/repository/submission"
	"score-entry/biz/infrastructure/repository/user"
	"score-entry/biz/infrastructure/scanstore"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	TeacherService    service.TeacherService
	ClassService      service.ClassService
	StudentService    service.StudentService
	EnrollmentService service.EnrollmentService
	ExamService       service.ExamService
	SubmissionService service.SubmissionService
	ScanService       service.ScanService
	AgentService      service.AgentService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.TeacherServiceSet,
	service.ClassServiceSet,
	service.StudentServiceSet,
	service.EnrollmentServiceSet,
	service.ExamServiceSet,
	service.SubmissionServiceSet,
	service.ScanServiceSet,
	service.AgentServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	user.NewMongoMapper,
	wire.Bind(new(user.IMongoMapper), new(*user.MongoMapper)),
	class.NewMongoMapper,
	wire.Bind(new(class.IMongoMapper), new(*class.MongoMapper)),
	student.NewMongoMapper,
	wire.Bind(new(student.IMongoMapper), new(*student.MongoMapper)),
	enrollment.NewMongoMapper,
	wire.Bind(new(enrollment.IMongoMapper), new(*enrollment.MongoMapper)),
	exam.NewMongoMapper,
	wire.Bind(new(exam.IMongoMapper), new(*exam.MongoMapper)),
	submission.NewMongoMapper,
	wire.Bind(new(submission.IMongoMapper), new(*submission.MongoMapper)),
	scanstore.GetRedisStore,
	wire.Bind(new(scanstore.IScanStore), new(*scanstore.RedisStore)),
	lock.NewRedisMutexFactory,
	wire.Bind(new(lock.IMutexFactory), new(*lock.RedisMutexFactory)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
