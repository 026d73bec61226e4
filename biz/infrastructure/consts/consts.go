package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID          = "_id"
	ClassId     = "class_id"
	StudentId   = "student_id"
	ExamId      = "exam_id"
	CreateTime  = "create_time"
	ExtractedAt = "extracted_at"
	FullName    = "full_name"
	Semester    = "semester"
	TeacherId   = "teacher_id"
	MSSV        = "mssv"
	Status      = "status"
	Verified    = "verified"
	Name        = "name"
	Date        = "date"
	Role        = "role"
)

// 角色
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// 实时库相关
const (
	ScanResultsPath   = "exam_results"
	ScanChangeChannel = "exam_results:changed"
	ScannerStatusKey  = "scanner:status"
)

// 分数约束
const (
	MinScore      = 0
	MaxScore      = 10
	MaxMSSVLength = 8
)

// 提交状态
const (
	SubmissionPending  = "pending"
	SubmissionVerified = "verified"
	SubmissionExported = "exported"
)

// 数据来源
const (
	SourceScanner     = "scanner"
	SourceManualEntry = "manual_entry"
	SourceAgent       = "xiaozhi_ai"
	SourceAgentManual = "xiaozhi_ai_manual"
)

// 默认值
const (
	DefaultTeacherId   = "default-teacher"
	DefaultMaxScore    = 10
	StudentEmailDomain = "@student.tdtu.edu.vn"
	AgentStudentPage   = 20
	ExamCandidateLimit = 3
	CommitLockTTL      = 30
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
)
