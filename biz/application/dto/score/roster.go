package score

// 教务数据的请求/响应结构

type TeacherInfo struct {
	Id       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type CreateTeacherReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type CreateTeacherResp struct {
	TeacherId string `json:"teacherId"`
}

type UpdateTeacherReq struct {
	Id       string  `json:"id" path:"id"`
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ListTeachersResp struct {
	Teachers []*TeacherInfo `json:"teachers"`
}

type ClassInfo struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Semester     string `json:"semester"`
	TeacherId    string `json:"teacherId"`
	StudentCount int64  `json:"studentCount"`
	ExamCount    int64  `json:"examCount"`
	CreateTime   int64  `json:"createTime"`
}

type CreateClassReq struct {
	Name      string `json:"name"`
	Semester  string `json:"semester"`
	TeacherId string `json:"teacherId,omitempty"`
}

type CreateClassResp struct {
	ClassId string `json:"classId"`
}

type UpdateClassReq struct {
	Id       string  `json:"id" path:"id"`
	Name     *string `json:"name,omitempty"`
	Semester *string `json:"semester,omitempty"`
}

type ListClassesReq struct {
	TeacherId string `json:"teacherId,omitempty" query:"teacherId"`
	Semester  string `json:"semester,omitempty" query:"semester"`
}

type ListClassesResp struct {
	Classes []*ClassInfo `json:"classes"`
	Total   int64        `json:"total"`
}

type StudentInfo struct {
	Id         string `json:"id"`
	MSSV       string `json:"mssv"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	CreateTime int64  `json:"createTime"`
}

type CreateStudentReq struct {
	MSSV     string `json:"mssv"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

type CreateStudentResp struct {
	StudentId string `json:"studentId"`
}

type UpdateStudentReq struct {
	Id       string  `json:"id" path:"id"`
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ListStudentsResp struct {
	Students []*StudentInfo `json:"students"`
	Total    int64          `json:"total"`
}

type EnrollmentInfo struct {
	Id        string `json:"id"`
	ClassId   string `json:"classId"`
	StudentId string `json:"studentId"`
	JoinTime  int64  `json:"joinTime"`
}

type CreateEnrollmentReq struct {
	ClassId   string `json:"classId"`
	StudentId string `json:"studentId"`
}

type CreateEnrollmentResp struct {
	EnrollmentId string `json:"enrollmentId"`
}

type ListEnrollmentsReq struct {
	ClassId   string `json:"classId,omitempty" query:"classId"`
	StudentId string `json:"studentId,omitempty" query:"studentId"`
}

type ListEnrollmentsResp struct {
	Enrollments []*EnrollmentInfo `json:"enrollments"`
	Total       int64             `json:"total"`
}

type ExamInfo struct {
	Id       string  `json:"id"`
	ClassId  string  `json:"classId"`
	Name     string  `json:"name"`
	Date     int64   `json:"date"`
	MaxScore float64 `json:"maxScore"`
}

type CreateExamReq struct {
	ClassId  string  `json:"classId"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	MaxScore float64 `json:"maxScore,omitempty"`
}

type CreateExamResp struct {
	ExamId string `json:"examId"`
}

type UpdateExamReq struct {
	Id       string   `json:"id" path:"id"`
	Name     *string  `json:"name,omitempty"`
	Date     *string  `json:"date,omitempty"`
	MaxScore *float64 `json:"maxScore,omitempty"`
}

type ListExamsReq struct {
	ClassId string `json:"classId" query:"classId"`
}

type ListExamsResp struct {
	Exams []*ExamInfo `json:"exams"`
	Total int64       `json:"total"`
}

type SubmissionInfo struct {
	Id             string  `json:"id"`
	ExamId         string  `json:"examId"`
	ClassId        string  `json:"classId"`
	StudentId      string  `json:"studentId"`
	FullName       string  `json:"fullName"`
	Score          float64 `json:"score"`
	ContentSummary string  `json:"contentSummary"`
	Verified       bool    `json:"verified"`
	Status         string  `json:"status"`
	Source         string  `json:"source,omitempty"`
	ExtractedAt    int64   `json:"extractedAt"`
}

type CreateSubmissionReq struct {
	ExamId         string  `json:"examId"`
	ClassId        string  `json:"classId"`
	StudentId      string  `json:"studentId"`
	FullName       string  `json:"fullName"`
	Score          float64 `json:"score"`
	ContentSummary string  `json:"contentSummary,omitempty"`
}

type CreateSubmissionResp struct {
	SubmissionId string `json:"submissionId"`
}

type ListSubmissionsReq struct {
	ExamId    string `json:"examId,omitempty" query:"examId"`
	ClassId   string `json:"classId,omitempty" query:"classId"`
	StudentId string `json:"studentId,omitempty" query:"studentId"`
	Status    string `json:"status,omitempty" query:"status"`
	Verified  *bool  `json:"verified,omitempty" query:"verified"`
}

type ListSubmissionsResp struct {
	Submissions []*SubmissionInfo `json:"submissions"`
	Total       int64             `json:"total"`
}

type UpdateScoreReq struct {
	Id    string  `json:"id" path:"id"`
	Score float64 `json:"score"`
}
