package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrCreateTeacher     = NewErrno(codes.Code(1001), errors.New("Không thể tạo giáo viên. Vui lòng thử lại"))
	ErrCreateClass       = NewErrno(codes.Code(1002), errors.New("Không thể tạo lớp học. Vui lòng thử lại"))
	ErrGetClassList      = NewErrno(codes.Code(1003), errors.New("Không thể tải danh sách lớp học"))
	ErrCreateStudent     = NewErrno(codes.Code(1004), errors.New("Không thể tạo sinh viên. Vui lòng thử lại"))
	ErrDuplicateMSSV     = NewErrno(codes.Code(1005), errors.New("MSSV đã tồn tại trong hệ thống"))
	ErrMSSVTooLong       = NewErrno(codes.Code(1006), errors.New("MSSV không được quá 8 ký tự"))
	ErrCreateEnrollment  = NewErrno(codes.Code(1007), errors.New("Không thể thêm sinh viên vào lớp. Vui lòng thử lại"))
	ErrDuplicateEnroll   = NewErrno(codes.Code(1008), errors.New("Sinh viên đã có trong lớp học này"))
	ErrCreateExam        = NewErrno(codes.Code(1009), errors.New("Không thể tạo bài kiểm tra. Vui lòng thử lại"))
	ErrGetExamList       = NewErrno(codes.Code(1010), errors.New("Không thể tải danh sách bài kiểm tra"))
	ErrCreateSubmission  = NewErrno(codes.Code(1011), errors.New("Không thể lưu điểm. Vui lòng thử lại"))
	ErrGetSubmissions    = NewErrno(codes.Code(1012), errors.New("Không thể tải danh sách điểm"))
	ErrCommitScan        = NewErrno(codes.Code(1013), errors.New("Không thể lưu điểm. Vui lòng thử lại"))
	ErrPurgeScan         = NewErrno(codes.Code(1014), errors.New("Đã lưu điểm nhưng chưa xóa được dữ liệu scan. Vui lòng xóa thủ công"))
	ErrOneCommit         = NewErrno(codes.Code(1015), errors.New("Đang có một phiên lưu điểm cho lớp và bài kiểm tra này. Vui lòng chờ"))
	ErrScanStore         = NewErrno(codes.Code(1016), errors.New("Không thể truy cập dữ liệu scan. Vui lòng thử lại"))
	ErrScanNotFound      = NewErrno(codes.Code(1017), errors.New("Không tìm thấy kết quả scan"))
	ErrDeleteStudent     = NewErrno(codes.Code(1018), errors.New("Không thể xóa sinh viên. Vui lòng thử lại"))
	ErrUpdateSubmission  = NewErrno(codes.Code(1019), errors.New("Không thể cập nhật điểm. Vui lòng thử lại"))
	ErrDeleteSubmission  = NewErrno(codes.Code(1020), errors.New("Không thể xóa điểm. Vui lòng thử lại"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("参数错误"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("无效的id "))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("更新失败"))
)
