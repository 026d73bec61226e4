package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/exam"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/util/log"
	"strings"

	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// 触发持久库访问的关键词, 不带关键词的请求一律只返回提示, 不触库
var dbKeywordPattern = regexp.MustCompile(`(?i)trong cơ sở dữ liệu|database|firestore`)

// 口语里常见的修饰词, 去掉后剩下的才是真实姓名
var listNoisePattern = regexp.MustCompile(`(?i)hãy cung cấp|danh sách|thông tin|sinh viên`)

type IAgentService interface {
	Handle(ctx context.Context, req *score.AgentReq) (*score.AgentResp, error)
}

type AgentService struct {
	StudentMapper     student.IMongoMapper
	ClassMapper       class.IMongoMapper
	EnrollmentMapper  enrollment.IMongoMapper
	ExamMapper        exam.IMongoMapper
	ScanService       IScanService
	SubmissionService ISubmissionService
}

var AgentServiceSet = wire.NewSet(
	wire.Struct(new(AgentService), "*"),
	wire.Bind(new(IAgentService), new(*AgentService)),
)

// Handle 把语音助手解析出的函数调用分发到具体操作
// 返回值永远是一段可朗读的文本, 业务失败也不抛错
func (s *AgentService) Handle(ctx context.Context, req *score.AgentReq) (*score.AgentResp, error) {
	var speech string
	switch req.FunctionName {
	case "updateStudentScore":
		var args score.UpdateStudentScoreArgs
		if err := mapstructure.Decode(req.Args, &args); err != nil {
			return nil, consts.ErrInvalidParams
		}
		speech = s.handleUpdateScore(ctx, &args)
	case "getStudentInfo":
		var args score.GetStudentInfoArgs
		if err := mapstructure.Decode(req.Args, &args); err != nil {
			return nil, consts.ErrInvalidParams
		}
		speech = s.handleGetStudentInfo(ctx, args.StudentName)
	case "getScanResults":
		speech = s.handleGetScanResults(ctx)
	case "createScanResult":
		var args score.CreateScanResultArgs
		if err := mapstructure.Decode(req.Args, &args); err != nil {
			return nil, consts.ErrInvalidParams
		}
		speech = s.handleCreateScanResult(ctx, &args)
	case "updateScanResult":
		var args score.UpdateScanResultArgs
		if err := mapstructure.Decode(req.Args, &args); err != nil {
			return nil, consts.ErrInvalidParams
		}
		speech = s.handleUpdateScanResult(ctx, &args)
	case "deleteScanResult":
		var args score.DeleteScanResultArgs
		if err := mapstructure.Decode(req.Args, &args); err != nil {
			return nil, consts.ErrInvalidParams
		}
		speech = s.handleDeleteScanResult(ctx, args.Id)
	case "clearAllScanResults":
		speech = s.handleClearAllScanResults(ctx)
	default:
		speech = fmt.Sprintf("Xin lỗi, tôi không hỗ trợ chức năng có tên là %s.", req.FunctionName)
	}
	return &score.AgentResp{Speech: speech}, nil
}

func hasDBKeyword(values ...string) bool {
	return lo.SomeBy(values, func(v string) bool {
		return dbKeywordPattern.MatchString(v)
	})
}

func stripDBKeyword(v string) string {
	return strings.TrimSpace(dbKeywordPattern.ReplaceAllString(v, ""))
}

func (s *AgentService) handleUpdateScore(ctx context.Context, args *score.UpdateStudentScoreArgs) string {
	if args.StudentName == "" || args.ExamName == "" || args.NewScore == nil {
		return "Yêu cầu cập nhật điểm không đầy đủ. Tôi cần tên sinh viên, tên bài thi, và điểm số."
	}
	newScore := *args.NewScore
	if newScore < consts.MinScore || newScore > consts.MaxScore {
		return "Điểm số phải trong khoảng từ 0 đến 10."
	}
	if !hasDBKeyword(args.StudentName, args.ExamName) {
		return fmt.Sprintf(
			"🚫 Để cập nhật điểm chính thức, vui lòng nói thêm cụm từ \"trong cơ sở dữ liệu\".\n\n"+
				"📋 Ví dụ: \"Cập nhật điểm %s của sinh viên %s thành %g trong cơ sở dữ liệu\"\n\n"+
				"💡 Các thao tác khác chỉ xử lý dữ liệu scan tạm thời.",
			args.ExamName, args.StudentName, newScore)
	}

	studentName := stripDBKeyword(args.StudentName)
	examName := stripDBKeyword(args.ExamName)

	stu, err := s.StudentMapper.FindOneByFullName(ctx, studentName)
	if err != nil {
		return fmt.Sprintf("Không tìm thấy sinh viên \"%s\" trong cơ sở dữ liệu. Chỉ có thể cập nhật điểm cho sinh viên đã có sẵn.", studentName)
	}

	enrollments, err := s.EnrollmentMapper.FindByStudentID(ctx, stu.ID.Hex())
	if err != nil || len(enrollments) == 0 {
		return fmt.Sprintf("Sinh viên %s (%s) chưa được đăng ký vào lớp học nào trong cơ sở dữ liệu.", studentName, stu.MSSV)
	}

	var (
		found      *exam.Exam
		foundClass string
	)
	for _, e := range enrollments {
		ex, err := s.ExamMapper.FindOneByClassAndName(ctx, e.ClassID, examName)
		if err == nil {
			found = ex
			foundClass = e.ClassID
			break
		}
	}
	if found == nil {
		// 列出每个班的前几场考试帮助用户重试
		var names []string
		for _, e := range enrollments {
			exams, err := s.ExamMapper.FindByClassID(ctx, e.ClassID)
			if err != nil {
				continue
			}
			for _, ex := range lo.Slice(exams, 0, consts.ExamCandidateLimit) {
				names = append(names, fmt.Sprintf("\"%s\"", ex.Name))
			}
		}
		return fmt.Sprintf("Không tìm thấy bài thi \"%s\" cho sinh viên %s trong cơ sở dữ liệu. Các bài thi có sẵn trong cơ sở dữ liệu: %s",
			examName, studentName, strings.Join(names, ", "))
	}

	oldScore, created, err := s.SubmissionService.UpsertByStudentAndExam(
		ctx, stu.ID.Hex(), found.ID.Hex(), foundClass, stu.FullName, newScore, consts.SourceAgent)
	if err != nil {
		log.CtxError(ctx, "语音改分失败, student=%s exam=%s: %v", stu.ID.Hex(), found.ID.Hex(), err)
		return "Đã xảy ra lỗi khi cập nhật điểm trong cơ sở dữ liệu."
	}
	if created {
		return fmt.Sprintf(
			"📊 ĐÃ TẠO MỚI ĐIỂM TRONG CƠ SỞ DỮ LIỆU:\n\n"+
				"👤 Sinh viên: %s (%s)\n📝 Bài thi: %s\n📈 Điểm: %g/10\n\n"+
				"🔒 Dữ liệu đã được lưu vào cơ sở dữ liệu.",
			studentName, stu.MSSV, examName, newScore)
	}
	return fmt.Sprintf(
		"📊 ĐÃ CẬP NHẬT ĐIỂM TRONG CƠ SỞ DỮ LIỆU:\n\n"+
			"👤 Sinh viên: %s (%s)\n📝 Bài thi: %s\n📈 Điểm: %g → %g\n\n"+
			"🔒 Dữ liệu đã được lưu vào cơ sở dữ liệu.",
		studentName, stu.MSSV, examName, *oldScore, newScore)
}

func (s *AgentService) handleGetStudentInfo(ctx context.Context, studentName string) string {
	if strings.TrimSpace(studentName) == "" {
		return "Tôi cần tên sinh viên cụ thể để tra cứu. Ví dụ: \"Nguyễn Văn A trong cơ sở dữ liệu\""
	}
	if !hasDBKeyword(studentName) {
		return "🚫 Để truy cập thông tin sinh viên chính thức, vui lòng nói thêm cụm từ \"trong cơ sở dữ liệu\".\n\n" +
			"📋 Ví dụ: \"Cho tôi biết thông tin sinh viên Nguyễn Văn A trong cơ sở dữ liệu\"\n\n" +
			"💡 Hoặc: \"Hãy cung cấp danh sách sinh viên trong cơ sở dữ liệu\""
	}

	actualName := strings.TrimSpace(listNoisePattern.ReplaceAllString(stripDBKeyword(studentName), ""))
	if actualName == "" {
		return s.studentsList(ctx)
	}

	stu, err := s.StudentMapper.FindOneByFullName(ctx, actualName)
	if err != nil {
		// 精确匹配失败时做一次小范围的模糊查找
		page, err := s.StudentMapper.FindPage(ctx, consts.AgentStudentPage)
		if err != nil {
			return "Đã xảy ra lỗi khi tra cứu thông tin trong cơ sở dữ liệu."
		}
		matched := lo.Filter(page, func(stu *student.Student, _ int) bool {
			return strings.Contains(strings.ToLower(stu.FullName), strings.ToLower(actualName))
		})
		if len(matched) == 0 {
			return s.studentsList(ctx)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "🔍 TÌM THẤY %d SINH VIÊN TƯƠNG TỰ:\n\n", len(matched))
		for i, stu := range matched {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, stu.FullName, stu.MSSV)
		}
		b.WriteString("\n💡 Vui lòng nói chính xác tên sinh viên để xem chi tiết.")
		return b.String()
	}

	enrollments, err := s.EnrollmentMapper.FindByStudentID(ctx, stu.ID.Hex())
	if err != nil || len(enrollments) == 0 {
		return fmt.Sprintf("Sinh viên %s (%s) chưa được đăng ký vào lớp học nào.", stu.FullName, stu.MSSV)
	}

	var classNames []string
	for _, e := range enrollments {
		c, err := s.ClassMapper.FindOne(ctx, e.ClassID)
		if err != nil {
			continue
		}
		classNames = append(classNames, fmt.Sprintf("%s (%s)", c.Name, c.Semester))
	}

	subs, err := s.SubmissionService.ListSubmissions(ctx, &score.ListSubmissionsReq{StudentId: stu.ID.Hex()})
	if err != nil || len(subs.Submissions) == 0 {
		return fmt.Sprintf("Sinh viên %s, mã số %s, đang học %s nhưng chưa có điểm nào.",
			stu.FullName, stu.MSSV, strings.Join(classNames, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 THÔNG TIN TỪ CƠ SỞ DỮ LIỆU:\n\n👤 Sinh viên: %s\n🆔 MSSV: %s\n📚 Lớp học: %s",
		stu.FullName, stu.MSSV, strings.Join(classNames, ", "))
	fmt.Fprintf(&b, "\n\n📝 Điểm số (%d bài kiểm tra):", len(subs.Submissions))
	for _, sub := range subs.Submissions {
		ex, err := s.ExamMapper.FindOne(ctx, sub.ExamId)
		if err != nil {
			continue
		}
		className := "Unknown"
		if c, err := s.ClassMapper.FindOne(ctx, sub.ClassId); err == nil {
			className = c.Name
		}
		fmt.Fprintf(&b, "\n• %s (%s): %g/%g điểm", ex.Name, className, sub.Score, ex.MaxScore)
	}
	b.WriteString("\n\n🔒 Dữ liệu từ cơ sở dữ liệu (chỉ đọc).")
	return b.String()
}

func (s *AgentService) studentsList(ctx context.Context) string {
	students, err := s.StudentMapper.FindPage(ctx, consts.AgentStudentPage)
	if err != nil {
		return "Đã xảy ra lỗi khi lấy danh sách sinh viên."
	}
	if len(students) == 0 {
		return "📊 DANH SÁCH SINH VIÊN TRONG CƠ SỞ DỮ LIỆU:\n\nChưa có sinh viên nào trong hệ thống."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 DANH SÁCH SINH VIÊN TRONG CƠ SỞ DỮ LIỆU (%d sinh viên):\n\n", len(students))
	for i, stu := range students {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, stu.FullName, stu.MSSV)
		if stu.Email != "" {
			fmt.Fprintf(&b, "   📧 Email: %s\n", stu.Email)
		}
		b.WriteString("\n")
	}
	b.WriteString("💡 Để xem chi tiết sinh viên, nói: \"Thông tin sinh viên [Tên đầy đủ] trong cơ sở dữ liệu\"\n")
	b.WriteString("🔒 Dữ liệu từ cơ sở dữ liệu (chỉ đọc).")
	return b.String()
}

func (s *AgentService) handleGetScanResults(ctx context.Context) string {
	rows, err := s.ScanService.GetScanResults(ctx)
	if err != nil {
		return "Lỗi khi lấy dữ liệu scan. Vui lòng thử lại."
	}
	if len(rows) == 0 {
		return "📊 DỮ LIỆU SCAN:\n\nChưa có kết quả scan nào.\n\n💡 Sử dụng máy scan hoặc nhập thủ công để tạo dữ liệu."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 DỮ LIỆU SCAN (%d kết quả):\n\n", len(rows))
	for i, row := range rows {
		name := row.FullName
		if name == "" {
			name = "Chưa có tên"
		}
		mssv := row.StudentId
		if mssv == "" {
			mssv = "Chưa có MSSV"
		}
		var sc float64
		if row.Score != nil {
			sc = *row.Score
		}
		fmt.Fprintf(&b, "%d. %s (%s): %g điểm\n", i+1, name, mssv, sc)
		fmt.Fprintf(&b, "   📅 Thời gian: %s\n", row.Timestamp)
		fmt.Fprintf(&b, "   🆔 ID: %s\n\n", row.Id)
	}
	b.WriteString("🔄 Dữ liệu scan tạm thời (có thể chỉnh sửa tự do).")
	return b.String()
}

func (s *AgentService) handleCreateScanResult(ctx context.Context, args *score.CreateScanResultArgs) string {
	if args.StudentName == "" || args.MSSV == "" || args.Score == nil {
		return "Thiếu thông tin: Cần tên sinh viên, MSSV và điểm số để tạo kết quả scan."
	}
	if *args.Score < consts.MinScore || *args.Score > consts.MaxScore {
		return "Điểm số phải trong khoảng 0-10."
	}
	resp, err := s.ScanService.AddManual(ctx, &score.ManualScanReq{
		FullName: args.StudentName,
		MSSV:     args.MSSV,
		Score:    *args.Score,
	}, consts.SourceAgentManual)
	if err != nil {
		var errno *consts.Errno
		if errors.As(err, &errno) {
			return fmt.Sprintf("Lỗi khi tạo kết quả scan: %s", errno.Error())
		}
		return "Lỗi khi tạo kết quả scan. Vui lòng thử lại."
	}
	return fmt.Sprintf(
		"✅ ĐÃ TẠO KẾT QUẢ SCAN MỚI:\n\n"+
			"👤 Tên: %s\n🆔 MSSV: %s\n📊 Điểm: %g/10\n📱 ID: %s\n\n"+
			"🔄 Dữ liệu đã được lưu vào vùng scan tạm thời.",
		args.StudentName, args.MSSV, *args.Score, resp.Id)
}

func (s *AgentService) handleUpdateScanResult(ctx context.Context, args *score.UpdateScanResultArgs) string {
	if args.Id == "" {
		return "Thiếu ID kết quả scan cần cập nhật."
	}
	current, ok := s.findScanRow(ctx, args.Id)
	if !ok {
		return fmt.Sprintf("Không tìm thấy kết quả scan với ID: %s", args.Id)
	}

	req := &score.UpdateScanReq{Id: args.Id}
	name, mssv := current.FullName, current.StudentId
	sc := current.Score
	if args.StudentName != "" {
		req.FullName = &args.StudentName
		name = args.StudentName
	}
	if args.MSSV != "" {
		req.MSSV = &args.MSSV
		mssv = args.MSSV
	}
	if args.Score != nil {
		if *args.Score < consts.MinScore || *args.Score > consts.MaxScore {
			return "Điểm số phải trong khoảng 0-10."
		}
		req.Score = args.Score
		sc = args.Score
	}
	if req.FullName == nil && req.MSSV == nil && req.Score == nil {
		return "Không có thông tin nào để cập nhật."
	}
	if err := s.ScanService.UpdateScanResult(ctx, req); err != nil {
		return "Lỗi khi cập nhật kết quả scan. Vui lòng thử lại."
	}
	var scValue float64
	if sc != nil {
		scValue = *sc
	}
	return fmt.Sprintf(
		"✅ ĐÃ CẬP NHẬT KẾT QUẢ SCAN:\n\n"+
			"📱 ID: %s\n👤 Tên: %s\n🆔 MSSV: %s\n📊 Điểm: %g/10\n\n"+
			"🔄 Dữ liệu đã được cập nhật.",
		args.Id, name, mssv, scValue)
}

func (s *AgentService) handleDeleteScanResult(ctx context.Context, id string) string {
	if id == "" {
		return "Thiếu ID kết quả scan cần xóa."
	}
	row, ok := s.findScanRow(ctx, id)
	if !ok {
		return fmt.Sprintf("Không tìm thấy kết quả scan với ID: %s", id)
	}
	if err := s.ScanService.DeleteScanResult(ctx, id); err != nil {
		return "Lỗi khi xóa kết quả scan. Vui lòng thử lại."
	}
	name := row.FullName
	if name == "" {
		name = "Không xác định"
	}
	mssv := row.StudentId
	if mssv == "" {
		mssv = "Không xác định"
	}
	var sc float64
	if row.Score != nil {
		sc = *row.Score
	}
	return fmt.Sprintf(
		"✅ ĐÃ XÓA KẾT QUẢ SCAN:\n\n📱 ID: %s\n👤 Tên: %s\n🆔 MSSV: %s\n📊 Điểm: %g/10\n\n"+
			"🗑️ Dữ liệu đã được xóa.",
		id, name, mssv, sc)
}

func (s *AgentService) handleClearAllScanResults(ctx context.Context) string {
	rows, err := s.ScanService.GetScanResults(ctx)
	if err != nil {
		return "Lỗi khi xóa tất cả kết quả scan. Vui lòng thử lại."
	}
	if len(rows) == 0 {
		return "📊 Vùng dữ liệu scan đã trống, không có dữ liệu scan nào để xóa."
	}
	if err = s.ScanService.ClearAll(ctx); err != nil {
		return "Lỗi khi xóa tất cả kết quả scan. Vui lòng thử lại."
	}
	return fmt.Sprintf(
		"✅ ĐÃ XÓA TẤT CẢ KẾT QUẢ SCAN:\n\n📊 Số lượng: %d kết quả\n\n"+
			"🗑️ Tất cả dữ liệu scan đã được xóa.\n💡 Sẵn sàng cho batch scan mới.",
		len(rows))
}

func (s *AgentService) findScanRow(ctx context.Context, id string) (*score.ScanRow, bool) {
	rows, err := s.ScanService.GetScanResults(ctx)
	if err != nil {
		return nil, false
	}
	row, ok := lo.Find(rows, func(row *score.ScanRow) bool {
		return row.Id == id
	})
	return row, ok
}
