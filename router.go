package main

import (
	handler "score-entry/biz/adaptor/controller"
	"score-entry/biz/adaptor/controller/roster"
	"score-entry/biz/adaptor/controller/scoreentry"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	// 语音助手网关, 鉴权在handler内完成
	r.POST("/agent", scoreentry.InvokeAgent)

	apiV1 := r.Group("/api/v1")
	{
		scan := apiV1.Group("/scan")
		{
			scan.GET("", scoreentry.GetScanResults)
			scan.GET("/stream", scoreentry.StreamScanResults)
			scan.GET("/status", scoreentry.GetScannerStatus)
			scan.POST("/manual", scoreentry.AddManual)
			scan.POST("/commit", scoreentry.CommitScanResults)
			scan.PUT("/:id", scoreentry.UpdateScanResult)
			scan.DELETE("/:id", scoreentry.DeleteScanResult)
			scan.DELETE("", scoreentry.ClearScanResults)
		}

		teachers := apiV1.Group("/teachers")
		{
			teachers.POST("", roster.CreateTeacher)
			teachers.GET("", roster.ListTeachers)
			teachers.PUT("/:id", roster.UpdateTeacher)
			teachers.DELETE("/:id", roster.DeleteTeacher)
		}

		classes := apiV1.Group("/classes")
		{
			classes.POST("", roster.CreateClass)
			classes.GET("", roster.ListClasses)
			classes.GET("/:id", roster.GetClass)
			classes.PUT("/:id", roster.UpdateClass)
			classes.DELETE("/:id", roster.DeleteClass)
		}

		students := apiV1.Group("/students")
		{
			students.POST("", roster.CreateStudent)
			students.GET("", roster.ListStudents)
			students.GET("/:id", roster.GetStudent)
			students.PUT("/:id", roster.UpdateStudent)
			students.DELETE("/:id", roster.DeleteStudent)
		}

		enrollments := apiV1.Group("/enrollments")
		{
			enrollments.POST("", roster.CreateEnrollment)
			enrollments.GET("", roster.ListEnrollments)
			enrollments.DELETE("/:id", roster.DeleteEnrollment)
		}

		exams := apiV1.Group("/exams")
		{
			exams.POST("", roster.CreateExam)
			exams.GET("", roster.ListExams)
			exams.PUT("/:id", roster.UpdateExam)
			exams.DELETE("/:id", roster.DeleteExam)
		}

		submissions := apiV1.Group("/submissions")
		{
			submissions.POST("", roster.CreateSubmission)
			submissions.GET("", roster.ListSubmissions)
			submissions.PUT("/:id/score", roster.UpdateSubmissionScore)
			submissions.POST("/:id/verify", roster.VerifySubmission)
			submissions.DELETE("/:id", roster.DeleteSubmission)
		}
	}
}
