package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScanRow(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "52100001", floatPtr(8.5)))
		assert.True(t, errs.Valid())
	})

	t.Run("missing full name", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("  ", "52100001", floatPtr(8)))
		assert.Equal(t, "Thiếu họ tên", errs["fullName"])
	})

	t.Run("missing mssv", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "", floatPtr(8)))
		assert.Equal(t, "Thiếu MSSV", errs["mssv"])
	})

	t.Run("mssv too long", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "521000012", floatPtr(8)))
		assert.Equal(t, "MSSV không được quá 8 ký tự", errs["mssv"])
	})

	t.Run("mssv exactly 8 chars passes", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "52100001", floatPtr(8)))
		assert.NotContains(t, errs, "mssv")
	})

	t.Run("missing score", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "52100001", nil))
		assert.Equal(t, "Điểm chưa được nhập", errs["score"])
	})

	t.Run("score out of range", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("Nguyễn Văn A", "52100001", floatPtr(10.5)))
		assert.Equal(t, "Điểm phải trong khoảng 0 - 10", errs["score"])

		errs = ValidateScanRow(scanRow("Nguyễn Văn A", "52100001", floatPtr(-1)))
		assert.Equal(t, "Điểm phải trong khoảng 0 - 10", errs["score"])
	})

	t.Run("score boundaries pass", func(t *testing.T) {
		assert.True(t, ValidateScanRow(scanRow("A", "1", floatPtr(0))).Valid())
		assert.True(t, ValidateScanRow(scanRow("A", "1", floatPtr(10))).Valid())
	})

	t.Run("handwriting scores optional but range checked", func(t *testing.T) {
		row := scanRow("Nguyễn Văn A", "52100001", floatPtr(8))
		row.Clarity = floatPtr(11)
		errs := ValidateScanRow(row)
		assert.Equal(t, "Điểm viết tay phải trong khoảng 0 - 10", errs["clarity"])

		row.Clarity = floatPtr(7)
		assert.True(t, ValidateScanRow(row).Valid())
	})

	t.Run("multiple errors reported per field", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("", "", nil))
		assert.Len(t, errs, 3)
	})

	t.Run("first follows field order", func(t *testing.T) {
		errs := ValidateScanRow(scanRow("", "", nil))
		assert.Equal(t, "Thiếu họ tên", errs.First())
	})
}
