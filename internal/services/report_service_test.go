package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"studiolens/internal/config"
	apperrors "studiolens/internal/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxSizeBytes:      10485760,
			AllowedExtensions: ".xls,.xlsx",
		},
	}
}

func testService() *ReportService {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewReportService(testConfig(), logger)
}

// payrollWorkbook builds a minimal one-instructor workbook in memory.
func payrollWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Smith, Jane"},
		{"Class Name", "Class Date", "Earnings"},
		{"Vinyasa Flow", "44197", "$45.00"},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func firstVisitWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Client ID", "Client", "First Visit", "Referral Type", "# Visits since First Visit"},
		{"C001", "Doe, Alex", "44197", "Instagram", "4"},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestServiceParsePayroll(t *testing.T) {
	svc := testService()
	data := payrollWorkbook(t)

	report, err := svc.ParsePayroll(context.Background(),
		bytes.NewReader(data), "payroll.xlsx", int64(len(data)))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "Smith, Jane", report.Records[0].InstructorName)
	assert.Equal(t, 45.0, report.Records[0].Earnings)
}

func TestServiceParseFirstVisit(t *testing.T) {
	svc := testService()
	data := firstVisitWorkbook(t)

	report, err := svc.ParseFirstVisit(context.Background(),
		bytes.NewReader(data), "visits.xlsx", int64(len(data)))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "C001", report.Records[0].ClientID)
	assert.Equal(t, "2021-01-01", report.Records[0].FirstVisitDateStr)
}

func TestServiceRejectsBeforeParsing(t *testing.T) {
	svc := testService()

	tests := []struct {
		name     string
		filename string
		size     int64
	}{
		{"wrong extension", "report.csv", 1024},
		{"empty file", "payroll.xlsx", 0},
		{"oversized", "payroll.xlsx", 10485761},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The reader is never touched when validation fails.
			_, err := svc.ParsePayroll(context.Background(),
				bytes.NewReader(nil), tt.filename, tt.size)
			require.Error(t, err)
			typ, ok := apperrors.TypeOf(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrTypeValidation, typ)
		})
	}
}

func TestServicePropagatesParseErrors(t *testing.T) {
	svc := testService()

	_, err := svc.ParsePayroll(context.Background(),
		bytes.NewReader([]byte("not a workbook")), "payroll.xlsx", 14)
	require.Error(t, err)
	typ, ok := apperrors.TypeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrTypeParsing, typ)
}
