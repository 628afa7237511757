package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered timetable ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders a class timetable as a period by day grid.
type ExportService struct {
	classes   classFinder
	entries   entryLister
	teachers  teacherLister
	subjects  subjectLister
	renderers map[string]renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(classes classFinder, entries entryLister, teachers teacherLister, subjects subjectLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		classes:  classes,
		entries:  entries,
		teachers: teachers,
		subjects: subjects,
		renderers: map[string]renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Export renders the timetable of classID in format.
func (s *ExportService) Export(ctx context.Context, classID, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	classID = strings.TrimSpace(classID)
	if classID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classId is required")
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, loadError(err, "class")
	}
	dataset, err := s.dataset(ctx, class)
	if err != nil {
		return nil, err
	}

	body, err := r.Render(dataset)
	if err != nil {
		return nil, internalError(err, "failed to render timetable")
	}
	s.logger.Debug("timetable exported", zap.String("class_id", class.ID), zap.String("format", format), zap.Int("bytes", len(body)))

	return &ExportFile{
		Filename:    fmt.Sprintf("timetable-%s.%s", slug(class.Name), format),
		ContentType: r.ContentType(),
		Body:        body,
	}, nil
}

func (s *ExportService) dataset(ctx context.Context, class *models.Class) (export.Dataset, error) {
	entries, err := s.entries.List(ctx, class.ID)
	if err != nil {
		return export.Dataset{}, internalError(err, "failed to load timetable")
	}
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return export.Dataset{}, internalError(err, "failed to load teachers")
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return export.Dataset{}, internalError(err, "failed to load subjects")
	}

	teacherNames := lo.SliceToMap(teachers, func(t models.Teacher) (string, string) { return t.ID, t.Name })
	subjectNames := lo.SliceToMap(subjects, func(sub models.Subject) (string, string) { return sub.ID, sub.Name })

	headers := append([]string{"Period"}, lo.Map(models.Days, func(d models.Day, _ int) string { return string(d) })...)
	rows := make([][]string, len(models.Periods))
	for i, period := range models.Periods {
		rows[i] = make([]string, len(headers))
		rows[i][0] = string(period)
	}
	for _, entry := range entries {
		row, col := entry.Period.Index(), entry.Day.Index()
		if row < 0 || col < 0 {
			continue
		}
		rows[row][col+1] = fmt.Sprintf("%s (%s)", fallback(subjectNames[entry.SubjectID], "Subject"), fallback(teacherNames[entry.TeacherID], "Teacher"))
	}

	return export.Dataset{
		Title:   "Timetable " + class.Name,
		Headers: headers,
		Rows:    rows,
	}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(name string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "class"
	}
	return s
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
