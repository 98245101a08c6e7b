package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/report"
)

var (
	// ErrExportFailed is matched by every rendering or sharing failure. The
	// operation can be retried; workspace state is never affected.
	ErrExportFailed = errors.New("export failed")
	// ErrShareUnsupported is returned by sharers that have no target.
	ErrShareUnsupported = errors.New("sharing not supported")
)

// ExportError records the step of an export that failed.
type ExportError struct {
	Op  string // "render", "save" or "share"
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrExportFailed and the underlying cause.
func (e *ExportError) Unwrap() []error {
	return []error{ErrExportFailed, e.Err}
}

// Format is the file type produced by an Exporter.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

// Ext returns the file extension including the dot. The zero Format is PDF.
func (f Format) Ext() string {
	if f == "" {
		return FormatPDF.Ext()
	}
	return "." + string(f)
}

// ParseFormat accepts "pdf", "xlsx" or "excel", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ShareRequest is handed to a Sharer.
type ShareRequest struct {
	Title       string
	SummaryText string
	Document    report.Document
	Path        string // Rendered file to attach
}

// Sharer delivers a rendered document to some destination.
type Sharer interface {
	Share(ctx context.Context, req ShareRequest) error
}

// DirSharer shares by copying the attachment into Dir next to a text file
// holding the title and summary.
type DirSharer struct {
	Dir string
}

func (s DirSharer) Share(ctx context.Context, req ShareRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create share dir: %w", err)
	}

	name := filepath.Base(req.Path)
	dst := filepath.Join(s.Dir, name)
	if err := copyFile(req.Path, dst); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		os.Remove(dst)
		return err
	}

	note := req.Title + "\n" + req.SummaryText + "\n"
	notePath := strings.TrimSuffix(dst, filepath.Ext(dst)) + ".txt"
	if err := os.WriteFile(notePath, []byte(note), 0644); err != nil {
		return fmt.Errorf("write share note: %w", err)
	}
	return nil
}

// UnsupportedSharer is used when no sharing target is configured.
type UnsupportedSharer struct{}

func (UnsupportedSharer) Share(context.Context, ShareRequest) error {
	return ErrShareUnsupported
}

// Exporter renders documents in one format and either shares them or saves
// them to OutputDir.
type Exporter struct {
	OutputDir   string
	CompanyName string
	Format      Format
	Sharer      Sharer
	Logger      *log.Logger // Optional
}

// NewExporter returns an exporter configured from cfg.
func NewExporter(cfg model.AppConfig, sharer Sharer) *Exporter {
	format, err := ParseFormat(cfg.ExportFormat)
	if err != nil {
		format = FormatPDF
	}
	if sharer == nil {
		sharer = UnsupportedSharer{}
	}
	return &Exporter{
		OutputDir:   cfg.OutputDir,
		CompanyName: cfg.CompanyName,
		Format:      format,
		Sharer:      sharer,
	}
}

// Render writes doc to path in the exporter's format.
func (e *Exporter) Render(doc report.Document, path string) error {
	var err error
	switch e.Format {
	case FormatExcel:
		err = ExportExcel(path, doc, e.CompanyName)
	default:
		err = ExportPDF(path, doc, e.CompanyName)
	}
	if err != nil {
		return &ExportError{Op: "render", Err: err}
	}
	return nil
}

// Filename returns the file name doc is saved or shared under.
func (e *Exporter) Filename(doc report.Document) string {
	return report.FilenameExt(doc, e.Format.Ext())
}

// SaveLocal renders doc into OutputDir and returns the written path.
func (e *Exporter) SaveLocal(doc report.Document) (string, error) {
	dir := e.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &ExportError{Op: "save", Err: err}
	}
	path := filepath.Join(dir, e.Filename(doc))
	if err := e.Render(doc, path); err != nil {
		e.logf("save %s: %v", path, err)
		return "", err
	}
	return path, nil
}

// Share renders doc to a temporary file and hands it to the sharer. The
// temporary file is removed afterwards. Callers fall back to SaveLocal on
// error.
func (e *Exporter) Share(ctx context.Context, doc report.Document) error {
	tmp, err := os.MkdirTemp("", "timbercalc-share-")
	if err != nil {
		return &ExportError{Op: "render", Err: err}
	}
	defer os.RemoveAll(tmp)

	path := filepath.Join(tmp, e.Filename(doc))
	if err := e.Render(doc, path); err != nil {
		e.logf("render %s: %v", path, err)
		return err
	}

	req := ShareRequest{
		Title:       doc.Title,
		SummaryText: report.SummaryText(doc),
		Document:    doc,
		Path:        path,
	}
	sharer := e.Sharer
	if sharer == nil {
		sharer = UnsupportedSharer{}
	}
	if err := sharer.Share(ctx, req); err != nil {
		e.logf("share %q: %v", doc.Title, err)
		return &ExportError{Op: "share", Err: err}
	}
	return nil
}

func (e *Exporter) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy attachment: %w", err)
	}
	return out.Close()
}
