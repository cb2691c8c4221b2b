package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/hierarchy"
)

// ImportResult is the per-item status of an archive import. Malformed
// members are absorbed as a skipped status rather than failing the batch.
type ImportResult struct {
	Name      string `json:"name"`
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// ImportDocument imports a single project JSON document. The document is
// valid iff it carries a string name and a screens array; everything else is
// normalized (fresh public id, ownership, timestamps, active screen repair).
func (s *ProjectService) ImportDocument(ctx context.Context, ownerID string, data []byte) (*domain.Project, error) {
	p, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	id, err := domain.NewPublicID(publicIDPrefix)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.OwnerID = ownerID
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ImportArchive imports every .json member of a ZIP archive, reporting a
// per-item status. One bad member never sinks the rest.
func (s *ProjectService) ImportArchive(ctx context.Context, ownerID string, data []byte) ([]ImportResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive", domain.ErrInvalidImport)
	}
	results := make([]ImportResult, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		res := ImportResult{Name: f.Name}
		content, err := readZipMember(f)
		if err == nil {
			var p *domain.Project
			p, err = s.ImportDocument(ctx, ownerID, content)
			if err == nil {
				res.Status = "imported"
				res.ProjectID = p.ID
			}
		}
		if err != nil {
			res.Status = "skipped"
			res.Error = err.Error()
			NewLogger(ctx).LogWarnf("import_archive", "member=%s error=%v", f.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// ExportDocument serializes a full project document.
func (s *ProjectService) ExportDocument(ctx context.Context, ownerID, id string) ([]byte, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}

// ExportArchive bundles every project of the owner into a ZIP archive, one
// JSON document per member.
func (s *ProjectService) ExportArchive(ctx context.Context, ownerID string) ([]byte, error) {
	summaries, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, sum := range summaries {
		doc, err := s.ExportDocument(ctx, ownerID, sum.ID)
		if err != nil {
			return nil, err
		}
		w, err := zw.Create(sum.ID + ".json")
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(doc); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseDocument validates and normalizes an incoming document. Validity is
// deliberately minimal (string name, screens array); structural consistency
// is enforced afterwards and repaired where the repair is unambiguous.
func parseDocument(data []byte) (*domain.Project, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	var name string
	if raw, ok := probe["name"]; !ok || json.Unmarshal(raw, &name) != nil || name == "" {
		return nil, fmt.Errorf("%w: missing string name", domain.ErrInvalidImport)
	}
	var screens []json.RawMessage
	if raw, ok := probe["screens"]; !ok || json.Unmarshal(raw, &screens) != nil {
		return nil, fmt.Errorf("%w: missing screens array", domain.ErrInvalidImport)
	}

	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if p.ViewportWidth == 0 {
		p.ViewportWidth = domain.DefaultViewportWidth
	}
	if p.ViewportHeight == 0 {
		p.ViewportHeight = domain.DefaultViewportHeight
	}
	if len(p.Screens) == 0 {
		home := domain.NewScreen(domain.DefaultScreenName, p.ViewportWidth, p.ViewportHeight, p.Grid)
		p.Screens = []domain.Screen{home}
	}
	if p.FindScreen(p.ActiveScreenID) == nil {
		p.ActiveScreenID = p.Screens[0].ID
	}
	if err := hierarchy.Validate(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	return &p, nil
}

func readZipMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
