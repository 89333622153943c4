package mocks

import (
	"fmt"

	"github.com/user/framestep/pkg/ports"
)

// FrameExporter is a mock implementation of ports.FrameExporter.
type FrameExporter struct {
	ExportFunc func(req ports.ExportRequest) (string, error)

	Requests []ports.ExportRequest
}

func (m *FrameExporter) Export(req ports.ExportRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.ExportFunc != nil {
		return m.ExportFunc(req)
	}
	return fmt.Sprintf("mock://frame/%d", req.FrameIndex+1), nil
}

var _ ports.FrameExporter = (*FrameExporter)(nil)
