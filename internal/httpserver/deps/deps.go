package deps

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/goliatone/go-urlpicker/components/linkdialog"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
)

type Deps struct {
	Logger     logger.Logger
	StartTime  time.Time
	Version    string
	TimeNow    func() time.Time // for testing, defaults to time.Now
	Controller *picker.Controller
	// Sessions resolves browser decisions for open dialogs.
	Sessions linkdialog.Sessions
	// Notices is the buffer the controller notifies.
	Notices  *picker.NoticeBuffer
	Renderer *vanilla.Renderer
	// Form is the decorated form served at "/".
	Form        model.FormModel
	Submissions *Submissions
	Localize    render.LocalizeOptions
	// Dialog carries extra link dialog options (labels, guard).
	Dialog []linkdialog.OptionFn
	Ready  func(ctx context.Context) error
}

// Submissions keeps the last submitted values of each form in memory.
type Submissions struct {
	mu   sync.RWMutex
	data map[string]map[string]any
}

func NewSubmissions() *Submissions {
	return &Submissions{data: make(map[string]map[string]any)}
}

// Get returns a copy of the values last stored for formID.
func (s *Submissions) Get(formID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data[formID])
}

// Put replaces the values stored for formID.
func (s *Submissions) Put(formID string, values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[formID] = maps.Clone(values)
}
