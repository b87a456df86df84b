package engine

import (
	"bytes"
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/internal/errors"
	"github.com/gcbaptista/go-sheet-search/internal/jobs"
	"github.com/gcbaptista/go-sheet-search/internal/semantic"
	"github.com/gcbaptista/go-sheet-search/internal/workbook"
	"github.com/gcbaptista/go-sheet-search/model"
	"github.com/gcbaptista/go-sheet-search/services"
)

// snapshot is one loaded workbook together with its semantic index.
// It is never modified after it is published.
type snapshot struct {
	workbook *model.Workbook
	index    *semantic.Index
	loadID   string
	loadedAt time.Time
}

// Session owns the currently loaded workbook and answers searches against it.
// It implements the services.SessionManager interface.
//
// Loads are serialized and build a complete snapshot before publishing it, so a
// search always sees either the previous workbook or the new one in full.
type Session struct {
	loadMu     sync.Mutex
	current    atomic.Pointer[snapshot]
	settings   config.SearchSettings
	jobManager *jobs.Manager
}

// NewSession creates an empty session. jobWorkers bounds concurrent async loads.
func NewSession(settings config.SearchSettings, jobWorkers int) *Session {
	settings.ApplyDefaults()
	jobManager := jobs.NewManager(jobWorkers)
	jobManager.Start()
	return &Session{
		settings:   settings,
		jobManager: jobManager,
	}
}

// Close stops the background job manager, cancelling running loads.
func (s *Session) Close() {
	s.jobManager.Stop()
}

// Settings returns the search settings of the session.
func (s *Session) Settings() config.SearchSettings {
	return s.settings
}

// Loaded reports whether a workbook is available for searching.
func (s *Session) Loaded() bool {
	return s.current.Load() != nil
}

// Load indexes wb and makes it the session's workbook. On any failure the
// session is left with no workbook loaded.
func (s *Session) Load(ctx context.Context, wb *model.Workbook) (services.LoadInfo, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	startTime := time.Now()
	name := ""
	if wb != nil {
		name = wb.Name
	}
	if wb == nil || len(wb.Sheets()) == 0 {
		return services.LoadInfo{}, s.failLoad(errors.NewWorkbookLoadError(name, errors.ErrEmptyWorkbook))
	}

	index, err := semantic.Build(ctx, wb, semantic.BuildOptions{
		PerSheetLimit: s.settings.PerSheetLimit,
		Vectorizer:    semantic.NewTFIDFVectorizer(s.settings.MaxFeatures, s.settings.SublinearTF),
	})
	if err != nil {
		return services.LoadInfo{}, s.failLoad(errors.NewWorkbookLoadError(name, err))
	}

	snap := &snapshot{
		workbook: wb,
		index:    index,
		loadID:   uuid.New().String(),
		loadedAt: time.Now(),
	}
	s.current.Store(snap)

	log.Printf("Workbook '%s' loaded: %d sheets, %d rows, %d sheets indexed (load %s, took %v)",
		wb.Name, len(wb.Sheets()), wb.TotalRows(), len(index.SheetNames()), snap.loadID, time.Since(startTime))

	info := loadInfo(snap)
	info.Took = time.Since(startTime).Milliseconds()
	return info, nil
}

// LoadBytes parses an xlsx file held in memory and loads it.
func (s *Session) LoadBytes(ctx context.Context, name string, data []byte) (services.LoadInfo, error) {
	wb, err := workbook.Read(bytes.NewReader(data), name)
	if err != nil {
		s.loadMu.Lock()
		defer s.loadMu.Unlock()
		return services.LoadInfo{}, s.failLoad(err)
	}
	return s.Load(ctx, wb)
}

// failLoad clears the session and returns err. Callers hold loadMu.
func (s *Session) failLoad(err error) error {
	s.current.Store(nil)
	log.Printf("Warning: %v; no workbook is loaded", err)
	return err
}

// Sheets describes every sheet of the loaded workbook in workbook order.
func (s *Session) Sheets() ([]services.SheetInfo, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, errors.NewNotLoadedError("sheets")
	}
	return sheetInfos(snap), nil
}

// Stats describes the semantic index of the loaded workbook.
func (s *Session) Stats() ([]semantic.SheetStats, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, errors.NewNotLoadedError("stats")
	}
	return snap.index.Stats(), nil
}

func loadInfo(snap *snapshot) services.LoadInfo {
	return services.LoadInfo{
		LoadID:   snap.loadID,
		Workbook: snap.workbook.Name,
		Sheets:   sheetInfos(snap),
		LoadedAt: snap.loadedAt,
	}
}

func sheetInfos(snap *snapshot) []services.SheetInfo {
	sheets := snap.workbook.Sheets()
	infos := make([]services.SheetInfo, 0, len(sheets))
	for _, sheet := range sheets {
		info := services.SheetInfo{
			Name:    sheet.Name,
			Columns: sheet.Columns,
			Rows:    sheet.Len(),
		}
		if sheetIndex, ok := snap.index.Sheet(sheet.Name); ok {
			info.Indexed = true
			info.IndexedRows = len(sheetIndex.Matrix)
			info.VocabularySize = sheetIndex.Model.VocabularySize()
		}
		infos = append(infos, info)
	}
	return infos
}
