package service

import (
	"sync"
)

// EditorService holds shell-local editing state: which section each store's
// property panel currently targets, and which sections have an upload batch
// in flight. None of this belongs to the persisted document.
type EditorService struct {
	mu       sync.Mutex
	selected map[string]string              // storeID -> selected section ID
	busy     map[string]map[string]struct{} // storeID -> sections with uploads in flight
}

func NewEditorService() *EditorService {
	return &EditorService{
		selected: make(map[string]string),
		busy:     make(map[string]map[string]struct{}),
	}
}

func (s *EditorService) Select(storeID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sectionID == "" {
		delete(s.selected, storeID)
		return
	}
	s.selected[storeID] = sectionID
}

func (s *EditorService) Selection(storeID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.selected[storeID]
	return id, ok
}

// ClearSelection drops the selection only if it still points at sectionID,
// so removing an unrelated section leaves the panel open.
func (s *EditorService) ClearSelection(storeID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[storeID] == sectionID {
		delete(s.selected, storeID)
	}
}

func (s *EditorService) Forget(storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, storeID)
	delete(s.busy, storeID)
}

// BeginUpload marks a section busy for the duration of one upload batch.
// It reports false if a batch is already in flight for that section; the
// section accepts no new uploads until the running batch resolves.
func (s *EditorService) BeginUpload(storeID, sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sections, ok := s.busy[storeID]
	if !ok {
		sections = make(map[string]struct{})
		s.busy[storeID] = sections
	}
	if _, inFlight := sections[sectionID]; inFlight {
		return false
	}
	sections[sectionID] = struct{}{}
	return true
}

func (s *EditorService) EndUpload(storeID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sections, ok := s.busy[storeID]; ok {
		delete(sections, sectionID)
		if len(sections) == 0 {
			delete(s.busy, storeID)
		}
	}
}

func (s *EditorService) UploadInFlight(storeID, sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sections, ok := s.busy[storeID]
	if !ok {
		return false
	}
	_, inFlight := sections[sectionID]
	return inFlight
}
