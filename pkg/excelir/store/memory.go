package store

import (
	"sync"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

type sheetRecord struct {
	structure []ir.Column
	rows      []ir.Row
	formulas  []ir.Formula
	styles    []ir.Style
	ranges    []ir.StyledRange
	charts    []ir.Chart
	merges    []string
}

type projectRecord struct {
	meta    ir.Metadata
	hasMeta bool
	order   []string
	sheets  map[string]*sheetRecord
}

// Memory is an in-memory Store used by tests and as the reference
// implementation of the contract.
type Memory struct {
	mu       sync.RWMutex
	projects map[string]*projectRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{projects: make(map[string]*projectRecord)}
}

func (m *Memory) project(name string) *projectRecord {
	p, ok := m.projects[name]
	if !ok {
		p = &projectRecord{sheets: make(map[string]*sheetRecord)}
		m.projects[name] = p
	}
	return p
}

func (m *Memory) sheet(project, sheet string) *sheetRecord {
	p := m.project(project)
	s, ok := p.sheets[sheet]
	if !ok {
		s = &sheetRecord{}
		p.sheets[sheet] = s
		p.order = append(p.order, sheet)
	}
	return s
}

func (m *Memory) lookup(project, sheet string) (*sheetRecord, error) {
	p, ok := m.projects[project]
	if !ok {
		return nil, ErrNotFound
	}
	s, ok := p.sheets[sheet]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Memory) PutMetadata(project string, meta ir.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.project(project)
	p.meta = meta
	p.hasMeta = true
	return nil
}

func (m *Memory) Metadata(project string) (ir.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[project]
	if !ok || !p.hasMeta {
		return ir.Metadata{}, ErrNotFound
	}
	return p.meta, nil
}

func (m *Memory) PutStructure(project, sheet string, cols []ir.Column) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(project, sheet).structure = cols
	return nil
}

func (m *Memory) Structure(project, sheet string) ([]ir.Column, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, err
	}
	return s.structure, nil
}

func (m *Memory) PutRows(project, sheet string, rows []ir.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(project, sheet).rows = rows
	return nil
}

func (m *Memory) Rows(project, sheet string) ([]ir.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, err
	}
	return s.rows, nil
}

func (m *Memory) PutFormulas(project, sheet string, formulas []ir.Formula) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(project, sheet).formulas = formulas
	return nil
}

func (m *Memory) Formulas(project, sheet string) ([]ir.Formula, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, err
	}
	return s.formulas, nil
}

func (m *Memory) PutStyles(project, sheet string, table []ir.Style, ranges []ir.StyledRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheet(project, sheet)
	s.styles = table
	s.ranges = ranges
	return nil
}

func (m *Memory) Styles(project, sheet string) ([]ir.Style, []ir.StyledRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, nil, err
	}
	return s.styles, s.ranges, nil
}

func (m *Memory) PutCharts(project, sheet string, charts []ir.Chart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(project, sheet).charts = charts
	return nil
}

func (m *Memory) Charts(project, sheet string) ([]ir.Chart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, err
	}
	return s.charts, nil
}

func (m *Memory) PutMerges(project, sheet string, merges []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(project, sheet).merges = merges
	return nil
}

func (m *Memory) Merges(project, sheet string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(project, sheet)
	if err != nil {
		return nil, err
	}
	return s.merges, nil
}

func (m *Memory) Sheets(project string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[project]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), p.order...), nil
}
