package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PlayersCreatedCount  int
	MatchesRecordedCount int
	CSVImportsCount      int
	CSVRowErrorsCount    int
	BackupsExportedCount int
	BackupsImportedCount int
	StartupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncPlayersCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersCreatedCount++
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesRecordedCount++
}

func (m *Mock) IncCSVImports() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CSVImportsCount++
}

func (m *Mock) AddCSVRowErrors(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CSVRowErrorsCount += n
}

func (m *Mock) IncBackupsExported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackupsExportedCount++
}

func (m *Mock) IncBackupsImported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackupsImportedCount++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = seconds
}
