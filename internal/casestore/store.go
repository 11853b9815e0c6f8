// Package casestore persists finished intake interviews as JSON documents on
// local disk: one file per case plus a rolling aggregate.
package casestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/casewise/intake/internal/model"
)

const aggregateFileName = "all_cases.json"

// CaseSummary is the answer digest placed at the top of every saved case.
type CaseSummary struct {
	ChildAge            *float64 `json:"child_age"`
	WeeksPregnant       int      `json:"weeks_pregnant"`
	DifficultDelivery   bool     `json:"difficult_delivery"`
	NICUStay            any      `json:"nicu_stay"`
	NICUDuration        any      `json:"nicu_duration"`
	HIETherapy          any      `json:"hie_therapy"`
	BrainScan           any      `json:"brain_scan"`
	DevelopmentalDelays any      `json:"developmental_delays"`
	PreviousLawyer      any      `json:"previous_lawyer"`
	BirthState          string   `json:"birth_state"`
}

// CaseAssessment carries the final score of a saved case.
type CaseAssessment struct {
	Ranking  model.Ranking `json:"ranking"`
	Points   int           `json:"points"`
	Eligible bool          `json:"eligible"`
}

// CaseDocument is the on-disk shape of one saved interview.
type CaseDocument struct {
	CaseSummary       CaseSummary          `json:"case_summary"`
	CaseAssessment    CaseAssessment       `json:"case_assessment"`
	Timestamp         string               `json:"timestamp"`
	DetailedResponses map[string]any       `json:"detailed_responses"`
	PhasesCompleted   map[model.Phase]bool `json:"phases_completed"`
	RawCaseData       map[string]any       `json:"raw_case_data"`
}

// FileStore writes case documents under a single data directory.
type FileStore struct {
	dir    string
	logger *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating case data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger, now: time.Now}, nil
}

// Save writes the case to its own timestamped file and appends it to the
// aggregate file. Cases only reach Save after passing eligibility.
func (s *FileStore) Save(rec *model.CaseRecord, answers map[model.Phase]any) error {
	timestamp := s.now().Format("20060102_150405")
	doc := buildDocument(rec, answers, timestamp)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding case data: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("case_%s.json", timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing case file: %w", err)
	}

	if err := s.appendAggregate(doc); err != nil {
		// the individual file is already on disk; the aggregate is best effort
		s.logger.Warn("could not update aggregate case file", zap.Error(err))
	}

	s.logger.Info("case data saved", zap.String("file", path))
	return nil
}

// Load reads back a single case document, for review tooling.
func (s *FileStore) Load(name string) (*CaseDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}
	var doc CaseDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding case file: %w", err)
	}
	return &doc, nil
}

// ListCases returns the individual case file names in the data directory.
func (s *FileStore) ListCases() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "case_*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing case files: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

func (s *FileStore) appendAggregate(doc CaseDocument) error {
	path := filepath.Join(s.dir, aggregateFileName)

	var cases []CaseDocument
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cases); err != nil {
			s.logger.Warn("aggregate file corrupt, starting fresh", zap.Error(err))
			cases = nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading aggregate file: %w", err)
	}

	cases = append(cases, doc)
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding aggregate file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing aggregate file: %w", err)
	}
	return nil
}

func buildDocument(rec *model.CaseRecord, answers map[model.Phase]any, timestamp string) CaseDocument {
	return CaseDocument{
		CaseSummary: CaseSummary{
			ChildAge:            rec.Age,
			WeeksPregnant:       rec.WeeksPregnant,
			DifficultDelivery:   rec.DifficultDelivery,
			NICUStay:            answers[model.PhaseNICU],
			NICUDuration:        answers[model.PhaseNICUDuration],
			HIETherapy:          answers[model.PhaseHIETherapy],
			BrainScan:           answers[model.PhaseBrainScan],
			DevelopmentalDelays: answers[model.PhaseMilestones],
			PreviousLawyer:      answers[model.PhaseLawyer],
			BirthState:          rec.State,
		},
		CaseAssessment: CaseAssessment{
			Ranking:  rec.Ranking,
			Points:   rec.Points,
			Eligible: true,
		},
		Timestamp: timestamp,
		DetailedResponses: map[string]any{
			"age_response":           answers[model.PhaseAge],
			"pregnancy_response":     answers[model.PhasePregnancy],
			"nicu_response":          answers[model.PhaseNICU],
			"nicu_duration_response": answers[model.PhaseNICUDuration],
			"hie_therapy_response":   answers[model.PhaseHIETherapy],
			"brain_scan_response":    answers[model.PhaseBrainScan],
			"milestones_response":    answers[model.PhaseMilestones],
			"lawyer_response":        answers[model.PhaseLawyer],
			"state_response":         answers[model.PhaseState],
		},
		PhasesCompleted: rec.PhasesCompleted,
		RawCaseData: map[string]any{
			"age":                rec.Age,
			"state":              rec.State,
			"weeks_pregnant":     rec.WeeksPregnant,
			"difficult_delivery": rec.DifficultDelivery,
		},
	}
}
