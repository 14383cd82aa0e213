package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CriterionType controls how a raw additional-criterion score contributes
// to the aggregate.
type CriterionType string

const (
	TypePositive      CriterionType = "positive"
	TypeNegative      CriterionType = "negative"
	TypeBidirectional CriterionType = "bidirectional"
)

// Valid reports whether t is one of the known criterion types.
func (t CriterionType) Valid() bool {
	switch t {
	case TypePositive, TypeNegative, TypeBidirectional:
		return true
	}
	return false
}

// Criterion is one evaluation question within a framework group.
// Immutable once part of a saved framework revision.
type Criterion struct {
	Question    string `json:"question"`
	Description string `json:"description"`
}

// AdditionalCriterion is a criterion with a weight and a directional type.
type AdditionalCriterion struct {
	Criterion
	Weight float64       `json:"weight"`
	Type   CriterionType `json:"type"`
}

// CriterionSet maps criterion key to criterion. Keys are unique within a set
// by construction.
type CriterionSet map[string]Criterion

// AdditionalCriterionSet maps criterion key to weighted criterion.
type AdditionalCriterionSet map[string]AdditionalCriterion

// CriteriaGroups holds the four fixed orientation groups of a framework.
type CriteriaGroups struct {
	Service      CriterionSet `json:"service"`
	Research     CriterionSet `json:"research"`
	Intelligence CriterionSet `json:"intelligence"`
	Resource     CriterionSet `json:"resource"`
}

// Framework is a versioned, named bundle of evaluation criteria.
type Framework struct {
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	Version            string                 `json:"version,omitempty"`
	CreatedAt          string                 `json:"created_at,omitempty"`
	UpdatedAt          string                 `json:"updated_at,omitempty"`
	Active             bool                   `json:"active"`
	Criteria           CriteriaGroups         `json:"criteria"`
	AdditionalCriteria AdditionalCriterionSet `json:"additional_criteria"`

	// FilePath is injected at load time and never serialized.
	FilePath string `json:"-"`
}

// Validate checks the framework invariants that can be broken by a caller:
// a name is required and every additional criterion carries a positive weight
// and a known type. Key uniqueness within a group is structural (the groups
// are maps).
func (f *Framework) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("framework name required")
	}
	for key, ac := range f.AdditionalCriteria {
		if ac.Weight <= 0 {
			return fmt.Errorf("additional criterion %q: weight must be > 0, got %v", key, ac.Weight)
		}
		if !ac.Type.Valid() {
			return fmt.Errorf("additional criterion %q: unknown type %q", key, ac.Type)
		}
	}
	return nil
}

// AdditionalWeight is the per-criterion weight snapshot stored with a compass,
// so already-scored evaluations stay stable when the framework changes later.
type AdditionalWeight struct {
	Weight float64       `json:"weight"`
	Type   CriterionType `json:"type"`
}

// AdditionalScores bundles raw additional-criteria scores with the weight
// snapshot taken at evaluation time.
type AdditionalScores struct {
	Scores  map[string]float64          `json:"scores"`
	Weights map[string]AdditionalWeight `json:"weights"`
}

// AxisPoint is a derived plot coordinate pair, serialized as a 2-element array.
type AxisPoint struct {
	X float64
	Y float64
}

func (p AxisPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *AxisPoint) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("axis point: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// Compass is a scored instance of a framework applied to one subnet.
// It references its framework by name, not by foreign key: deleting the
// framework does not invalidate the compass.
type Compass struct {
	Name          string `json:"name"`
	UID           string `json:"uid"`
	Description   string `json:"description"`
	Framework     string `json:"framework"`
	FrameworkPath string `json:"framework_path,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`

	ServiceScores      map[string]float64 `json:"service_oriented_scores"`
	ResearchScores     map[string]float64 `json:"research_oriented_scores"`
	IntelligenceScores map[string]float64 `json:"intelligence_oriented_scores"`
	ResourceScores     map[string]float64 `json:"resource_oriented_scores"`
	Additional         AdditionalScores   `json:"additional_criteria_scores"`

	// Derived fields, replaced on every recomputation and never hand-edited.
	ServiceResearch      AxisPoint `json:"service_research_score"`
	IntelligenceResource AxisPoint `json:"intelligence_resource_score"`
	TotalScore           float64   `json:"total_score"`
	Tier                 string    `json:"tier"`

	// FilePath is injected at load time and never serialized.
	FilePath string `json:"-"`
}

// SubnetRecord is a flat snapshot row of a scored subnet, kept in the SQL
// store for quick listing and charting.
type SubnetRecord struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	UID         string    `json:"uid"`
	Description string    `json:"description,omitempty"`

	ServiceScores      map[string]float64 `json:"service_oriented_scores"`
	ResearchScores     map[string]float64 `json:"research_oriented_scores"`
	IntelligenceScores map[string]float64 `json:"intelligence_oriented_scores"`
	ResourceScores     map[string]float64 `json:"resource_oriented_scores"`
	Additional         AdditionalScores   `json:"additional_criteria_scores"`

	ServiceResearch      AxisPoint `json:"service_research_score"`
	IntelligenceResource AxisPoint `json:"intelligence_resource_score"`
	TotalScore           float64   `json:"total_score"`
	Tier                 string    `json:"tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FrameworkStore persists framework documents. Save and Delete must write a
// backup of any pre-existing document before touching it.
type FrameworkStore interface {
	ListFrameworks(onlyActive bool) ([]*Framework, error)
	GetFramework(name string) (*Framework, error)
	SaveFramework(fw *Framework) (string, error)
	DeleteFramework(name string) error
	BackupFramework(name string) error
}

// CompassStore persists compass evaluation documents under the same
// backup-before-mutate contract as FrameworkStore.
type CompassStore interface {
	ListCompasses() ([]*Compass, error)
	GetCompass(name string) (*Compass, error)
	SaveCompass(c *Compass) (string, error)
	DeleteCompass(name string) error
	BackupCompass(name string) error
}

// SubnetStore keeps flat subnet snapshot records.
type SubnetStore interface {
	UpsertSubnet(ctx context.Context, rec *SubnetRecord) error
	GetSubnet(ctx context.Context, id uuid.UUID) (*SubnetRecord, error)
	ListSubnets(ctx context.Context) ([]*SubnetRecord, error)
	DeleteSubnet(ctx context.Context, id uuid.UUID) error
	ClearSubnets(ctx context.Context) error
	Close() error
}
