package engine

import (
	"github.com/guideflow/guideflow/internal/repository"
	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// FlowRepo defines the interface for flow document persistence, matching repository.FlowRepository.
type FlowRepo interface {
	Save(doc *domain.FlowDocument) error
	FindByID(id string) (*domain.FlowDocument, error)
	FindAll() ([]*domain.FlowDocument, error)
	Delete(id string) error
	Search(query string) ([]*domain.FlowDocument, error)
}

// RevisionRepo defines the interface for the flow revision archive.
type RevisionRepo interface {
	Archive(doc *domain.FlowDocument) error
	ListByFlow(flowID string) ([]repository.RevisionRow, error)
	Get(flowID string, revision int) (*domain.FlowDocument, error)
	Delete(flowID string) error
}
