package skill

import (
	"context"

	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Manager is the dual-backend synchronization contract consumed by the
// skill facade.
type Manager interface {
	Create(ctx context.Context, sk *domskill.Skill) (string, error)
	Get(ctx context.Context, id string) (*domskill.Skill, error)
	Update(ctx context.Context, id string, sk *domskill.Skill) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domskill.Skill, error)
	Count(ctx context.Context, conditions []filter.Condition) (int, error)
	Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domskill.Skill], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error)
}
