package chi

import (
	"context"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/lexical"
	healthuc "github.com/kailas-cloud/scoutdex/internal/usecase/health"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// companyService is the company facade surface the transport consumes.
type companyService interface {
	Create(ctx context.Context, c *domco.Company) (string, error)
	Get(ctx context.Context, id string) (*domco.Company, error)
	Update(ctx context.Context, id string, c *domco.Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f domco.Filters, offset, limit int) ([]*domco.Company, error)
	Count(ctx context.Context, f domco.Filters) (int, error)
	Search(ctx context.Context, query string, f domco.Filters, limit int) ([]sync.Match[*domco.Company], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error)
	AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error
	Evaluations(ctx context.Context, id string) ([]domain.Evaluation, error)
}

// postingService is the posting facade surface the transport consumes.
type postingService interface {
	Create(ctx context.Context, p *dompost.Posting) (string, error)
	Get(ctx context.Context, id string) (*dompost.Posting, error)
	Update(ctx context.Context, id string, p *dompost.Posting) error
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error
	ListForCompany(ctx context.Context, companyID string, includeArchived bool, offset, limit int) ([]*dompost.Posting, error)
	BestMatches(ctx context.Context, minScore float64, limit int) ([]*dompost.Posting, error)
	Search(ctx context.Context, query string, f dompost.Filters, limit int) ([]sync.Match[*dompost.Posting], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error)
}

// articleService is the article facade surface the transport consumes.
type articleService interface {
	Create(ctx context.Context, a *domart.Article) (string, error)
	Get(ctx context.Context, id string) (*domart.Article, error)
	Update(ctx context.Context, id string, a *domart.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f domart.Filters, offset, limit int) ([]*domart.Article, error)
	Count(ctx context.Context, f domart.Filters) (int, error)
	Search(ctx context.Context, query string, f domart.Filters, limit int) ([]sync.Match[*domart.Article], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error)
	AddTags(ctx context.Context, id string, tags ...string) error
	RemoveTags(ctx context.Context, id string, tags ...string) error
}

// skillService is the skill facade surface the transport consumes.
type skillService interface {
	Create(ctx context.Context, sk *domskill.Skill) (string, error)
	Get(ctx context.Context, id string) (*domskill.Skill, error)
	Update(ctx context.Context, id string, sk *domskill.Skill) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f domskill.Filters, offset, limit int) ([]*domskill.Skill, error)
	Count(ctx context.Context, f domskill.Filters) (int, error)
	Search(ctx context.Context, query string, f domskill.Filters, limit int) ([]sync.Match[*domskill.Skill], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error)
	MatchRequirements(ctx context.Context, requirements []string) (lexical.Report, error)
	Top(ctx context.Context, limit int) ([]*domskill.Skill, error)
	SearchByName(ctx context.Context, name string) ([]*domskill.Skill, error)
}

// healthService is the health check surface the transport consumes.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}
