package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/lexical"
	healthuc "github.com/kailas-cloud/scoutdex/internal/usecase/health"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

type mockCompanies struct {
	createFn        func(ctx context.Context, c *domco.Company) (string, error)
	getFn           func(ctx context.Context, id string) (*domco.Company, error)
	updateFn        func(ctx context.Context, id string, c *domco.Company) error
	deleteFn        func(ctx context.Context, id string) error
	listFn          func(ctx context.Context, f domco.Filters, offset, limit int) ([]*domco.Company, error)
	countFn         func(ctx context.Context, f domco.Filters) (int, error)
	searchFn        func(ctx context.Context, query string, f domco.Filters, limit int) ([]sync.Match[*domco.Company], error)
	findSimilarFn   func(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error)
	addEvaluationFn func(ctx context.Context, id string, ev domain.Evaluation) error
	evaluationsFn   func(ctx context.Context, id string) ([]domain.Evaluation, error)
}

func (m *mockCompanies) Create(ctx context.Context, c *domco.Company) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return "c-1", nil
}

func (m *mockCompanies) Get(ctx context.Context, id string) (*domco.Company, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCompanies) Update(ctx context.Context, id string, c *domco.Company) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, c)
	}
	return nil
}

func (m *mockCompanies) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCompanies) List(ctx context.Context, f domco.Filters, offset, limit int) ([]*domco.Company, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, offset, limit)
	}
	return nil, nil
}

func (m *mockCompanies) Count(ctx context.Context, f domco.Filters) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *mockCompanies) Search(ctx context.Context, query string, f domco.Filters, limit int) ([]sync.Match[*domco.Company], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, f, limit)
	}
	return nil, nil
}

func (m *mockCompanies) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func (m *mockCompanies) AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error {
	if m.addEvaluationFn != nil {
		return m.addEvaluationFn(ctx, id, ev)
	}
	return nil
}

func (m *mockCompanies) Evaluations(ctx context.Context, id string) ([]domain.Evaluation, error) {
	if m.evaluationsFn != nil {
		return m.evaluationsFn(ctx, id)
	}
	return nil, nil
}

type mockPostings struct {
	createFn         func(ctx context.Context, p *dompost.Posting) (string, error)
	getFn            func(ctx context.Context, id string) (*dompost.Posting, error)
	updateFn         func(ctx context.Context, id string, p *dompost.Posting) error
	deleteFn         func(ctx context.Context, id string) error
	archiveFn        func(ctx context.Context, id string) error
	addEvaluationFn  func(ctx context.Context, id string, ev domain.Evaluation) error
	listForCompanyFn func(ctx context.Context, companyID string, includeArchived bool, offset, limit int) ([]*dompost.Posting, error)
	bestMatchesFn    func(ctx context.Context, minScore float64, limit int) ([]*dompost.Posting, error)
	searchFn         func(ctx context.Context, query string, f dompost.Filters, limit int) ([]sync.Match[*dompost.Posting], error)
	findSimilarFn    func(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error)
}

func (m *mockPostings) Create(ctx context.Context, p *dompost.Posting) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return "p-1", nil
}

func (m *mockPostings) Get(ctx context.Context, id string) (*dompost.Posting, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPostings) Update(ctx context.Context, id string, p *dompost.Posting) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, p)
	}
	return nil
}

func (m *mockPostings) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPostings) Archive(ctx context.Context, id string) error {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, id)
	}
	return nil
}

func (m *mockPostings) AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error {
	if m.addEvaluationFn != nil {
		return m.addEvaluationFn(ctx, id, ev)
	}
	return nil
}

func (m *mockPostings) ListForCompany(ctx context.Context, companyID string, includeArchived bool, offset, limit int) ([]*dompost.Posting, error) {
	if m.listForCompanyFn != nil {
		return m.listForCompanyFn(ctx, companyID, includeArchived, offset, limit)
	}
	return nil, nil
}

func (m *mockPostings) BestMatches(ctx context.Context, minScore float64, limit int) ([]*dompost.Posting, error) {
	if m.bestMatchesFn != nil {
		return m.bestMatchesFn(ctx, minScore, limit)
	}
	return nil, nil
}

func (m *mockPostings) Search(ctx context.Context, query string, f dompost.Filters, limit int) ([]sync.Match[*dompost.Posting], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, f, limit)
	}
	return nil, nil
}

func (m *mockPostings) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

type mockArticles struct {
	createFn      func(ctx context.Context, a *domart.Article) (string, error)
	getFn         func(ctx context.Context, id string) (*domart.Article, error)
	updateFn      func(ctx context.Context, id string, a *domart.Article) error
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, f domart.Filters, offset, limit int) ([]*domart.Article, error)
	countFn       func(ctx context.Context, f domart.Filters) (int, error)
	searchFn      func(ctx context.Context, query string, f domart.Filters, limit int) ([]sync.Match[*domart.Article], error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error)
	addTagsFn     func(ctx context.Context, id string, tags ...string) error
	removeTagsFn  func(ctx context.Context, id string, tags ...string) error
}

func (m *mockArticles) Create(ctx context.Context, a *domart.Article) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return "a-1", nil
}

func (m *mockArticles) Get(ctx context.Context, id string) (*domart.Article, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockArticles) Update(ctx context.Context, id string, a *domart.Article) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, a)
	}
	return nil
}

func (m *mockArticles) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockArticles) List(ctx context.Context, f domart.Filters, offset, limit int) ([]*domart.Article, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, offset, limit)
	}
	return nil, nil
}

func (m *mockArticles) Count(ctx context.Context, f domart.Filters) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *mockArticles) Search(ctx context.Context, query string, f domart.Filters, limit int) ([]sync.Match[*domart.Article], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, f, limit)
	}
	return nil, nil
}

func (m *mockArticles) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func (m *mockArticles) AddTags(ctx context.Context, id string, tags ...string) error {
	if m.addTagsFn != nil {
		return m.addTagsFn(ctx, id, tags...)
	}
	return nil
}

func (m *mockArticles) RemoveTags(ctx context.Context, id string, tags ...string) error {
	if m.removeTagsFn != nil {
		return m.removeTagsFn(ctx, id, tags...)
	}
	return nil
}

type mockSkills struct {
	createFn            func(ctx context.Context, sk *domskill.Skill) (string, error)
	getFn               func(ctx context.Context, id string) (*domskill.Skill, error)
	updateFn            func(ctx context.Context, id string, sk *domskill.Skill) error
	deleteFn            func(ctx context.Context, id string) error
	listFn              func(ctx context.Context, f domskill.Filters, offset, limit int) ([]*domskill.Skill, error)
	countFn             func(ctx context.Context, f domskill.Filters) (int, error)
	searchFn            func(ctx context.Context, query string, f domskill.Filters, limit int) ([]sync.Match[*domskill.Skill], error)
	findSimilarFn       func(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error)
	matchRequirementsFn func(ctx context.Context, requirements []string) (lexical.Report, error)
	topFn               func(ctx context.Context, limit int) ([]*domskill.Skill, error)
	searchByNameFn      func(ctx context.Context, name string) ([]*domskill.Skill, error)
}

func (m *mockSkills) Create(ctx context.Context, sk *domskill.Skill) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, sk)
	}
	return "s-1", nil
}

func (m *mockSkills) Get(ctx context.Context, id string) (*domskill.Skill, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSkills) Update(ctx context.Context, id string, sk *domskill.Skill) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, sk)
	}
	return nil
}

func (m *mockSkills) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSkills) List(ctx context.Context, f domskill.Filters, offset, limit int) ([]*domskill.Skill, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, offset, limit)
	}
	return nil, nil
}

func (m *mockSkills) Count(ctx context.Context, f domskill.Filters) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *mockSkills) Search(ctx context.Context, query string, f domskill.Filters, limit int) ([]sync.Match[*domskill.Skill], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, f, limit)
	}
	return nil, nil
}

func (m *mockSkills) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func (m *mockSkills) MatchRequirements(ctx context.Context, requirements []string) (lexical.Report, error) {
	if m.matchRequirementsFn != nil {
		return m.matchRequirementsFn(ctx, requirements)
	}
	return lexical.Report{}, nil
}

func (m *mockSkills) Top(ctx context.Context, limit int) ([]*domskill.Skill, error) {
	if m.topFn != nil {
		return m.topFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockSkills) SearchByName(ctx context.Context, name string) ([]*domskill.Skill, error) {
	if m.searchByNameFn != nil {
		return m.searchByNameFn(ctx, name)
	}
	return nil, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

type testServer struct {
	srv       *Server
	companies *mockCompanies
	postings  *mockPostings
	articles  *mockArticles
	skills    *mockSkills
	health    *mockHealth
	handler   http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		companies: &mockCompanies{},
		postings:  &mockPostings{},
		articles:  &mockArticles{},
		skills:    &mockSkills{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"store": healthuc.CheckOK},
		}},
	}
	ts.srv = NewServer(ts.companies, ts.postings, ts.articles, ts.skills, ts.health, zap.NewNop(), 20, 100)
	ts.handler = ts.srv.Router(nil)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func testCompany(id, name string) *domco.Company {
	c := &domco.Company{
		Name:        name,
		Description: "An autonomous warehouse robotics company.",
		Industry:    domco.IndustrySaaS,
		Stage:       domco.StageSeed,
		FitScore:    0.8,
	}
	c.SetEntityID(id)
	c.StampCreate(time.Unix(1700000000, 0).UTC())
	return c
}
