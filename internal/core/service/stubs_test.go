package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

var testLogger = zerolog.Nop()

// stubTxnRunner invokes the callback directly. It records whether a
// transaction was attempted and whether it committed, which is all the
// atomicity tests need: a failed callback must leave committed=false.
type stubTxnRunner struct {
	attempted bool
	committed bool
}

func (r *stubTxnRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.attempted = true
	if err := fn(ctx); err != nil {
		return err
	}
	r.committed = true
	return nil
}

// stubNotifier records scheduled background work.
type stubNotifier struct {
	emails       []string // recipients
	mediaDeletes []string // public IDs
}

func (n *stubNotifier) EnqueueEmail(to, subject, htmlBody string) {
	n.emails = append(n.emails, to)
}

func (n *stubNotifier) EnqueueMediaDelete(publicID string, kind domain.ResourceKind) {
	n.mediaDeletes = append(n.mediaDeletes, publicID)
}

// stubClientRepo is an in-memory ports.ClientRepository.
type stubClientRepo struct {
	clients map[string]*domain.Client
	nextID  int

	pushErr error // injected failure for Push* calls
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return nil, domain.ErrClientExists
		}
	}
	r.nextID++
	cp := *c
	cp.ID = fmt.Sprintf("client-%d", r.nextID)
	r.clients[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubClientRepo) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClientRepo) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByResetToken(ctx context.Context, tokenHash string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ResetPasswordToken != "" && c.ResetPasswordToken == tokenHash {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(ctx context.Context, filter ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) SetRefreshToken(ctx context.Context, id, tok string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.RefreshToken = tok
	return nil
}

func (r *stubClientRepo) SetPassword(ctx context.Context, id, passwordHash string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.PasswordHash = passwordHash
	c.RefreshToken = ""
	c.ResetPasswordToken = ""
	c.ResetPasswordExpiry = time.Time{}
	return nil
}

func (r *stubClientRepo) SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.ResetPasswordToken = tokenHash
	c.ResetPasswordExpiry = expiry
	return nil
}

func (r *stubClientRepo) UpdateStatus(ctx context.Context, id string, status domain.ClientStatus) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Status = status
	return nil
}

func (r *stubClientRepo) PushBlogID(ctx context.Context, clientID, blogID string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	c, ok := r.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.BlogIDs = append(c.BlogIDs, blogID)
	return nil
}

func (r *stubClientRepo) PullBlogID(ctx context.Context, clientID, blogID string) error {
	c, ok := r.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	out := c.BlogIDs[:0]
	for _, id := range c.BlogIDs {
		if id != blogID {
			out = append(out, id)
		}
	}
	c.BlogIDs = out
	return nil
}

func (r *stubClientRepo) PushRequestID(ctx context.Context, clientID, requestID string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	c, ok := r.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.ServiceRequestIDs = append(c.ServiceRequestIDs, requestID)
	return nil
}

func (r *stubClientRepo) PullRequestID(ctx context.Context, clientID, requestID string) error {
	c, ok := r.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	out := c.ServiceRequestIDs[:0]
	for _, id := range c.ServiceRequestIDs {
		if id != requestID {
			out = append(out, id)
		}
	}
	c.ServiceRequestIDs = out
	return nil
}

func (r *stubClientRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

// stubAdminRepo is an in-memory ports.AdminRepository.
type stubAdminRepo struct {
	admins map[string]*domain.Admin
	nextID int

	recordLoginErr error
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return nil, domain.ErrAdminExists
		}
	}
	r.nextID++
	cp := *a
	cp.ID = fmt.Sprintf("admin-%d", r.nextID)
	r.admins[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubAdminRepo) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) List(ctx context.Context) ([]*domain.Admin, error) {
	var out []*domain.Admin
	for _, a := range r.admins {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubAdminRepo) SetRefreshToken(ctx context.Context, id, tok string) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.RefreshToken = tok
	return nil
}

func (r *stubAdminRepo) SetPassword(ctx context.Context, id, passwordHash string) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.PasswordHash = passwordHash
	a.RefreshToken = ""
	return nil
}

func (r *stubAdminRepo) UpdatePermissions(ctx context.Context, id string, perms domain.PermissionSet) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.Permissions = perms
	return nil
}

func (r *stubAdminRepo) SetActive(ctx context.Context, id string, active bool) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.IsActive = active
	return nil
}

func (r *stubAdminRepo) RecordLogin(ctx context.Context, id string, at time.Time, ip string) error {
	if r.recordLoginErr != nil {
		return r.recordLoginErr
	}
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.LastLogin = at
	a.LoginIP = ip
	return nil
}

func (r *stubAdminRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.admins[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.admins, id)
	return nil
}

// stubBlogRepo is an in-memory ports.BlogRepository.
type stubBlogRepo struct {
	blogs  map[string]*domain.Blog
	nextID int

	createErr error
	deleteErr error
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func (r *stubBlogRepo) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.blogs {
		if existing.Slug == b.Slug {
			return nil, domain.ErrBlogExists
		}
	}
	r.nextID++
	cp := *b
	cp.ID = fmt.Sprintf("blog-%d", r.nextID)
	r.blogs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubBlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBlogRepo) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) List(ctx context.Context, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
	var out []*domain.Blog
	for _, b := range r.blogs {
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubBlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	if _, ok := r.blogs[b.ID]; !ok {
		return domain.ErrBlogNotFound
	}
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *stubBlogRepo) UpdateStatus(ctx context.Context, id string, status domain.BlogStatus, publishedAt time.Time) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	b.Status = status
	b.PublishedAt = publishedAt
	return nil
}

func (r *stubBlogRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

// stubCatalogRepo is an in-memory ports.CatalogRepository.
type stubCatalogRepo struct {
	services map[string]*domain.Service
	plans    map[string]*domain.PricingPlan
	nextID   int
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		services: make(map[string]*domain.Service),
		plans:    make(map[string]*domain.PricingPlan),
	}
}

func (r *stubCatalogRepo) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	for _, existing := range r.services {
		if existing.Slug == s.Slug {
			return nil, domain.ErrServiceExists
		}
	}
	r.nextID++
	cp := *s
	cp.ID = fmt.Sprintf("service-%d", r.nextID)
	r.services[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubCatalogRepo) FindServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubCatalogRepo) FindServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	for _, s := range r.services {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (r *stubCatalogRepo) ListServices(ctx context.Context, status domain.CatalogStatus) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if status != "" && s.Status != status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateService(ctx context.Context, s *domain.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *stubCatalogRepo) DeleteService(ctx context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *stubCatalogRepo) CreatePlan(ctx context.Context, p *domain.PricingPlan) (*domain.PricingPlan, error) {
	r.nextID++
	cp := *p
	cp.ID = fmt.Sprintf("plan-%d", r.nextID)
	r.plans[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubCatalogRepo) FindPlanByID(ctx context.Context, id string) (*domain.PricingPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubCatalogRepo) ListPlans(ctx context.Context, status domain.CatalogStatus) ([]*domain.PricingPlan, error) {
	var out []*domain.PricingPlan
	for _, p := range r.plans {
		if status != "" && p.Status != status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdatePlan(ctx context.Context, p *domain.PricingPlan) error {
	if _, ok := r.plans[p.ID]; !ok {
		return domain.ErrPlanNotFound
	}
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *stubCatalogRepo) DeletePlan(ctx context.Context, id string) error {
	if _, ok := r.plans[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

// stubRequestRepo is an in-memory ports.RequestRepository.
type stubRequestRepo struct {
	requests map[string]*domain.ServiceRequest
	nextID   int
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.ServiceRequest)}
}

func (r *stubRequestRepo) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	r.nextID++
	cp := *req
	cp.ID = fmt.Sprintf("request-%d", r.nextID)
	r.requests[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubRequestRepo) FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *stubRequestRepo) List(ctx context.Context, filter ports.ListRequestsFilter) ([]*domain.ServiceRequest, int64, error) {
	var out []*domain.ServiceRequest
	for _, req := range r.requests {
		if filter.ClientID != "" && req.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubRequestRepo) UpdateReview(ctx context.Context, id string, status domain.RequestStatus, notes, reviewedBy string) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = status
	req.AdminNotes = notes
	req.ReviewedBy = reviewedBy
	return nil
}

func (r *stubRequestRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

// stubContactRepo is an in-memory ports.ContactRepository.
type stubContactRepo struct {
	contacts map[string]*domain.Contact
	nextID   int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.nextID++
	cp := *c
	cp.ID = fmt.Sprintf("contact-%d", r.nextID)
	r.contacts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubContactRepo) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubContactRepo) List(ctx context.Context, filter ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	var out []*domain.Contact
	for _, c := range r.contacts {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubContactRepo) SetResponse(ctx context.Context, id, response, adminID string) error {
	c, ok := r.contacts[id]
	if !ok {
		return domain.ErrContactNotFound
	}
	c.Response = response
	c.RespondedBy = adminID
	c.Status = domain.ContactResolved
	return nil
}

func (r *stubContactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	c, ok := r.contacts[id]
	if !ok {
		return domain.ErrContactNotFound
	}
	c.Status = status
	return nil
}

// stubCareerRepo is an in-memory ports.CareerRepository.
type stubCareerRepo struct {
	applications map[string]*domain.CareerApplication
	nextID       int
}

func newStubCareerRepo() *stubCareerRepo {
	return &stubCareerRepo{applications: make(map[string]*domain.CareerApplication)}
}

func (r *stubCareerRepo) Create(ctx context.Context, a *domain.CareerApplication) (*domain.CareerApplication, error) {
	r.nextID++
	cp := *a
	cp.ID = fmt.Sprintf("career-%d", r.nextID)
	r.applications[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubCareerRepo) FindByID(ctx context.Context, id string) (*domain.CareerApplication, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrCareerNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubCareerRepo) List(ctx context.Context, filter ports.ListCareersFilter) ([]*domain.CareerApplication, int64, error) {
	var out []*domain.CareerApplication
	for _, a := range r.applications {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if filter.Position != "" && a.Position != filter.Position {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubCareerRepo) UpdateStatus(ctx context.Context, id string, status domain.CareerStatus) error {
	a, ok := r.applications[id]
	if !ok {
		return domain.ErrCareerNotFound
	}
	a.Status = status
	return nil
}

func (r *stubCareerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.applications[id]; !ok {
		return domain.ErrCareerNotFound
	}
	delete(r.applications, id)
	return nil
}

// stubDedup is an in-memory DedupChecker with optional failure injection.
type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(ctx context.Context, email, subject string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[email+"|"+subject], nil
}

func (d *stubDedup) Mark(ctx context.Context, email, subject string) error {
	d.seen[email+"|"+subject] = true
	return nil
}

// activeAdmin builds an active admin with the given role and permissions.
func activeAdmin(id, role string, perms domain.PermissionSet) *domain.Admin {
	return &domain.Admin{
		ID:          id,
		FullName:    "Test Admin",
		Email:       id + "@example.com",
		Role:        role,
		Permissions: perms,
		IsActive:    true,
	}
}
