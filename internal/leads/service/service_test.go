package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/events"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/ports"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/repository"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/internal/leads/transport"
	"github.com/kirillDR01/Grins-irrigation-platform-sub002/platform/apperr"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory repository reproducing the store-side rules:
// every update bumps updated_at, the first move to contacted stamps
// contacted_at, and Convert only matches a still-qualified lead.
type fakeRepo struct {
	leads      map[uuid.UUID]repository.Lead
	activities map[uuid.UUID][]repository.Activity

	statusCalls  int
	convertCalls int
	notesErr     error
}

func newFakeRepo(leads ...repository.Lead) *fakeRepo {
	r := &fakeRepo{
		leads:      make(map[uuid.UUID]repository.Lead),
		activities: make(map[uuid.UUID][]repository.Activity),
	}
	for _, lead := range leads {
		r.leads[lead.ID] = lead
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (r *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Lead, int, error) {
	items := make([]repository.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		items = append(items, lead)
	}
	return items, len(items), nil
}

func (r *fakeRepo) Create(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	now := time.Now()
	lead := repository.Lead{
		ID:        uuid.New(),
		Name:      params.Name,
		Phone:     params.Phone,
		Email:     params.Email,
		ZipCode:   params.ZipCode,
		Situation: params.Situation,
		Status:    "new",
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Lead, error) {
	r.statusCalls++
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	lead.Status = status
	if status == "contacted" && lead.ContactedAt == nil {
		now := time.Now()
		lead.ContactedAt = &now
	}
	lead.UpdatedAt = time.Now()
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) UpdateAssignee(_ context.Context, id uuid.UUID, assignedTo *uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	lead.AssignedTo = assignedTo
	lead.UpdatedAt = time.Now()
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) UpdateNotes(_ context.Context, id uuid.UUID, notes *string) (repository.Lead, error) {
	if r.notesErr != nil {
		return repository.Lead{}, r.notesErr
	}
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	lead.Notes = notes
	lead.UpdatedAt = time.Now()
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeRepo) Convert(_ context.Context, id uuid.UUID, customerID uuid.UUID) (repository.Lead, error) {
	r.convertCalls++
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	if lead.Status != "qualified" || lead.CustomerID != nil {
		return repository.Lead{}, repository.ErrConversionConflict
	}
	now := time.Now()
	lead.Status = "converted"
	lead.CustomerID = &customerID
	lead.ConvertedAt = &now
	lead.UpdatedAt = now
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) AddActivity(_ context.Context, leadID uuid.UUID, action string, meta map[string]interface{}) error {
	r.activities[leadID] = append(r.activities[leadID], repository.Activity{
		ID:        uuid.New(),
		LeadID:    leadID,
		Action:    action,
		Meta:      meta,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeRepo) ListActivities(_ context.Context, leadID uuid.UUID) ([]repository.Activity, error) {
	return r.activities[leadID], nil
}

var _ repository.LeadsRepository = (*fakeRepo)(nil)

type fakeCustomers struct {
	calls int
	err   error
	id    uuid.UUID
	last  ports.CreateCustomerParams
}

func (f *fakeCustomers) CreateCustomer(_ context.Context, params ports.CreateCustomerParams) (uuid.UUID, error) {
	f.calls++
	f.last = params
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if f.id == uuid.Nil {
		f.id = uuid.New()
	}
	return f.id, nil
}

type fakeJobs struct {
	calls    int
	err      error
	id       uuid.UUID
	lastDesc string
}

func (f *fakeJobs) CreateJob(_ context.Context, _ uuid.UUID, description string) (uuid.UUID, error) {
	f.calls++
	f.lastDesc = description
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if f.id == uuid.Nil {
		f.id = uuid.New()
	}
	return f.id, nil
}

// recordingBus captures published events without dispatching.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func qualifiedLead(name, situation string) repository.Lead {
	now := time.Now()
	email := "jane@example.com"
	return repository.Lead{
		ID:        uuid.New(),
		Name:      name,
		Phone:     "+15125550147",
		Email:     &email,
		ZipCode:   "78704",
		Situation: situation,
		Status:    "qualified",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// leadInStatus builds a lead in the given status with the fields the store
// guarantees for that status: a converted lead always carries a customer id
// and conversion time, a contacted lead its first-contact time.
func leadInStatus(name, situation, status string) repository.Lead {
	lead := qualifiedLead(name, situation)
	lead.Status = status
	now := time.Now()
	switch status {
	case "converted":
		customerID := uuid.New()
		lead.CustomerID = &customerID
		lead.ConvertedAt = &now
		lead.ContactedAt = &now
	case "contacted":
		lead.ContactedAt = &now
	}
	return lead
}

// checkLeadInvariants asserts the record-level invariants that must hold
// after every mutation.
func checkLeadInvariants(t *testing.T, lead repository.Lead) {
	t.Helper()
	converted := lead.Status == "converted"
	if converted != (lead.CustomerID != nil) {
		t.Errorf("invariant violated: status=%q but customerID=%v", lead.Status, lead.CustomerID)
	}
	if converted != (lead.ConvertedAt != nil) {
		t.Errorf("invariant violated: status=%q but convertedAt=%v", lead.Status, lead.ConvertedAt)
	}
}

func newTestService(repo *fakeRepo) (*Service, *fakeCustomers, *fakeJobs, *recordingBus) {
	customers := &fakeCustomers{}
	jobs := &fakeJobs{}
	bus := &recordingBus{}
	return New(repo, customers, jobs, bus), customers, jobs, bus
}

func TestUpdateStatusRejectsIllegalTransitionWithoutRepoWrite(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{"new", "converted"},
		{"contacted", "new"},
		{"contacted", "contacted"},
		{"qualified", "new"},
		{"lost", "qualified"},
		{"converted", "lost"},
		{"spam", "new"},
	}

	for _, tc := range cases {
		lead := leadInStatus("Jane Smith", "repair", tc.from)
		repo := newFakeRepo(lead)
		svc, _, _, _ := newTestService(repo)

		_, err := svc.UpdateStatus(context.Background(), lead.ID, transport.UpdateLeadStatusRequest{Status: tc.to})
		if !apperr.Is(err, apperr.KindInvalidTransition) {
			t.Errorf("%s -> %s: expected InvalidTransition, got %v", tc.from, tc.to, err)
		}
		if repo.statusCalls != 0 {
			t.Errorf("%s -> %s: expected no repository write, got %d", tc.from, tc.to, repo.statusCalls)
		}
		checkLeadInvariants(t, repo.leads[lead.ID])
	}
}

func TestUpdateStatusAllowsEveryPolicyEdge(t *testing.T) {
	// converted is excluded: it is only reachable through Convert.
	cases := []struct {
		from string
		to   string
	}{
		{"new", "contacted"},
		{"new", "qualified"},
		{"new", "lost"},
		{"new", "spam"},
		{"contacted", "qualified"},
		{"contacted", "lost"},
		{"contacted", "spam"},
		{"qualified", "lost"},
		{"lost", "new"},
	}

	for _, tc := range cases {
		lead := leadInStatus("Jane Smith", "repair", tc.from)
		repo := newFakeRepo(lead)
		svc, _, _, bus := newTestService(repo)

		resp, err := svc.UpdateStatus(context.Background(), lead.ID, transport.UpdateLeadStatusRequest{Status: tc.to})
		if err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
			continue
		}
		if resp.Status != tc.to {
			t.Errorf("%s -> %s: response status %q", tc.from, tc.to, resp.Status)
		}
		if len(bus.published) != 1 {
			t.Errorf("%s -> %s: expected 1 event, got %d", tc.from, tc.to, len(bus.published))
		}
		checkLeadInvariants(t, repo.leads[lead.ID])
	}
}

func TestUpdateStatusStampsContactedAtOnce(t *testing.T) {
	lead := qualifiedLead("Jane Smith", "repair")
	lead.Status = "new"
	repo := newFakeRepo(lead)
	svc, _, _, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, lead.ID, transport.UpdateLeadStatusRequest{Status: "contacted"})
	if err != nil {
		t.Fatalf("new -> contacted: %v", err)
	}
	if resp.ContactedAt == nil {
		t.Fatalf("expected contactedAt to be set on first contact")
	}
	stamped := *resp.ContactedAt

	// Walk contacted -> lost -> new -> contacted; the stamp must not move.
	for _, status := range []string{"lost", "new", "contacted"} {
		resp, err = svc.UpdateStatus(ctx, lead.ID, transport.UpdateLeadStatusRequest{Status: status})
		if err != nil {
			t.Fatalf("-> %s: %v", status, err)
		}
	}
	if resp.ContactedAt == nil || !resp.ContactedAt.Equal(stamped) {
		t.Fatalf("contactedAt changed after re-contact: %v vs %v", resp.ContactedAt, stamped)
	}
}

func TestUpdateStatusUnknownLead(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _, _ := newTestService(repo)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), transport.UpdateLeadStatusRequest{Status: "contacted"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestAssignAndClearAssignment(t *testing.T) {
	lead := qualifiedLead("Jane Smith", "repair")
	repo := newFakeRepo(lead)
	svc, _, _, bus := newTestService(repo)
	ctx := context.Background()

	staff := uuid.New()
	resp, err := svc.Assign(ctx, lead.ID, transport.AssignLeadRequest{
		AssignedTo: transport.OptionalUUID{Value: &staff, Set: true},
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if resp.AssignedTo == nil || *resp.AssignedTo != staff {
		t.Fatalf("expected assignedTo=%s, got %v", staff, resp.AssignedTo)
	}

	resp, err = svc.Assign(ctx, lead.ID, transport.AssignLeadRequest{
		AssignedTo: transport.OptionalUUID{Value: nil, Set: true},
	})
	if err != nil {
		t.Fatalf("clear assignment: %v", err)
	}
	if resp.AssignedTo != nil {
		t.Fatalf("expected assignment cleared, got %v", resp.AssignedTo)
	}
	if len(bus.published) != 2 {
		t.Fatalf("expected 2 assignment events, got %d", len(bus.published))
	}
}

func TestAssignRequiresFieldPresence(t *testing.T) {
	lead := qualifiedLead("Jane Smith", "repair")
	repo := newFakeRepo(lead)
	svc, _, _, _ := newTestService(repo)

	_, err := svc.Assign(context.Background(), lead.ID, transport.AssignLeadRequest{})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for absent assignedTo, got %v", err)
	}
}

func TestUpdateDispatchesStatusBeforeOtherFields(t *testing.T) {
	lead := leadInStatus("Jane Smith", "repair", "converted")
	repo := newFakeRepo(lead)
	svc, _, _, _ := newTestService(repo)

	notes := "call back tomorrow"
	status := "lost"
	_, err := svc.Update(context.Background(), lead.ID, transport.UpdateLeadRequest{
		Status: &status,
		Notes:  &notes,
	})
	if !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
	// The illegal status change must fail the whole request before the
	// notes edit is applied.
	if repo.leads[lead.ID].Notes != nil {
		t.Fatalf("expected notes untouched after rejected status change")
	}
}

func TestUpdateAppliesGroupsSequentially(t *testing.T) {
	lead := leadInStatus("Jane Smith", "repair", "new")
	repo := newFakeRepo(lead)
	repo.notesErr = errors.New("notes write failed")
	svc, _, _, _ := newTestService(repo)

	status := "contacted"
	notes := "call back tomorrow"
	_, err := svc.Update(context.Background(), lead.ID, transport.UpdateLeadRequest{
		Status: &status,
		Notes:  &notes,
	})
	if err == nil {
		t.Fatalf("expected error from failing notes write")
	}
	// Groups are separate writes: the status change applied before the
	// notes group failed, and it stays applied.
	if repo.leads[lead.ID].Status != "contacted" {
		t.Fatalf("expected status group applied, got %q", repo.leads[lead.ID].Status)
	}
	if repo.leads[lead.ID].Notes != nil {
		t.Fatalf("expected notes untouched, got %v", *repo.leads[lead.ID].Notes)
	}
}

func TestUpdateWithoutFieldsReturnsCurrentLead(t *testing.T) {
	lead := qualifiedLead("Jane Smith", "repair")
	repo := newFakeRepo(lead)
	svc, _, _, _ := newTestService(repo)

	resp, err := svc.Update(context.Background(), lead.ID, transport.UpdateLeadRequest{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if resp.ID != lead.ID || resp.Status != "qualified" {
		t.Fatalf("expected current lead back, got %+v", resp)
	}
}

func TestCreateNormalizesPhoneAndStartsNew(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _, bus := newTestService(repo)

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:      "Jane Smith",
		Phone:     "(512) 555-0147",
		Situation: "repair",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Status != "new" {
		t.Fatalf("expected status new, got %q", resp.Status)
	}
	if resp.Phone != "+15125550147" {
		t.Fatalf("expected normalized phone, got %q", resp.Phone)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected LeadCreated event, got %d events", len(bus.published))
	}
}

func TestDeleteUnknownLead(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _, _ := newTestService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestListActivitiesAfterStatusChange(t *testing.T) {
	lead := qualifiedLead("Jane Smith", "repair")
	lead.Status = "new"
	repo := newFakeRepo(lead)
	svc, _, _, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, lead.ID, transport.UpdateLeadStatusRequest{Status: "contacted"}); err != nil {
		t.Fatalf("status change: %v", err)
	}

	activities, err := svc.ListActivities(ctx, lead.ID)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 1 || activities[0].Action != "status_changed" {
		t.Fatalf("expected one status_changed activity, got %+v", activities)
	}
}

func TestErrConversionConflictIsNotNotFound(t *testing.T) {
	if errors.Is(repository.ErrConversionConflict, repository.ErrNotFound) {
		t.Fatalf("sentinels must be distinct")
	}
}
