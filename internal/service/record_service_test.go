package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"hospital-data/internal/domain"
	"hospital-data/internal/events"
	"hospital-data/internal/records"
	"hospital-data/internal/repository"
	"hospital-data/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type recordingPublisher struct {
	events []events.RecordCreated
	err    error
}

func (p *recordingPublisher) RecordCreated(_ context.Context, e events.RecordCreated) error {
	p.events = append(p.events, e)
	return p.err
}

type failingAudit struct{}

func (failingAudit) Append(context.Context, repository.Submission) error { return assert.AnError }

func (failingAudit) ListRecent(context.Context, string, int) ([]repository.Submission, error) {
	return nil, assert.AnError
}

type testEnv struct {
	svc    *RecordService
	audit  *repository.MemorySubmissionLog
	events *recordingPublisher
	kv     *store.MemoryKV
}

func newTestEnv(t *testing.T, c records.Coercer) testEnv {
	t.Helper()
	kv := store.NewMemoryKV()
	audit := repository.NewMemorySubmissionLog()
	pub := &recordingPublisher{}
	svc := NewRecordService(NewCatalog(fixedClock, c), NewDraftStore(kv, time.Hour), RecordServiceOptions{
		Audit:  audit,
		Events: pub,
		Now:    fixedClock,
	})
	return testEnv{svc: svc, audit: audit, events: pub, kv: kv}
}

func names(recs []domain.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.(domain.Patient).Name
	}
	return out
}

func TestRecordService_PatientScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	got, err := env.svc.List(ctx, "patients", "patients", "jane")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Smith"}, names(got))

	_, err = env.svc.SetField(ctx, "s1", "patients", "patients", "name", "Sam")
	require.NoError(t, err)
	_, err = env.svc.SetField(ctx, "s1", "patients", "patients", "age", "abc")
	require.NoError(t, err)

	res, err := env.svc.Submit(ctx, "s1", "patients", "patients")
	require.NoError(t, err)
	assert.Equal(t, domain.Patient{ID: 3, Name: "Sam"}, res.Record)
	assert.Equal(t, 3, res.Count)
	assert.JSONEq(t, `{"name":"","age":0,"gender":"","contact":""}`, string(res.Draft))

	got, err = env.svc.List(ctx, "patients", "patients", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Doe", "Jane Smith", "Sam"}, names(got))
}

func TestRecordService_DraftIsPerSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.SetField(ctx, "a", "staff", "staff", "name", "Dr. Who")
	require.NoError(t, err)

	draftA, err := env.svc.Draft(ctx, "a", "staff", "staff")
	require.NoError(t, err)
	draftB, err := env.svc.Draft(ctx, "b", "staff", "staff")
	require.NoError(t, err)

	assert.Contains(t, string(draftA), `"name":"Dr. Who"`)
	assert.Contains(t, string(draftB), `"name":""`)
}

func TestRecordService_DefaultDraftUsesClock(t *testing.T) {
	env := newTestEnv(t, records.Coercer{})

	d, err := env.svc.Draft(context.Background(), "s", "laboratory", "tests")
	require.NoError(t, err)
	assert.JSONEq(t, `{"patientName":"","testName":"","orderDate":"2024-10-01","status":"Pending","priority":"Routine","results":""}`, string(d))
}

func TestRecordService_RejectedFieldKeepsDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{Strict: true})

	before, err := env.svc.SetField(ctx, "s", "inventory", "items", "quantity", "12")
	require.NoError(t, err)

	_, err = env.svc.SetField(ctx, "s", "inventory", "items", "quantity", "12 boxes")
	assert.ErrorIs(t, err, records.ErrInvalidValue)
	_, err = env.svc.SetField(ctx, "s", "inventory", "items", "colour", "red")
	assert.ErrorIs(t, err, records.ErrUnknownField)
	_, err = env.svc.SetField(ctx, "s", "inventory", "items", "expirationDate", "next year")
	assert.ErrorIs(t, err, records.ErrInvalidValue)

	after, err := env.svc.Draft(ctx, "s", "inventory", "items")
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestRecordService_ResetDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.SetField(ctx, "s", "pharmacy", "prescriptions", "status", "Completed")
	require.NoError(t, err)

	d, err := env.svc.ResetDraft(ctx, "s", "pharmacy", "prescriptions")
	require.NoError(t, err)
	var draft domain.PrescriptionDraft
	require.NoError(t, json.Unmarshal(d, &draft))
	assert.Equal(t, domain.NewPrescriptionDraft(testNow), draft)
}

func TestRecordService_SubmitDerivedFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	for field, value := range map[string]string{"patientName": "Sam", "totalAmount": "250.5", "amountPaid": "100"} {
		_, err := env.svc.SetField(ctx, "s", "billing", "billing", field, value)
		require.NoError(t, err)
	}
	res, err := env.svc.Submit(ctx, "s", "billing", "billing")
	require.NoError(t, err)

	b := res.Record.(domain.BillingRecord)
	assert.Equal(t, 3, b.ID)
	assert.Equal(t, 150.5, b.Balance)
	assert.Equal(t, records.NewDate(2024, time.October, 1), b.DateOfService)
}

func TestRecordService_SubmitAuditsAndPublishes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.SetField(ctx, "s", "laboratory", "specimens", "patientName", "Sam")
	require.NoError(t, err)
	_, err = env.svc.Submit(ctx, "s", "laboratory", "specimens")
	require.NoError(t, err)

	subs, err := env.svc.Submissions(ctx, "laboratory", "specimens", 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "laboratory/specimens", subs[0].Collection)
	assert.Equal(t, 3, subs[0].RecordID)
	assert.Equal(t, "s", subs[0].SessionID)
	assert.Equal(t, testNow, subs[0].SubmittedAt)
	assert.NotEmpty(t, subs[0].SubmissionID)

	require.Len(t, env.events.events, 1)
	e := env.events.events[0]
	assert.Equal(t, "laboratory", e.Module)
	assert.Equal(t, "specimens", e.Collection)
	assert.JSONEq(t, `{"id":3,"patientName":"Sam","specimenType":"","collectionDate":"2024-10-01","status":"Collected"}`, string(e.Record))
}

func TestRecordService_SideChannelFailuresDoNotFailSubmit(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: assert.AnError}
	svc := NewRecordService(NewCatalog(fixedClock, records.Coercer{}), NewDraftStore(store.NewMemoryKV(), time.Hour), RecordServiceOptions{
		Audit:  failingAudit{},
		Events: pub,
	})

	res, err := svc.Submit(ctx, "s", "staff", "staff")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Record.RecordID())
	assert.Len(t, pub.events, 1)
}

func TestRecordService_UnknownCollection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.List(ctx, "radiology", "scans", "")
	assert.ErrorIs(t, err, ErrUnknownModule)
	_, err = env.svc.Draft(ctx, "s", "pharmacy", "tests")
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = env.svc.Submit(ctx, "s", "report", "kpis")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestRecordService_Export(t *testing.T) {
	env := newTestEnv(t, records.Coercer{})

	data, err := env.svc.Export(context.Background(), "appointment", "appointments", "neuro")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("appointments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.AppointmentSchema.Columns, rows[0])
	assert.Equal(t, []string{"Bob Williams", "Dr. Lee", "Oct 16, 2024", "2:00 PM", "Neurology"}, rows[1])
}

func TestRecordService_SessionDrafts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.Draft(ctx, "s", "pharmacy", "medications")
	require.NoError(t, err)
	_, err = env.svc.Draft(ctx, "s", "ehr", "records")
	require.NoError(t, err)
	_, err = env.svc.Draft(ctx, "other", "ehr", "records")
	require.NoError(t, err)

	keys, err := env.svc.SessionDrafts(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pharmacy/medications", "ehr/records"}, keys)

	n, err := env.svc.DiscardSession(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err = env.svc.SessionDrafts(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, keys)
	keys, err = env.svc.SessionDrafts(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"ehr/records"}, keys)
}

func TestRecordService_OverflowingBalanceIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, records.Coercer{})

	_, err := env.svc.SetField(ctx, "s", "billing", "billing", "totalAmount", "1.7e308")
	require.NoError(t, err)
	_, err = env.svc.SetField(ctx, "s", "billing", "billing", "amountPaid", "-1.7e308")
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, "s", "billing", "billing")
	assert.ErrorIs(t, err, records.ErrInvalidValue)

	got, err := env.svc.List(ctx, "billing", "billing", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	_, err = json.Marshal(got)
	assert.NoError(t, err)

	subs, err := env.svc.Submissions(ctx, "billing", "billing", 10)
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.Empty(t, env.events.events)

	d, err := env.svc.Draft(ctx, "s", "billing", "billing")
	require.NoError(t, err)
	assert.Contains(t, string(d), `"amountPaid":-1.7e+308`)
}

func TestRecordService_ConcurrentSubmitCountMatchesID(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(NewCatalog(fixedClock, records.Coercer{}), NewDraftStore(store.NewMemoryKV(), time.Hour), RecordServiceOptions{Now: fixedClock})

	const n = 32
	results := make([]SubmitResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Submit(ctx, uuid.NewString(), "staff", "staff")
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for i, res := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, res.Record.RecordID(), res.Count)
		assert.False(t, seen[res.Count], "duplicate id %d", res.Count)
		seen[res.Count] = true
	}
	col, err := svc.Catalog().Collection("staff", "staff")
	require.NoError(t, err)
	assert.Equal(t, n+2, col.Len())
}

// failingDeleteKV fails every Delete after the first ok ones.
type failingDeleteKV struct {
	*store.MemoryKV
	ok int
}

func (k *failingDeleteKV) Delete(ctx context.Context, key string) error {
	if k.ok == 0 {
		return assert.AnError
	}
	k.ok--
	return k.MemoryKV.Delete(ctx, key)
}

func TestRecordService_DiscardSessionReportsPartialProgress(t *testing.T) {
	ctx := context.Background()
	kv := &failingDeleteKV{MemoryKV: store.NewMemoryKV(), ok: 1}
	svc := NewRecordService(NewCatalog(fixedClock, records.Coercer{}), NewDraftStore(kv, time.Hour), RecordServiceOptions{Now: fixedClock})

	for _, col := range [][2]string{{"pharmacy", "medications"}, {"ehr", "records"}, {"staff", "staff"}} {
		_, err := svc.Draft(ctx, "s", col[0], col[1])
		require.NoError(t, err)
	}

	n, err := svc.DiscardSession(ctx, "s")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, n)

	left, err := svc.SessionDrafts(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, left, 2)
}
