package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/fulltext"
	"github.com/beldeveloper/repo-keeper/service/lock"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/beldeveloper/repo-keeper/service/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponents struct {
	component.Service
	byID    map[uint64]model.Component
	updated []model.Component
}

func (f *fakeComponents) FindByID(ctx context.Context, id uint64) (model.Component, error) {
	c, ok := f.byID[id]
	if !ok {
		return c, model.ErrNotFound
	}
	return c, nil
}

func (f *fakeComponents) Update(ctx context.Context, c model.Component) (model.Component, error) {
	f.updated = append(f.updated, c)
	return c, nil
}

type fakeVcs struct {
	vcs.Service
	needsCommit bool
	pushErr     error
	fetched     []uint64
	merged      []uint64
	committed   []string
	pushed      []uint64
}

func (f *fakeVcs) Update(ctx context.Context, c model.Component) error {
	f.fetched = append(f.fetched, c.ID)
	return nil
}

func (f *fakeVcs) Merge(ctx context.Context, c model.Component) error {
	f.merged = append(f.merged, c.ID)
	return nil
}

func (f *fakeVcs) NeedsCommit(ctx context.Context, c model.Component) (bool, error) {
	return f.needsCommit, nil
}

func (f *fakeVcs) Commit(ctx context.Context, c model.Component, message, author string) error {
	f.committed = append(f.committed, message)
	return nil
}

func (f *fakeVcs) Push(ctx context.Context, c model.Component) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, c.ID)
	return nil
}

type fakeParser struct {
	units []model.Unit
	err   error
}

func (f fakeParser) Load(ctx context.Context, c model.Component) ([]model.Unit, error) {
	return f.units, f.err
}

type fakeUnits struct {
	unit.Service
	replaced []model.Unit
}

func (f *fakeUnits) Replace(ctx context.Context, componentID uint64, units []model.Unit) ([]model.Unit, error) {
	for i := range units {
		units[i].ID = uint64(i + 1)
	}
	f.replaced = units
	return units, nil
}

type fakeIndex struct {
	stored []model.Unit
}

func (f *fakeIndex) Partition(language string) fulltext.Partition { return nil }

func (f *fakeIndex) Store(ctx context.Context, u model.Unit) error {
	f.stored = append(f.stored, u)
	return nil
}

type fakeAlerts struct {
	active map[string]bool
}

func newFakeAlerts() *fakeAlerts { return &fakeAlerts{active: make(map[string]bool)} }

func (f *fakeAlerts) Add(ctx context.Context, componentID uint64, name string) error {
	f.active[name] = true
	return nil
}

func (f *fakeAlerts) Remove(ctx context.Context, componentID uint64, name string) error {
	delete(f.active, name)
	return nil
}

func (f *fakeAlerts) FindByComponent(ctx context.Context, componentID uint64) ([]model.Alert, error) {
	return nil, nil
}

func (f *fakeAlerts) DeleteByComponent(ctx context.Context, componentID uint64) error { return nil }

type fakeAudit struct {
	records []string
}

func (f *fakeAudit) Record(ctx context.Context, action, target, actor string) error {
	f.records = append(f.records, action+" "+target)
	return nil
}

type fixture struct {
	components *fakeComponents
	vcs        *fakeVcs
	parser     fakeParser
	units      *fakeUnits
	index      *fakeIndex
	alerts     *fakeAlerts
	audit      *fakeAudit
	syncer     Service
}

func newFixture(c model.Component, p fakeParser, v *fakeVcs) fixture {
	f := fixture{
		components: &fakeComponents{byID: map[uint64]model.Component{c.ID: c}},
		vcs:        v,
		parser:     p,
		units:      &fakeUnits{},
		index:      &fakeIndex{},
		alerts:     newFakeAlerts(),
		audit:      &fakeAudit{},
	}
	f.syncer = NewSyncer(
		f.components, lock.NewKeyed(), f.vcs, f.parser, f.units, f.index, f.alerts, f.audit,
		model.Config{LockTimeout: time.Second, AutoUpdate: model.AutoUpdateRemote},
	)
	return f
}

func TestLoadStoresUnits(t *testing.T) {
	c := model.Component{ID: 1, ProjectSlug: "docs", Slug: "website"}
	parsed := []model.Unit{{ComponentID: 1, IDHash: "greeting", Source: "Hello"}}
	f := newFixture(c, fakeParser{units: parsed}, &fakeVcs{needsCommit: true})

	require.NoError(t, f.syncer.Load(context.Background(), 1))
	require.Len(t, f.units.replaced, 1)
	require.Len(t, f.index.stored, 1)
	assert.NotZero(t, f.index.stored[0].ID, "indexing must use the stored unit id")

	require.Len(t, f.components.updated, 1)
	got := f.components.updated[0]
	assert.True(t, got.NeedsCommit)
	require.NotNil(t, got.LastChangedAt, "a fresh pending change must be timestamped")
	assert.WithinDuration(t, time.Now(), *got.LastChangedAt, 5*time.Second)
}

func TestLoadKeepsChangeTimestamp(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	c := model.Component{ID: 1, NeedsCommit: true, LastChangedAt: &old}
	f := newFixture(c, fakeParser{units: []model.Unit{{IDHash: "greeting"}}}, &fakeVcs{needsCommit: true})

	require.NoError(t, f.syncer.Load(context.Background(), 1))
	require.Len(t, f.components.updated, 1)
	assert.Equal(t, old, *f.components.updated[0].LastChangedAt, "an already pending change keeps its timestamp")
}

func TestLoadParseFailure(t *testing.T) {
	c := model.Component{ID: 1}
	f := newFixture(c, fakeParser{err: model.ErrParse}, &fakeVcs{})

	err := f.syncer.Load(context.Background(), 1)
	require.ErrorIs(t, err, model.ErrParse)
	assert.True(t, f.alerts.active[model.AlertParseError])
	assert.Empty(t, f.units.replaced, "nothing must be stored on a parse failure")
}

func TestLoadClearsParseAlert(t *testing.T) {
	c := model.Component{ID: 1}
	f := newFixture(c, fakeParser{units: []model.Unit{{IDHash: "greeting"}}}, &fakeVcs{})
	f.alerts.active[model.AlertParseError] = true

	require.NoError(t, f.syncer.Load(context.Background(), 1))
	assert.False(t, f.alerts.active[model.AlertParseError])
}

func TestUpdateAutoModes(t *testing.T) {
	cases := []struct {
		name      string
		mode      string
		auto      bool
		wantFetch bool
		wantMerge bool
	}{
		{name: "auto disabled", mode: model.AutoUpdateDisabled, auto: true},
		{name: "auto remote only fetches", mode: model.AutoUpdateRemote, auto: true, wantFetch: true},
		{name: "auto full merges", mode: model.AutoUpdateFull, auto: true, wantFetch: true, wantMerge: true},
		{name: "manual always merges", mode: model.AutoUpdateDisabled, auto: false, wantFetch: true, wantMerge: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := model.Component{ID: 1, AutoUpdate: tc.mode}
			f := newFixture(c, fakeParser{units: []model.Unit{{IDHash: "greeting"}}}, &fakeVcs{})

			require.NoError(t, f.syncer.Update(context.Background(), 1, tc.auto))
			assert.Equal(t, tc.wantFetch, len(f.vcs.fetched) > 0)
			assert.Equal(t, tc.wantMerge, len(f.vcs.merged) > 0)
		})
	}
}

func TestCommitNothingPending(t *testing.T) {
	c := model.Component{ID: 1, NeedsCommit: true}
	f := newFixture(c, fakeParser{}, &fakeVcs{needsCommit: false})

	require.NoError(t, f.syncer.Commit(context.Background(), 1, "periodic-commit", ""))
	assert.Empty(t, f.vcs.committed)
	require.Len(t, f.components.updated, 1, "the stale pending flag must be cleared")
	assert.False(t, f.components.updated[0].NeedsCommit)
}

func TestCommitWithPush(t *testing.T) {
	c := model.Component{ID: 1, NeedsCommit: true, PushOnCommit: true, HasRemote: true}
	f := newFixture(c, fakeParser{}, &fakeVcs{needsCommit: true})

	require.NoError(t, f.syncer.Commit(context.Background(), 1, "periodic-commit", "Jo <jo@example.com>"))
	require.Len(t, f.vcs.committed, 1)
	assert.Equal(t, "translation update: periodic-commit", f.vcs.committed[0])
	assert.Equal(t, []uint64{1}, f.vcs.pushed)
	assert.NotEmpty(t, f.audit.records)
}

func TestPushWithoutRemote(t *testing.T) {
	c := model.Component{ID: 1}
	f := newFixture(c, fakeParser{}, &fakeVcs{})

	err := f.syncer.Push(context.Background(), 1)
	require.ErrorIs(t, err, model.ErrNoRemote)
	assert.True(t, f.alerts.active[model.AlertPushFailure])
}

func TestPushClearsFailureAlert(t *testing.T) {
	c := model.Component{ID: 1, HasRemote: true}
	f := newFixture(c, fakeParser{}, &fakeVcs{})
	f.alerts.active[model.AlertPushFailure] = true

	require.NoError(t, f.syncer.Push(context.Background(), 1))
	assert.False(t, f.alerts.active[model.AlertPushFailure])
	assert.Equal(t, []uint64{1}, f.vcs.pushed)
}
