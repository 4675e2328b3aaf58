package compliance

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// SessionState tracks what a startup's reconciliation session is doing.
// The state machine replaces ad hoc in-flight flags: a session must be Idle
// before a load or a profile-driven resync may start.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionLoading
	SessionSyncing
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionSyncing:
		return "syncing"
	default:
		return "idle"
	}
}

type session struct {
	state      SessionState
	profileSig string
}

// Reconciler guarantees every task instance carries fully defined state
// before presentation, and keeps the status store in sync with the startup's
// entity-defining profile fields.
type Reconciler struct {
	mat      *Materializer
	tasks    port.ComplianceTaskRepository
	uploads  port.UploadRepository
	startups port.StartupRepository

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewReconciler creates a Reconciler.
func NewReconciler(
	mat *Materializer,
	tasks port.ComplianceTaskRepository,
	uploads port.UploadRepository,
	startups port.StartupRepository,
) *Reconciler {
	return &Reconciler{
		mat:      mat,
		tasks:    tasks,
		uploads:  uploads,
		startups: startups,
		sessions: make(map[uuid.UUID]*session),
	}
}

// State returns the current session state for a startup.
func (r *Reconciler) State(startupID uuid.UUID) SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[startupID]; ok {
		return sess.state
	}
	return SessionIdle
}

// acquire transitions the startup's session from Idle to the given state.
func (r *Reconciler) acquire(startupID uuid.UUID, state SessionState) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[startupID]
	if !ok {
		sess = &session{}
		r.sessions[startupID] = sess
	}
	if sess.state != SessionIdle {
		return nil, domain.ErrSyncInProgress
	}
	sess.state = state
	return sess, nil
}

func (r *Reconciler) release(sess *session) {
	r.mu.Lock()
	sess.state = SessionIdle
	r.mu.Unlock()
}

// Load materializes and reconciles the startup's task list, attaching
// evidence uploads. Data-loading failures degrade to whatever state is
// available; the only error returned is a concurrent-session guard.
func (r *Reconciler) Load(ctx context.Context, startupID uuid.UUID) ([]domain.TaskInstance, error) {
	sess, err := r.acquire(startupID, SessionLoading)
	if err != nil {
		return nil, err
	}
	defer r.release(sess)

	tasks := r.mat.Materialize(ctx, startupID)
	if len(tasks) == 0 {
		return nil, nil
	}

	uploads, err := r.uploads.ListByStartup(ctx, startupID)
	if err != nil {
		log.Printf("reconciler.Load: loading uploads for %s: %v", startupID, err)
		uploads = nil
	}
	byTask := make(map[string][]domain.ComplianceUpload)
	for _, up := range uploads {
		byTask[up.TaskID] = append(byTask[up.TaskID], up)
	}
	for i := range tasks {
		tasks[i].Uploads = byTask[tasks[i].TaskID]
	}
	return tasks, nil
}

// SyncProfile re-materializes the startup's tasks and upserts their status
// rows when the entity-defining profile signature changed since the last
// sync. force bypasses the signature check and drops existing rows first
// (bulk regenerate). Returns whether a sync actually ran.
func (r *Reconciler) SyncProfile(ctx context.Context, startupID uuid.UUID, force bool) (bool, error) {
	sess, err := r.acquire(startupID, SessionSyncing)
	if err != nil {
		return false, err
	}
	defer r.release(sess)

	startup, err := r.startups.GetByID(ctx, startupID)
	if err != nil {
		return false, fmt.Errorf("reconciler.SyncProfile: loading startup: %w", err)
	}
	subs, err := r.startups.ListSubsidiaries(ctx, startupID)
	if err != nil {
		return false, fmt.Errorf("reconciler.SyncProfile: loading subsidiaries: %w", err)
	}

	sig := ProfileSignature(startup, subs)
	if !force && sig == sess.profileSig {
		return false, nil
	}

	if force {
		if err := r.tasks.DeleteByStartup(ctx, startupID); err != nil {
			return false, fmt.Errorf("reconciler.SyncProfile: clearing task rows: %w", err)
		}
	}

	tasks := r.mat.Materialize(ctx, startupID)
	for i := range tasks {
		t := &tasks[i]
		applicable := t.IsApplicable
		rec := &domain.ComplianceTaskRecord{
			ID:                uuid.New(),
			StartupID:         startupID,
			TaskID:            t.TaskID,
			EntityIdentifier:  t.EntityIdentifier,
			EntityDisplayName: t.EntityDisplayName,
			Year:              t.Year,
			TaskName:          t.TaskName,
			CARequired:        t.CARequired,
			CSRequired:        t.CSRequired,
			CAStatus:          t.CAStatus,
			CSStatus:          t.CSStatus,
			IsApplicable:      &applicable,
		}
		if err := r.tasks.Upsert(ctx, rec); err != nil {
			return false, fmt.Errorf("reconciler.SyncProfile: upserting task %s: %w", t.TaskID, err)
		}
	}

	sess.profileSig = sig
	log.Printf("reconciler.SyncProfile: startup %s synced %d tasks (force=%v)", startupID, len(tasks), force)
	return true, nil
}

// ProfileSignature captures the profile fields whose change requires task
// resynchronization. Status changes deliberately do not alter the signature,
// so verification activity never retriggers materialization.
func ProfileSignature(s *domain.Startup, subs []domain.Subsidiary) string {
	parts := make([]string, 0, len(subs))
	for _, sub := range subs {
		parts = append(parts, sub.Country+":"+sub.CACode+":"+sub.CSCode)
	}
	sort.Strings(parts)
	return strings.Join([]string{
		s.CountryOfRegistration,
		s.CompanyType,
		s.RegistrationDate.Format("2006-01-02"),
		strings.Join(parts, ","),
	}, "|")
}

// EntityGroup is one entity's slice of the reconciled task list.
type EntityGroup struct {
	EntityDisplayName string                `json:"entity_display_name"`
	Tasks             []domain.TaskInstance `json:"tasks"`
}

// GroupByEntity groups tasks by entity display name, preserving task order
// within each group. When expected is non-empty, groups whose canonicalized
// name is not among the expected entities are dropped as stale leftovers of
// a previous profile shape.
func GroupByEntity(tasks []domain.TaskInstance, expected []string) []EntityGroup {
	expectedSet := make(map[string]bool, len(expected))
	for _, name := range expected {
		expectedSet[CanonicalizeEntityName(name)] = true
	}

	var order []string
	byName := make(map[string]*EntityGroup)
	for _, t := range tasks {
		if len(expectedSet) > 0 && !expectedSet[CanonicalizeEntityName(t.EntityDisplayName)] {
			continue
		}
		g, ok := byName[t.EntityDisplayName]
		if !ok {
			g = &EntityGroup{EntityDisplayName: t.EntityDisplayName}
			byName[t.EntityDisplayName] = g
			order = append(order, t.EntityDisplayName)
		}
		g.Tasks = append(g.Tasks, t)
	}

	out := make([]EntityGroup, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// ExpectedEntityNames derives the display names of all entities the current
// profile defines, for staleness filtering.
func ExpectedEntityNames(s *domain.Startup, subs []domain.Subsidiary, ops []domain.InternationalOperation) []string {
	names := []string{EntityDisplayName("Parent Company", s.CountryOfRegistration)}
	for _, sub := range subs {
		names = append(names, EntityDisplayName("Subsidiary", sub.Country))
	}
	for _, op := range ops {
		names = append(names, EntityDisplayName("International Operation", op.Country))
	}
	return names
}
