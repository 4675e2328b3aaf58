package compliance

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// ParentEntityID is the stable identifier of a startup's parent company
// entity. Subsidiaries and international operations use "sub-<n>" and
// "intl-<n>", assigned by the server-side generation function.
const ParentEntityID = "parent"

// TaskID derives the deterministic identifier for a materialized task. The
// format is load-bearing: status rows are upserted by it, so the same
// (rule, startup, year, sub-period) tuple must always produce the same string.
func TaskID(ruleID int64, startupID uuid.UUID, year int, subPeriod string) string {
	id := fmt.Sprintf("rule_%d_%s_%d", ruleID, startupID, year)
	if subPeriod != "" {
		id += "_" + subPeriod
	}
	return id
}

// Materializer expands compliance rules into dated task instances for every
// legal entity of a startup. The preferred path delegates to the server-side
// generation function; when that yields nothing it re-derives parent-entity
// tasks from the rule table.
type Materializer struct {
	rules    port.ComplianceRuleRepository
	tasks    port.ComplianceTaskRepository
	startups port.StartupRepository
	now      func() time.Time
}

// NewMaterializer creates a Materializer backed by the given stores.
func NewMaterializer(
	rules port.ComplianceRuleRepository,
	tasks port.ComplianceTaskRepository,
	startups port.StartupRepository,
) *Materializer {
	return &Materializer{
		rules:    rules,
		tasks:    tasks,
		startups: startups,
		now:      time.Now,
	}
}

// Materialize produces the merged, sorted task list for a startup. Load
// failures degrade to an empty list; this method never returns an error so
// callers can always render whatever state is available.
func (m *Materializer) Materialize(ctx context.Context, startupID uuid.UUID) []domain.TaskInstance {
	instances := m.generate(ctx, startupID)
	if len(instances) == 0 {
		instances = m.expandParent(ctx, startupID)
	}
	if len(instances) == 0 {
		return nil
	}

	// Tasks already known to the status store keep their persisted state.
	recs, err := m.tasks.ListByStartup(ctx, startupID)
	if err != nil {
		log.Printf("materializer.Materialize: loading status rows for %s: %v", startupID, err)
		recs = nil
	}
	byID := make(map[string]*domain.ComplianceTaskRecord, len(recs))
	for i := range recs {
		byID[recs[i].TaskID] = &recs[i]
	}

	out := make([]domain.TaskInstance, 0, len(instances))
	for _, inst := range instances {
		var applicable *bool
		if rec, ok := byID[inst.TaskID]; ok {
			inst.CAStatus = rec.CAStatus
			inst.CSStatus = rec.CSStatus
			applicable = rec.IsApplicable
		}
		out = append(out, domain.NewTaskInstance(inst, applicable))
	}

	SortTasks(out)
	return out
}

// generate runs the preferred server-side path. Errors are logged and
// reported as an empty result so the caller falls through to rule expansion.
func (m *Materializer) generate(ctx context.Context, startupID uuid.UUID) []domain.TaskInstance {
	rows, err := m.tasks.GenerateForStartup(ctx, startupID)
	if err != nil {
		log.Printf("materializer.generate: generation function failed for %s, falling back to rule expansion: %v", startupID, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	out := make([]domain.TaskInstance, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TaskInstance{
			TaskID:            row.TaskID,
			EntityIdentifier:  row.EntityIdentifier,
			EntityDisplayName: row.EntityDisplayName,
			Year:              row.Year,
			TaskName:          row.TaskName,
			Description:       row.Description,
			TaskType:          row.TaskType,
			CARequired:        row.CARequired,
			CSRequired:        row.CSRequired,
			CAType:            row.CAType,
			CSType:            row.CSType,
		})
	}
	return out
}

// expandParent is the fallback path: it derives tasks for the parent entity
// only, from the country+company-type rule table.
func (m *Materializer) expandParent(ctx context.Context, startupID uuid.UUID) []domain.TaskInstance {
	startup, err := m.startups.GetByID(ctx, startupID)
	if err != nil {
		log.Printf("materializer.expandParent: loading startup %s: %v", startupID, err)
		return nil
	}

	country := startup.CountryOfRegistration
	code, ok := CountryCode(country)
	if !ok {
		// Unmapped countries pass through so a rule table keyed by the raw
		// name still matches, but the miss is surfaced distinctly.
		log.Printf("materializer.expandParent: country %q has no ISO code mapping for startup %s: %v", country, startupID, domain.ErrUnknownCountry)
		code = country
	}

	rules, err := m.rules.GetByCountryAndCompanyType(ctx, code, startup.CompanyType)
	if err != nil {
		log.Printf("materializer.expandParent: loading rules for (%s, %s): %v", code, startup.CompanyType, err)
		return nil
	}

	display := EntityDisplayName("Parent Company", country)
	regYear := startup.RegistrationDate.Year()
	curYear := m.now().Year()

	var out []domain.TaskInstance
	for i := range rules {
		out = append(out, m.expandRule(&rules[i], startupID, display, regYear, curYear)...)
	}
	return out
}

// expandRule produces the period instances for one rule.
func (m *Materializer) expandRule(rule *domain.ComplianceRule, startupID uuid.UUID, display string, regYear, curYear int) []domain.TaskInstance {
	base := domain.TaskInstance{
		EntityIdentifier:  ParentEntityID,
		EntityDisplayName: display,
		Description:       rule.Description,
		TaskType:          rule.Frequency,
		CARequired:        rule.CARequired(),
		CSRequired:        rule.CSRequired(),
		CAType:            rule.CAType,
		CSType:            rule.CSType,
	}

	instance := func(year int, subPeriod, name string) domain.TaskInstance {
		t := base
		t.TaskID = TaskID(rule.ID, startupID, year, subPeriod)
		t.Year = year
		t.TaskName = name
		return t
	}

	var out []domain.TaskInstance
	switch rule.Frequency {
	case domain.FrequencyFirstYear:
		out = append(out, instance(regYear, "", rule.Name))
	case domain.FrequencyAnnual:
		for year := regYear; year <= curYear; year++ {
			out = append(out, instance(year, "", fmt.Sprintf("%s - %d", rule.Name, year)))
		}
	case domain.FrequencyQuarterly:
		for year := regYear; year <= curYear; year++ {
			for q := 1; q <= 4; q++ {
				out = append(out, instance(year, fmt.Sprintf("Q%d", q), fmt.Sprintf("%s - Q%d %d", rule.Name, q, year)))
			}
		}
	case domain.FrequencyMonthly:
		for year := regYear; year <= curYear; year++ {
			for mo := 1; mo <= 12; mo++ {
				out = append(out, instance(year, fmt.Sprintf("M%d", mo), fmt.Sprintf("%s - %s %d", rule.Name, time.Month(mo).String()[:3], year)))
			}
		}
	default:
		log.Printf("materializer.expandRule: rule %d has unrecognized frequency %q", rule.ID, rule.Frequency)
		out = append(out, instance(curYear, "", rule.Name))
	}
	return out
}

// SortTasks orders tasks for presentation: first-year tasks before all
// others, then year descending, then task name ascending.
func SortTasks(tasks []domain.TaskInstance) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		aFirst := a.TaskType == domain.FrequencyFirstYear
		bFirst := b.TaskType == domain.FrequencyFirstYear
		if aFirst != bFirst {
			return aFirst
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.TaskName < b.TaskName
	})
}
