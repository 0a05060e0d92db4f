// Package memory provides in-memory repository implementations used by
// usecase tests. They mirror the SQL implementations' contracts, including
// sentinel errors and ordering guarantees, without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

// UserRepository is a map-backed repository.UserRepository.
type UserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*domain.User

	swipes *SwipeRepository
	blocks *BlockRepository
}

// NewUserRepository wires the user store to the swipe and block stores so
// CandidatesAtVenue can apply the same exclusions the SQL query does.
func NewUserRepository(swipes *SwipeRepository, blocks *BlockRepository) *UserRepository {
	return &UserRepository{
		nextID: 1,
		users:  make(map[int]*domain.User),
		swipes: swipes,
		blocks: blocks,
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Hobbies = append([]string(nil), u.Hobbies...)
	c.Interests = append([]string(nil), u.Interests...)
	c.Photos = append([]string(nil), u.Photos...)
	if u.ActiveVenueID != nil {
		v := *u.ActiveVenueID
		c.ActiveVenueID = &v
	}
	return &c
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) UpdateActiveVenue(_ context.Context, userID int, venueID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if venueID == nil {
		u.ActiveVenueID = nil
	} else {
		v := *venueID
		u.ActiveVenueID = &v
	}
	u.LastActiveAt = time.Now()
	return nil
}

func (r *UserRepository) UpdateLastActive(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastActiveAt = time.Now()
	return nil
}

func (r *UserRepository) UpdateStatus(_ context.Context, userID int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) CandidatesAtVenue(ctx context.Context, userID, venueID int, gender string, limit int) ([]*domain.User, error) {
	swiped, err := r.swipes.SwipedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := r.blocks.BlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := map[int]bool{userID: true}
	for _, id := range swiped {
		excluded[id] = true
	}
	for _, id := range blocked {
		excluded[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if excluded[u.ID] || !u.IsAtVenue(venueID) {
			continue
		}
		if u.Status != domain.StatusActive || u.Role != domain.RoleUser {
			continue
		}
		if gender != "" && u.Gender != gender {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context, filter repository.UserListFilter) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.User
	for _, u := range r.users {
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), s) &&
				!strings.Contains(strings.ToLower(u.Email), s) {
				continue
			}
		}
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			all = nil
		} else {
			all = all[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (r *UserRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, u := range r.users {
		counts[u.Status]++
	}
	return counts, nil
}

// VenueRepository is a map-backed repository.VenueRepository.
type VenueRepository struct {
	mu     sync.Mutex
	nextID int
	venues map[int]*domain.Venue
}

func NewVenueRepository() *VenueRepository {
	return &VenueRepository{nextID: 1, venues: make(map[int]*domain.Venue)}
}

func cloneVenue(v *domain.Venue) *domain.Venue {
	c := *v
	c.Tags = append([]string(nil), v.Tags...)
	if v.Lat != nil {
		lat := *v.Lat
		c.Lat = &lat
	}
	if v.Lng != nil {
		lng := *v.Lng
		c.Lng = &lng
	}
	return &c
}

func (r *VenueRepository) Create(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue.ID = r.nextID
	r.nextID++
	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	r.venues[venue.ID] = cloneVenue(venue)
	return nil
}

func (r *VenueRepository) GetByID(_ context.Context, id int) (*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok || v.IsDeleted {
		return nil, domain.ErrVenueNotFound
	}
	return cloneVenue(v), nil
}

func (r *VenueRepository) GetActive(_ context.Context, id int) (*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok || v.IsDeleted || !v.IsActive {
		return nil, domain.ErrVenueNotFound
	}
	return cloneVenue(v), nil
}

func (r *VenueRepository) ListActive(_ context.Context) ([]*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Venue
	for _, v := range r.venues {
		if v.IsDeleted || !v.IsActive {
			continue
		}
		out = append(out, cloneVenue(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VenueRepository) List(_ context.Context, filter repository.VenueListFilter) ([]*domain.Venue, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Venue
	for _, v := range r.venues {
		if v.IsDeleted {
			continue
		}
		if filter.Status == "active" && !v.IsActive {
			continue
		}
		if filter.Status == "inactive" && v.IsActive {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(v.Name), s) &&
				!strings.Contains(strings.ToLower(v.City), s) {
				continue
			}
		}
		out = append(out, cloneVenue(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = nil
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *VenueRepository) Update(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.venues[venue.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrVenueNotFound
	}
	venue.UpdatedAt = time.Now()
	r.venues[venue.ID] = cloneVenue(venue)
	return nil
}

func (r *VenueRepository) SetActive(_ context.Context, id int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok || v.IsDeleted {
		return domain.ErrVenueNotFound
	}
	v.IsActive = active
	v.UpdatedAt = time.Now()
	return nil
}

func (r *VenueRepository) SoftDelete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok || v.IsDeleted {
		return domain.ErrVenueNotFound
	}
	v.IsDeleted = true
	v.IsActive = false
	v.UpdatedAt = time.Now()
	return nil
}

func (r *VenueRepository) UpdateOccupancy(_ context.Context, id, occupancy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok {
		return domain.ErrVenueNotFound
	}
	v.CurrentOccupancy = occupancy
	return nil
}

func (r *VenueRepository) Stats(_ context.Context) (*domain.VenueStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.VenueStats{}
	for _, v := range r.venues {
		if v.IsDeleted {
			continue
		}
		stats.TotalVenues++
		if v.IsActive {
			stats.ActiveVenues++
		} else {
			stats.InactiveVenues++
		}
	}
	return stats, nil
}

type swipeKey struct {
	swiperID int
	targetID int
}

// SwipeRepository is a map-backed repository.SwipeRepository.
type SwipeRepository struct {
	mu     sync.Mutex
	swipes map[swipeKey]string
}

func NewSwipeRepository() *SwipeRepository {
	return &SwipeRepository{swipes: make(map[swipeKey]string)}
}

func (r *SwipeRepository) Add(_ context.Context, swiperID, targetID int, direction string, _ *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := swipeKey{swiperID, targetID}
	if _, ok := r.swipes[key]; ok {
		// First swipe wins, same as ON CONFLICT DO NOTHING.
		return nil
	}
	r.swipes[key] = direction
	return nil
}

func (r *SwipeRepository) Exists(_ context.Context, swiperID, targetID int, direction string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.swipes[swipeKey{swiperID, targetID}]
	return ok && d == direction, nil
}

func (r *SwipeRepository) SwipedIDs(_ context.Context, swiperID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for key := range r.swipes {
		if key.swiperID == swiperID {
			ids = append(ids, key.targetID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *SwipeRepository) DeleteBySwiper(_ context.Context, swiperID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.swipes {
		if key.swiperID == swiperID {
			delete(r.swipes, key)
		}
	}
	return nil
}

// BlockRepository is a map-backed repository.BlockRepository.
type BlockRepository struct {
	mu     sync.Mutex
	blocks map[swipeKey]bool
}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{blocks: make(map[swipeKey]bool)}
}

func (r *BlockRepository) Add(_ context.Context, blockerID, blockedID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[swipeKey{blockerID, blockedID}] = true
	return nil
}

func (r *BlockRepository) Remove(_ context.Context, blockerID, blockedID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, swipeKey{blockerID, blockedID})
	return nil
}

func (r *BlockRepository) BlockedIDs(_ context.Context, blockerID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for key := range r.blocks {
		if key.swiperID == blockerID {
			ids = append(ids, key.targetID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// MatchRepository is a map-backed repository.MatchRepository enforcing the
// ordered-pair uniqueness the SQL index provides.
type MatchRepository struct {
	mu      sync.Mutex
	nextID  int
	matches map[[2]int]*domain.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{nextID: 1, matches: make(map[[2]int]*domain.Match)}
}

func (r *MatchRepository) Create(_ context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.OrderPair(match.User1ID, match.User2ID)
	match.User1ID, match.User2ID = u1, u2
	key := [2]int{u1, u2}
	if _, ok := r.matches[key]; ok {
		return domain.ErrMatchExists
	}
	match.ID = r.nextID
	r.nextID++
	match.CreatedAt = time.Now()
	stored := *match
	r.matches[key] = &stored
	return nil
}

func (r *MatchRepository) GetByUsers(_ context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u1, u2 := domain.OrderPair(user1ID, user2ID)
	m, ok := r.matches[[2]int{u1, u2}]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	c := *m
	return &c, nil
}

func (r *MatchRepository) GetUserMatches(_ context.Context, userID int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(userID) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchedAt.After(out[j].MatchedAt) })
	return out, nil
}

func (r *MatchRepository) GetUserMatchesAtVenue(ctx context.Context, userID, venueID int) ([]*domain.Match, error) {
	all, err := r.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*domain.Match
	for _, m := range all {
		if m.VenueID == venueID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MatchRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches), nil
}

// ReportRepository is a map-backed repository.ReportRepository.
type ReportRepository struct {
	mu      sync.Mutex
	nextID  int
	reports map[int]*domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{nextID: 1, reports: make(map[int]*domain.Report)}
}

func (r *ReportRepository) Create(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = r.nextID
	r.nextID++
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	stored := *report
	r.reports[report.ID] = &stored
	return nil
}

func (r *ReportRepository) GetByID(_ context.Context, id int) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	c := *rep
	return &c, nil
}

func (r *ReportRepository) List(_ context.Context, status string) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Report
	for _, rep := range r.reports {
		if status != "" && rep.Status != status {
			continue
		}
		c := *rep
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReportRepository) Update(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reports[report.ID]
	if !ok {
		return domain.ErrReportNotFound
	}
	existing.Status = report.Status
	existing.AdminNotes = report.AdminNotes
	existing.UpdatedAt = time.Now()
	report.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *ReportRepository) CountOpen(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, rep := range r.reports {
		if rep.Status == domain.ReportOpen {
			count++
		}
	}
	return count, nil
}
